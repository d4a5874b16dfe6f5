package demo

import "time"

// Mode is the director's current mode.
type Mode int

const (
	// ModeIdle is the initial mode before the intro trigger fires.
	ModeIdle Mode = iota
	// ModePlaying runs the scripted intro; user input is ignored.
	ModePlaying
	// ModeTyping renders a typewriter message; a new interaction interrupts it.
	ModeTyping
	// ModeInteractive is the terminal steady state.
	ModeInteractive
	// ModeDragging tracks an active panel drag.
	ModeDragging
	// ModeResizing tracks an active panel resize.
	ModeResizing
)

// String implements fmt.Stringer for logs and frames.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlaying:
		return "playing"
	case ModeTyping:
		return "typing"
	case ModeInteractive:
		return "interactive"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	}
	return "unknown"
}

// Message is one transcript entry.
type Message struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Layout is the client-reported stage geometry the reducer positions against.
type Layout struct {
	Viewport  Rect
	Container Rect
	Article   Rect
	Anchor    Rect
	ChipsWidth float64
}

// dragState is the ephemeral pointer state between pointer-down and
// pointer-up of a panel drag.
type dragState struct {
	Active      bool
	StartX      float64
	StartY      float64
	InitialLeft float64
	InitialTop  float64
}

// resizeState is the ephemeral pointer state of a panel resize.
type resizeState struct {
	Active      bool
	StartX      float64
	StartY      float64
	StartWidth  float64
	StartHeight float64
}

// State holds the complete director state. It is owned by the director loop
// and mutated only through Reduce.
type State struct {
	Mode      Mode
	HasPlayed bool
	Layout    Layout

	AnchorText string

	// Intro progress.
	ScrollTop          float64
	ScrollStart        float64
	ScrollTarget       float64
	ScrollElapsed      time.Duration
	ParagraphsShown    int
	HighlightedLetters int
	AnchorHighlighted  bool
	ChipPressed        bool
	// IntroPending is set between the intro's synthetic chip click and the
	// welcome message completing, after which the intro finishes.
	IntroPending bool

	// Chip bar.
	ChipsVisible  bool
	ChipsRevealed bool
	ChipBarPinned bool
	ChipsLeft     float64
	ChipsTop      float64

	// Panel.
	PanelVisible   bool
	PanelRevealed  bool
	PanelGen       int
	PanelPlacement PanelPlacement
	PanelDragged   bool
	PanelLeft      float64
	PanelTop       float64
	PanelWidth     float64
	PanelHeight    float64
	PanelMinimized bool
	SavedWidth     float64
	SavedHeight    float64

	// Conversation.
	CurrentChip string
	Transcript  []Message
	Thinking    bool
	// PendingFromIntro marks that the in-flight chip flow was triggered by
	// the intro's synthetic click.
	PendingFromIntro bool

	// Typewriter. Gen invalidates stale chunk timers after an interruption.
	TypeGen      int
	TypeTarget   string
	TypeRendered int
	TypeDelay    time.Duration

	// FAQ dropdown. Gen invalidates a pending fade-out when it is reopened.
	FaqVisible bool
	FaqGen     int

	// Synthetic cursor.
	CursorVisible     bool
	CursorType        string
	CursorX           float64
	CursorY           float64
	CursorHidden      bool
	AllowCursorHiding bool

	Drag   dragState
	Resize resizeState

	// ViewportGen invalidates stale debounced viewport-settle timers.
	ViewportGen int

	LastHeaderClick time.Time
}

// activeMessage returns a pointer to the transcript entry the typewriter is
// rendering into, or nil.
func (s *State) activeMessage() *Message {
	if len(s.Transcript) == 0 {
		return nil
	}
	return &s.Transcript[len(s.Transcript)-1]
}
