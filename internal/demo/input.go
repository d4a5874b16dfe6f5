package demo

import "time"

// Input is an item delivered to the director loop. Inputs are either events
// (timer firings scheduled by the reducer itself) or commands (user
// interaction relayed by the client).
type Input interface {
	isDemoInput()
}

// InputBase is embedded by input structs to satisfy the Input interface.
type InputBase struct{}

func (InputBase) isDemoInput() {}

// Effect is a declarative side-effect produced by the reducer. The director
// interprets effects; the reducer never touches a timer directly.
type Effect interface {
	isDemoEffect()
}

// EffectBase is embedded by effect structs to satisfy the Effect interface.
type EffectBase struct{}

func (EffectBase) isDemoEffect() {}

// effSchedule asks the director to deliver Input back after the delay.
type effSchedule struct {
	EffectBase
	After time.Duration
	Input Input
}

// Commands (client-originated).

// CmdStageVisible reports the stage container's visibility ratio.
type CmdStageVisible struct {
	InputBase
	Ratio float64
}

// CmdChipClick is a user click on a chip.
type CmdChipClick struct {
	InputBase
	ChipID string
}

// PointerTarget identifies what a pointer-down landed on.
type PointerTarget int

const (
	TargetPanelHeader PointerTarget = iota
	TargetResizeHandle
)

// CmdPointerDown starts a drag or resize.
type CmdPointerDown struct {
	InputBase
	Target PointerTarget
	X, Y   float64
}

// CmdPointerMove continues an active drag or resize.
type CmdPointerMove struct {
	InputBase
	X, Y float64
}

// CmdPointerUp ends an active drag or resize.
type CmdPointerUp struct {
	InputBase
}

// CmdUserMouseMove is a real mouse movement over the stage.
type CmdUserMouseMove struct {
	InputBase
}

// CmdInputFocus reports focus on the demo input field.
type CmdInputFocus struct {
	InputBase
}

// CmdOutsideClick reports a click outside the input and dropdown.
type CmdOutsideClick struct {
	InputBase
}

// CmdFaqSelect is a click on an FAQ dropdown item.
type CmdFaqSelect struct {
	InputBase
	FaqID string
}

// CmdCloseClicked is a click on the panel close button.
type CmdCloseClicked struct {
	InputBase
}

// CmdMinimizeClicked is a click on the panel minimize button.
type CmdMinimizeClicked struct {
	InputBase
}

// CmdHeaderClick is a single click on the panel header; two within the
// double-click window toggle minimize. At is injected by the director.
type CmdHeaderClick struct {
	InputBase
	At time.Time
}

// CmdViewportResized reports new stage geometry after a window resize.
type CmdViewportResized struct {
	InputBase
	Layout Layout
}

// CmdScroll reports article scrolling. Anchor, when set, is the anchor's new
// bounding box.
type CmdScroll struct {
	InputBase
	Top    float64
	Anchor *Rect
}

// Events (scheduled by the reducer).

type evIntroDelayElapsed struct{ InputBase }

type evScrollBegin struct{ InputBase }

type evScrollFrame struct{ InputBase }

type evParagraphReveal struct {
	InputBase
	Index int
}

type evCursorToAnchor struct{ InputBase }

type evScrollDone struct{ InputBase }

type evHighlightLetter struct {
	InputBase
	Index int
}

type evAnchorHighlighted struct{ InputBase }

type evChipsRevealed struct{ InputBase }

type evCursorOverChips struct{ InputBase }

type evChipPressed struct{ InputBase }

type evChipReleased struct{ InputBase }

type evPanelRevealed struct {
	InputBase
	Gen int
}

type evPanelSettled struct {
	InputBase
	Gen int
}

type evUserMsgShown struct{ InputBase }

type evThinkingDone struct{ InputBase }

type evTypeChunk struct {
	InputBase
	Gen int
}

type evFaqHidden struct {
	InputBase
	Gen int
}

type evFaqAnswer struct {
	InputBase
	FaqID string
}

type evPanelClosed struct {
	InputBase
	Gen int
}

type evViewportSettled struct {
	InputBase
	Gen int
}

type evCursorGraceElapsed struct{ InputBase }
