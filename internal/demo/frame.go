package demo

// Frame is the render snapshot broadcast to clients after every transition.
// The browser applies it verbatim; all choreography decisions stay server-side.
type Frame struct {
	Mode               string  `json:"mode"`
	ScrollTop          float64 `json:"scrollTop"`
	ParagraphsShown    int     `json:"paragraphsShown"`
	HighlightedLetters int     `json:"highlightedLetters"`
	AnchorHighlighted  bool    `json:"anchorHighlighted"`
	ChipPressed        bool    `json:"chipPressed"`

	Chips struct {
		Visible  bool    `json:"visible"`
		Revealed bool    `json:"revealed"`
		Pinned   bool    `json:"pinned"`
		Left     float64 `json:"left"`
		Top      float64 `json:"top"`
	} `json:"chips"`

	Panel struct {
		Visible   bool           `json:"visible"`
		Revealed  bool           `json:"revealed"`
		Minimized bool           `json:"minimized"`
		Dragged   bool           `json:"dragged"`
		Placement PanelPlacement `json:"placement"`
		Left      float64        `json:"left"`
		Top       float64        `json:"top"`
		Width     float64        `json:"width"`
		Height    float64        `json:"height"`
	} `json:"panel"`

	Transcript []Message `json:"transcript"`
	Thinking   bool      `json:"thinking"`
	FaqVisible bool      `json:"faqVisible"`

	Cursor struct {
		Visible bool    `json:"visible"`
		Type    string  `json:"type"`
		X       float64 `json:"x"`
		Y       float64 `json:"y"`
	} `json:"cursor"`
}

// Snapshot derives the client-facing frame from director state.
func Snapshot(state State) Frame {
	var f Frame
	f.Mode = state.Mode.String()
	f.ScrollTop = state.ScrollTop
	f.ParagraphsShown = state.ParagraphsShown
	f.HighlightedLetters = state.HighlightedLetters
	f.AnchorHighlighted = state.AnchorHighlighted
	f.ChipPressed = state.ChipPressed

	f.Chips.Visible = state.ChipsVisible
	f.Chips.Revealed = state.ChipsRevealed
	f.Chips.Pinned = state.ChipBarPinned
	f.Chips.Left = state.ChipsLeft
	f.Chips.Top = state.ChipsTop

	f.Panel.Visible = state.PanelVisible
	f.Panel.Revealed = state.PanelRevealed
	f.Panel.Minimized = state.PanelMinimized
	f.Panel.Dragged = state.PanelDragged
	f.Panel.Placement = state.PanelPlacement
	f.Panel.Left, f.Panel.Top = state.panelPosition()
	f.Panel.Width = state.PanelWidth
	f.Panel.Height = state.PanelHeight

	f.Transcript = state.Transcript
	f.Thinking = state.Thinking
	f.FaqVisible = state.FaqVisible

	f.Cursor.Visible = state.CursorVisible
	f.Cursor.Type = state.CursorType
	f.Cursor.X = state.CursorX
	f.Cursor.Y = state.CursorY

	return f
}
