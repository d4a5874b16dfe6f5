package demo

import "time"

// Reduce is the director's pure state transition function. It never performs
// I/O or reads a clock; timers are requested through effects and come back as
// events, which keeps every transition unit-testable.
func Reduce(state State, input Input) (State, []Effect) {
	switch in := input.(type) {

	// Trigger and intro chain.

	case CmdStageVisible:
		if state.HasPlayed || in.Ratio < introTriggerThreshold {
			return state, nil
		}
		state.HasPlayed = true
		return state, []Effect{after(introTriggerDelay, evIntroDelayElapsed{})}

	case evIntroDelayElapsed:
		return reducePlayIntro(state)

	case evScrollBegin:
		if state.Mode != ModePlaying {
			return state, nil
		}
		distance := state.Layout.Anchor.Top - state.Layout.Article.Top -
			state.Layout.Article.Height/3 + anchorTwoLinesHeight
		state.ScrollStart = state.ScrollTop
		state.ScrollTarget = state.ScrollTop + distance
		state.ScrollElapsed = 0
		effects := []Effect{
			after(scrollFrameInterval, evScrollFrame{}),
			after(cursorToAnchorDelay, evCursorToAnchor{}),
			after(scrollDuration, evScrollDone{}),
		}
		for i := 0; i < paragraphCount; i++ {
			effects = append(effects, after(time.Duration(i)*paragraphRevealStagger, evParagraphReveal{Index: i}))
		}
		return state, effects

	case evScrollFrame:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.ScrollElapsed += scrollFrameInterval
		progress := float64(state.ScrollElapsed) / float64(scrollDuration)
		if progress > 1 {
			progress = 1
		}
		// Completely linear scroll, no easing.
		state.ScrollTop = state.ScrollStart + (state.ScrollTarget-state.ScrollStart)*progress
		if progress < 1 {
			return state, []Effect{after(scrollFrameInterval, evScrollFrame{})}
		}
		return state, nil

	case evParagraphReveal:
		if state.Mode != ModePlaying {
			return state, nil
		}
		if in.Index+1 > state.ParagraphsShown {
			state.ParagraphsShown = in.Index + 1
		}
		return state, nil

	case evCursorToAnchor:
		if state.Mode != ModePlaying {
			return state, nil
		}
		finalAnchorY := state.Layout.Container.Height/3 - anchorTwoLinesHeight
		state.CursorX = state.Layout.Anchor.Left - state.Layout.Container.Left - cursorAnchorGap
		state.CursorY = finalAnchorY + state.Layout.Anchor.Height/2
		return state, nil

	case evScrollDone:
		if state.Mode != ModePlaying {
			return state, nil
		}
		return state, []Effect{after(0, evHighlightLetter{Index: 0})}

	case evHighlightLetter:
		if state.Mode != ModePlaying {
			return state, nil
		}
		letters := len([]rune(state.AnchorText))
		if letters == 0 {
			return state, []Effect{after(postHighlightPause, evAnchorHighlighted{})}
		}
		state.HighlightedLetters = in.Index + 1
		// Cursor follows the selection edge.
		letterWidth := state.Layout.Anchor.Width / float64(letters)
		state.CursorX = state.Layout.Anchor.Left - state.Layout.Container.Left +
			letterWidth*float64(in.Index+1) + 2
		state.CursorY = state.Layout.Anchor.Top - state.Layout.Container.Top +
			state.Layout.Anchor.Height/2
		if in.Index+1 < letters {
			return state, []Effect{after(letterDuration, evHighlightLetter{Index: in.Index + 1})}
		}
		state.AnchorHighlighted = true
		return state, []Effect{after(postHighlightPause, evAnchorHighlighted{})}

	case evAnchorHighlighted:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.ChipsVisible = true
		state.ChipsLeft, state.ChipsTop = PositionBelowAnchor(
			state.Layout.Anchor, state.Layout.Container, state.Layout.ChipsWidth, chipPinOffset)
		// Cursor heads for the chip bar as soon as it appears.
		state.CursorX = state.ChipsLeft + state.Layout.ChipsWidth/2
		state.CursorY = state.ChipsTop - 10
		return state, []Effect{after(chipRevealDelay, evChipsRevealed{})}

	case evChipsRevealed:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.ChipsRevealed = true
		state.ChipBarPinned = true
		return state, []Effect{after(chipCursorPause, evCursorOverChips{})}

	case evCursorOverChips:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.CursorType = "normal"
		// First chip sits at the left sixth of the bar.
		state.CursorX = state.ChipsLeft + state.Layout.ChipsWidth/6
		state.CursorY = state.ChipsTop + chipApproxHeight/2
		return state, []Effect{after(chipHoverPause, evChipPressed{})}

	case evChipPressed:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.ChipPressed = true
		return state, []Effect{after(chipPressDuration, evChipReleased{})}

	case evChipReleased:
		if state.Mode != ModePlaying {
			return state, nil
		}
		state.ChipPressed = false
		state.IntroPending = true
		return reduceChipClick(state, FirstChipID, true)

	case evCursorGraceElapsed:
		state.AllowCursorHiding = true
		return state, nil

	// Chip and panel flow.

	case CmdChipClick:
		if state.Mode == ModePlaying {
			return state, nil
		}
		return reduceChipClick(state, in.ChipID, false)

	case evPanelRevealed:
		if in.Gen != state.PanelGen || !state.PanelVisible {
			return state, nil
		}
		state.PanelRevealed = true
		return state, nil

	case evPanelSettled:
		if in.Gen != state.PanelGen || !state.PanelVisible {
			return state, nil
		}
		// Panel was hidden when the chip was clicked: play the welcome
		// message instead of echoing the chip.
		return reduceStartTypewriter(state, "assistant", WelcomeMessage, welcomeChunkDelay)

	case evUserMsgShown:
		if state.Mode != ModeTyping {
			return state, nil
		}
		state.Thinking = true
		d := thinkingDuration
		if state.PendingFromIntro {
			d = thinkingDurationIntro
		}
		return state, []Effect{after(d, evThinkingDone{})}

	case evThinkingDone:
		if state.Mode != ModeTyping {
			return state, nil
		}
		state.Thinking = false
		resp, ok := ChipResponses[state.CurrentChip]
		if !ok {
			state.Mode = ModeInteractive
			return state, nil
		}
		return reduceStartTypewriter(state, "assistant", resp.Content, responseChunkDelay)

	case evTypeChunk:
		return reduceTypeChunk(state, in.Gen)

	// FAQ dropdown.

	case CmdInputFocus:
		if state.Mode == ModePlaying {
			return state, nil
		}
		state.FaqVisible = true
		state.FaqGen++
		return state, nil

	case CmdOutsideClick:
		if !state.FaqVisible {
			return state, nil
		}
		// Trailing-edge fade: the dropdown stays interactive until the CSS
		// transition would have finished.
		return state, []Effect{after(faqFadeOutDelay, evFaqHidden{Gen: state.FaqGen})}

	case evFaqHidden:
		if in.Gen != state.FaqGen {
			return state, nil
		}
		state.FaqVisible = false
		return state, nil

	case CmdFaqSelect:
		if state.Mode == ModePlaying {
			return state, nil
		}
		return reduceFaqSelect(state, in.FaqID)

	case evFaqAnswer:
		answer, ok := FAQAnswers[in.FaqID]
		if !ok {
			return state, nil
		}
		return reduceStartTypewriter(state, "assistant", answer, faqChunkDelay)

	// Window controls.

	case CmdCloseClicked:
		if !state.PanelVisible || state.Mode == ModePlaying {
			return state, nil
		}
		state.PanelRevealed = false
		return state, []Effect{after(panelCloseDelay, evPanelClosed{Gen: state.PanelGen})}

	case evPanelClosed:
		if in.Gen != state.PanelGen || state.PanelRevealed {
			return state, nil
		}
		state.PanelVisible = false
		state.Transcript = nil
		return state, nil

	case CmdMinimizeClicked:
		if !state.PanelVisible || state.Mode == ModePlaying {
			return state, nil
		}
		return reduceToggleMinimize(state), nil

	case CmdHeaderClick:
		if state.Drag.Active || state.Mode == ModePlaying {
			return state, nil
		}
		if !state.LastHeaderClick.IsZero() && in.At.Sub(state.LastHeaderClick) < doubleClickWindow {
			state.LastHeaderClick = time.Time{} // reset to prevent triple-click
			return reduceToggleMinimize(state), nil
		}
		state.LastHeaderClick = in.At
		return state, nil

	// Drag and resize.

	case CmdPointerDown:
		if state.Mode == ModePlaying || !state.PanelVisible {
			return state, nil
		}
		switch in.Target {
		case TargetPanelHeader:
			left, top := state.panelPosition()
			state.Drag = dragState{Active: true, StartX: in.X, StartY: in.Y, InitialLeft: left, InitialTop: top}
			state.Mode = ModeDragging
		case TargetResizeHandle:
			state.Resize = resizeState{Active: true, StartX: in.X, StartY: in.Y,
				StartWidth: state.PanelWidth, StartHeight: state.PanelHeight}
			state.Mode = ModeResizing
		}
		return state, nil

	case CmdPointerMove:
		if state.Drag.Active {
			state.PanelLeft = state.Drag.InitialLeft + (in.X - state.Drag.StartX)
			state.PanelTop = state.Drag.InitialTop + (in.Y - state.Drag.StartY)
			state.PanelDragged = true
		}
		if state.Resize.Active {
			state.PanelWidth, state.PanelHeight = ClampPanelSize(
				state.Resize.StartWidth+(in.X-state.Resize.StartX),
				state.Resize.StartHeight+(in.Y-state.Resize.StartY))
		}
		return state, nil

	case CmdPointerUp:
		if state.Drag.Active {
			state.Drag = dragState{}
			if state.Mode == ModeDragging {
				state.Mode = ModeInteractive
			}
		}
		if state.Resize.Active {
			state.Resize = resizeState{}
			if state.Mode == ModeResizing {
				state.Mode = ModeInteractive
			}
		}
		return state, nil

	// Cursor, viewport, scroll.

	case CmdUserMouseMove:
		animationActive := state.Mode == ModePlaying || state.Mode == ModeTyping
		if !animationActive && state.AllowCursorHiding && !state.CursorHidden && state.CursorVisible {
			state.CursorVisible = false
			state.CursorHidden = true
		}
		return state, nil

	case CmdViewportResized:
		state.Layout = in.Layout
		state.ViewportGen++
		return state, []Effect{after(viewportDebounce, evViewportSettled{Gen: state.ViewportGen})}

	case evViewportSettled:
		if in.Gen != state.ViewportGen {
			return state, nil
		}
		if state.PanelVisible && !state.PanelDragged {
			state.PanelPlacement = ResponsivePanelPosition(state.Layout.Viewport.Width)
		}
		if state.ChipBarPinned && state.ChipsVisible {
			state.ChipsLeft, state.ChipsTop = PositionBelowAnchor(
				state.Layout.Anchor, state.Layout.Container, state.Layout.ChipsWidth, chipPinOffset)
		}
		return state, nil

	case CmdScroll:
		state.ScrollTop = in.Top
		if in.Anchor != nil {
			state.Layout.Anchor = *in.Anchor
		}
		if state.ChipBarPinned && state.ChipsVisible {
			state.ChipsLeft, state.ChipsTop = PositionBelowAnchor(
				state.Layout.Anchor, state.Layout.Container, state.Layout.ChipsWidth, chipPinOffset)
		}
		return state, nil
	}

	return state, nil
}

// reducePlayIntro resets the stage and starts the intro chain. Re-entry while
// already playing is a no-op.
func reducePlayIntro(state State) (State, []Effect) {
	if state.Mode == ModePlaying {
		return state, nil
	}
	state.Mode = ModePlaying

	// Reset everything.
	state.AnchorHighlighted = false
	state.HighlightedLetters = 0
	state.ChipsVisible = false
	state.ChipsRevealed = false
	state.ChipBarPinned = false
	state.PanelVisible = false
	state.PanelRevealed = false
	state.PanelGen++
	state.Transcript = nil
	state.Thinking = false
	state.CursorHidden = false
	state.AllowCursorHiding = false
	state.ScrollTop = 0
	state.ParagraphsShown = 0
	state.ChipPressed = false
	state.IntroPending = false

	// Cursor starts center-right as an i-beam.
	state.CursorType = "i_beam"
	state.CursorX = state.Layout.Container.Width - cursorStartRightGap
	state.CursorY = state.Layout.Container.Height / 2
	state.CursorVisible = true

	return state, []Effect{after(preScrollPause, evScrollBegin{})}
}

// reduceChipClick handles a chip activation, user- or intro-initiated.
func reduceChipClick(state State, chipID string, fromIntro bool) (State, []Effect) {
	resp, ok := ChipResponses[chipID]
	if !ok {
		return state, nil
	}

	// Interrupt any in-flight typewriter.
	state.TypeGen++
	state.CurrentChip = chipID
	state.Mode = ModeTyping
	state.PendingFromIntro = fromIntro

	if state.PanelMinimized {
		state = reduceToggleMinimize(state)
	}

	if !state.PanelVisible {
		state.PanelVisible = true
		state.PanelGen++
		state.PanelRevealed = false
		state.PanelDragged = false
		state.PanelPlacement = ResponsivePanelPosition(state.Layout.Viewport.Width)
		if state.PanelWidth == 0 {
			state.PanelWidth = defaultPanelWidth
			state.PanelHeight = defaultPanelHeight
		}
		return state, []Effect{
			after(panelRevealDelay, evPanelRevealed{Gen: state.PanelGen}),
			after(panelRevealDelay+panelSettleDelay, evPanelSettled{Gen: state.PanelGen}),
		}
	}

	// Panel already open: echo the chip as a user message, think, answer.
	// Bumping the generation invalidates a pending close fade.
	state.PanelGen++
	state.PanelRevealed = true
	state.Transcript = []Message{{Role: "user", Text: resp.Title}}
	return state, []Effect{after(userMessagePause, evUserMsgShown{})}
}

// reduceFaqSelect replaces the transcript with a question/answer pair.
func reduceFaqSelect(state State, faqID string) (State, []Effect) {
	if _, ok := FAQAnswers[faqID]; !ok {
		return state, nil
	}
	question := FAQQuestions[faqID]

	state.TypeGen++
	state.FaqGen++
	state.FaqVisible = false

	answerDelay := faqUserPause
	if !state.PanelVisible {
		state.PanelVisible = true
		state.PanelGen++
		state.PanelRevealed = false
		state.PanelDragged = false
		state.PanelPlacement = ResponsivePanelPosition(state.Layout.Viewport.Width)
		if state.PanelWidth == 0 {
			state.PanelWidth = defaultPanelWidth
			state.PanelHeight = defaultPanelHeight
		}
		answerDelay += panelRevealDelay + panelSettleDelay
	} else {
		state.PanelGen++
		state.PanelRevealed = true
	}

	state.Transcript = []Message{{Role: "user", Text: question}}
	return state, []Effect{
		after(panelRevealDelay, evPanelRevealed{Gen: state.PanelGen}),
		after(answerDelay, evFaqAnswer{FaqID: faqID}),
	}
}

// reduceStartTypewriter appends a message and schedules the first chunk.
func reduceStartTypewriter(state State, role, target string, delay time.Duration) (State, []Effect) {
	state.Mode = ModeTyping
	state.TypeGen++
	state.TypeTarget = target
	state.TypeRendered = 0
	state.TypeDelay = delay
	state.Transcript = appendMessage(state.Transcript, Message{Role: role})
	return state, []Effect{after(delay, evTypeChunk{Gen: state.TypeGen})}
}

// reduceTypeChunk renders one typewriter chunk. Interruption (stale gen or a
// mode change away from typing) fails open: the rendered prefix stays as-is.
func reduceTypeChunk(state State, gen int) (State, []Effect) {
	if gen != state.TypeGen {
		return state, nil
	}
	if state.Mode != ModeTyping {
		return state, nil
	}

	state.TypeRendered = advanceTypewriter(state.TypeRendered, state.TypeTarget)
	state.Transcript = setLastMessageText(state.Transcript, state.TypeTarget[:state.TypeRendered])

	if state.TypeRendered < len(state.TypeTarget) {
		return state, []Effect{after(state.TypeDelay, evTypeChunk{Gen: gen})}
	}

	// Completion sets the exact full text.
	state.Transcript = setLastMessageText(state.Transcript, state.TypeTarget)
	state.Mode = ModeInteractive
	if state.IntroPending {
		state.IntroPending = false
		state.PendingFromIntro = false
		return state, []Effect{after(cursorGraceDelay, evCursorGraceElapsed{})}
	}
	state.PendingFromIntro = false
	return state, nil
}

// reduceToggleMinimize flips the panel between minimized and restored.
func reduceToggleMinimize(state State) State {
	if state.PanelMinimized {
		state.PanelWidth = state.SavedWidth
		state.PanelHeight = state.SavedHeight
		state.PanelMinimized = false
		return state
	}
	state.SavedWidth = state.PanelWidth
	state.SavedHeight = state.PanelHeight
	state.PanelWidth = minimizedPanelWidth
	state.PanelHeight = 0 // auto height while minimized
	state.PanelMinimized = true
	return state
}

// panelPosition resolves the panel's numeric top-left, falling back to the
// responsive placement when it has not been dragged.
func (s *State) panelPosition() (left, top float64) {
	if s.PanelDragged {
		return s.PanelLeft, s.PanelTop
	}
	p := s.PanelPlacement
	if p.Centered {
		return s.Layout.Container.Width/2 - s.PanelWidth/2, p.Top
	}
	return p.Left, p.Top
}

// appendMessage clones the transcript before appending so reduced states
// never share backing arrays.
func appendMessage(transcript []Message, msg Message) []Message {
	out := make([]Message, len(transcript)+1)
	copy(out, transcript)
	out[len(transcript)] = msg
	return out
}

// setLastMessageText clones the transcript and rewrites the last entry.
func setLastMessageText(transcript []Message, text string) []Message {
	if len(transcript) == 0 {
		return transcript
	}
	out := make([]Message, len(transcript))
	copy(out, transcript)
	out[len(out)-1].Text = text
	return out
}

// after builds a scheduling effect.
func after(d time.Duration, in Input) Effect {
	return effSchedule{After: d, Input: in}
}
