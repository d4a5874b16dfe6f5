package demo

import "time"

// Timing for the scripted intro and the interactive effects. The values carry
// over the tuned delays of the original choreography; several were sped up by
// 25% during tuning, hence the odd numbers.
const (
	// introTriggerThreshold is the stage visibility ratio that arms the intro.
	introTriggerThreshold = 0.4
	// introTriggerDelay runs between the visibility trigger and the intro.
	introTriggerDelay = 800 * time.Millisecond

	preScrollPause      = 255 * time.Millisecond
	scrollDuration      = 1400 * time.Millisecond
	scrollFrameInterval = 16 * time.Millisecond
	// paragraphRevealStagger separates consecutive paragraph fade-ins.
	paragraphRevealStagger = 180 * time.Millisecond
	paragraphCount         = 4
	// cursorToAnchorDelay is when the synthetic cursor starts gliding toward
	// the anchor word, measured from scroll start.
	cursorToAnchorDelay = 100 * time.Millisecond

	// letterDuration paces the per-letter highlight of the anchor word.
	letterDuration     = 60 * time.Millisecond
	postHighlightPause = 150 * time.Millisecond

	chipRevealDelay  = 50 * time.Millisecond
	chipCursorPause  = 150 * time.Millisecond
	chipHoverPause   = 500 * time.Millisecond
	chipPressDuration = 96 * time.Millisecond

	panelRevealDelay = 32 * time.Millisecond
	panelSettleDelay = 224 * time.Millisecond
	panelCloseDelay  = 300 * time.Millisecond

	userMessagePause      = 255 * time.Millisecond
	thinkingDurationIntro = 510 * time.Millisecond
	thinkingDuration      = 319 * time.Millisecond

	welcomeChunkDelay  = 13 * time.Millisecond
	responseChunkDelay = 20 * time.Millisecond
	faqChunkDelay      = 13 * time.Millisecond

	faqUserPause    = 191 * time.Millisecond
	faqFadeOutDelay = 128 * time.Millisecond

	// cursorGraceDelay keeps the synthetic cursor alive after the intro so it
	// does not vanish mid-animation on a stray mouse move.
	cursorGraceDelay = time.Second

	doubleClickWindow = 300 * time.Millisecond
	viewportDebounce  = 150 * time.Millisecond
)

// Stage geometry defaults.
const (
	defaultPanelWidth    = 475
	defaultPanelHeight   = 525
	minimizedPanelWidth  = 300
	chipPinOffset        = 12
	cursorAnchorGap      = 30
	cursorStartRightGap  = 150
	chipApproxHeight     = 36
	// anchorTwoLinesHeight offsets the scroll target by two article lines
	// (26px font at 1.6 line height).
	anchorTwoLinesHeight = 26 * 1.6 * 2
)
