package demo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aarongantt/tangent-landing/internal/demo"
	"github.com/aarongantt/tangent-landing/internal/demo/demotest"
)

func fullStage() demo.Stage {
	return demo.Stage{
		HasArticle:    true,
		HasAnchor:     true,
		HasChips:      true,
		HasPanelShell: true,
		HasPanel:      true,
		HasStream:     true,
		AnchorText:    "Tangent",
		Layout: demo.Layout{
			Viewport:   demo.Rect{Width: 1280, Height: 800},
			Container:  demo.Rect{Left: 100, Top: 50, Width: 1080, Height: 700},
			Article:    demo.Rect{Left: 150, Top: 120, Width: 600, Height: 900},
			Anchor:     demo.Rect{Left: 300, Top: 600, Width: 98, Height: 30},
			ChipsWidth: 260,
		},
	}
}

func TestNewDirectorRequiresAllStageElements(t *testing.T) {
	stage := fullStage()
	stage.HasPanel = false
	_, err := demo.NewDirector(demo.Config{Stage: stage})
	require.ErrorIs(t, err, demo.ErrMissingStageElement)

	stage = fullStage()
	stage.AnchorText = ""
	_, err = demo.NewDirector(demo.Config{Stage: stage})
	require.Error(t, err)
}

func TestDirectorPlaysIntroToCompletion(t *testing.T) {
	clock := demotest.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sched := demotest.NewFakeScheduler(clock)

	d, err := demo.NewDirector(demo.Config{
		Stage:     fullStage(),
		Clock:     clock,
		Scheduler: sched,
	})
	require.NoError(t, err)
	d.Start()
	defer d.Stop()

	frames, cancel := d.Subscribe()
	defer cancel()

	require.True(t, d.Post(demo.CmdStageVisible{Ratio: 0.6}))

	// Advance fake time in small steps until the intro settles. Each step
	// fires due timers whose callbacks feed the loop asynchronously.
	require.Eventually(t, func() bool {
		sched.Advance(50 * time.Millisecond)
		st := d.Snapshot()
		return st.Mode == demo.ModeInteractive && !st.IntroPending
	}, 10*time.Second, time.Millisecond)

	st := d.Snapshot()
	require.True(t, st.HasPlayed)
	require.True(t, st.PanelVisible)
	require.Len(t, st.Transcript, 1)
	require.Equal(t, demo.WelcomeMessage, st.Transcript[0].Text)

	// At least one frame reached the subscriber.
	select {
	case f := <-frames:
		require.NotEmpty(t, f.Mode)
	default:
		t.Fatal("no frames broadcast")
	}
}

func TestDirectorHeaderClickUsesInjectedClock(t *testing.T) {
	clock := demotest.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sched := demotest.NewFakeScheduler(clock)

	d, err := demo.NewDirector(demo.Config{
		Stage:     fullStage(),
		Clock:     clock,
		Scheduler: sched,
	})
	require.NoError(t, err)
	d.Start()
	defer d.Stop()

	// Make the panel visible first so header clicks are accepted.
	require.True(t, d.Post(demo.CmdChipClick{ChipID: demo.FirstChipID}))
	require.Eventually(t, func() bool {
		return d.Snapshot().PanelVisible
	}, 5*time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		sched.Advance(50 * time.Millisecond)
		return d.Snapshot().Mode == demo.ModeInteractive
	}, 10*time.Second, time.Millisecond)

	// Two clicks inside the double-click window minimize the panel.
	require.True(t, d.HeaderClicked())
	clock.Advance(100 * time.Millisecond)
	require.True(t, d.HeaderClicked())
	require.Eventually(t, func() bool {
		return d.Snapshot().PanelMinimized
	}, 5*time.Second, time.Millisecond)
}

func TestDirectorStopIsIdempotent(t *testing.T) {
	d, err := demo.NewDirector(demo.Config{Stage: fullStage()})
	require.NoError(t, err)
	d.Start()
	d.Stop()
	d.Stop()
	require.False(t, d.Post(demo.CmdUserMouseMove{}))
}
