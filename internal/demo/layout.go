package demo

// Geometry helpers for the demo stage. All coordinates are CSS pixels
// relative to the stage container, matching what the browser client applies
// verbatim.

// Rect is an element bounding box in viewport coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge of the rect.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge of the rect.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Viewport breakpoints.
const (
	smallMobileMaxWidth = 480
	mobileMaxWidth      = 768
)

// Panel size clamps for the resize handle.
const (
	MinPanelWidth  = 437.5
	MinPanelHeight = 150
)

// chipBarRightOffset shifts the chip bar to the right of the anchor center.
const chipBarRightOffset = 80

// PanelPlacement is where the panel shell should sit for a given viewport.
type PanelPlacement struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
	// Centered means left is a percentage midpoint and the client applies a
	// translateX(-50%) transform.
	Centered bool `json:"centered"`
}

// IsMobile reports whether the viewport is at or below the mobile breakpoint.
func IsMobile(viewportWidth float64) bool { return viewportWidth <= mobileMaxWidth }

// IsSmallMobile reports whether the viewport is at or below the small phone
// breakpoint.
func IsSmallMobile(viewportWidth float64) bool { return viewportWidth <= smallMobileMaxWidth }

// ResponsivePanelPosition returns the panel placement for a viewport width.
// Mobile placements sit two text lines lower so the panel clears the chip bar.
func ResponsivePanelPosition(viewportWidth float64) PanelPlacement {
	switch {
	case IsSmallMobile(viewportWidth):
		twoLines := 16 * 1.6 * 2
		return PanelPlacement{Left: 50, Top: 180 + twoLines, Centered: true}
	case IsMobile(viewportWidth):
		twoLines := 18 * 1.6 * 2
		return PanelPlacement{Left: 50, Top: 200 + twoLines, Centered: true}
	default:
		return PanelPlacement{Left: 600, Top: 105}
	}
}

// PositionBelowAnchor computes the top-left position for an element of the
// given width pinned underneath the anchor, relative to the stage container.
func PositionBelowAnchor(anchor, container Rect, elementWidth, offsetY float64) (left, top float64) {
	left = anchor.Left - container.Left + anchor.Width/2 - elementWidth/2 + chipBarRightOffset
	top = anchor.Bottom() - container.Top + offsetY
	return left, top
}

// ClampPanelSize applies the documented panel minimums to a resize result.
func ClampPanelSize(width, height float64) (float64, float64) {
	if width < MinPanelWidth {
		width = MinPanelWidth
	}
	if height < MinPanelHeight {
		height = MinPanelHeight
	}
	return width, height
}
