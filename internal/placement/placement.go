// Package placement positions a tour tooltip next to its target without
// covering it.
//
// The engine tries, in a fixed order, to place the tooltip below, above, to
// the right of, and finally to the left of the target. The order never varies,
// so the same geometry always yields the same position.
//
// Units are whatever the host measures in: pixels for a browser-style host,
// cells for the terminal host.
package placement

// Rect is the viewport-relative geometry of an on-screen element.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Grow returns r expanded by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	return Rect{
		Top:    r.Top - margin,
		Left:   r.Left - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Side says where the tooltip ended up relative to its target.
type Side string

const (
	SideCenter Side = "center"
	SideBelow  Side = "below"
	SideAbove  Side = "above"
	SideRight  Side = "right"
	SideLeft   Side = "left"
)

// Position is the computed top-left corner of the tooltip.
type Position struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
	Side Side    `json:"side"`
}

// Defaults match the browser host: a 380x220 card kept 16px from its target
// and from the viewport edges.
const (
	DefaultPadding       = 16
	DefaultTooltipWidth  = 380
	DefaultTooltipHeight = 220

	// SpotlightMargin is how far the highlight ring extends past the target.
	SpotlightMargin = 8
)

// Engine holds the fixed parameters of the placement algorithm.
type Engine struct {
	// Padding is the gap between tooltip and target, and the minimum
	// clearance from the viewport edges.
	Padding float64

	// Tooltip is the tooltip size.
	Tooltip Size
}

// Default returns an [Engine] with the browser host dimensions.
func Default() Engine {
	return Engine{
		Padding: DefaultPadding,
		Tooltip: Size{Width: DefaultTooltipWidth, Height: DefaultTooltipHeight},
	}
}

// Place computes the tooltip position for target inside viewport.
//
// A nil target centers the tooltip in the viewport. Otherwise the first side
// that fits wins, in the order below, above, right, left; left is used
// unconditionally when nothing else fits.
func (e Engine) Place(target *Rect, viewport Size) Position {
	tw, th := e.Tooltip.Width, e.Tooltip.Height
	pad := e.Padding

	if target == nil {
		return Position{
			Top:  (viewport.Height - th) / 2,
			Left: (viewport.Width - tw) / 2,
			Side: SideCenter,
		}
	}

	t := *target

	if t.Bottom()+pad+th < viewport.Height {
		return Position{
			Top:  t.Bottom() + pad,
			Left: e.clampX(t.CenterX()-tw/2, viewport),
			Side: SideBelow,
		}
	}

	if t.Top-pad-th > 0 {
		return Position{
			Top:  t.Top - pad - th,
			Left: e.clampX(t.CenterX()-tw/2, viewport),
			Side: SideAbove,
		}
	}

	if t.Right()+pad+tw < viewport.Width {
		return Position{
			Top:  e.clampY(t.CenterY() - th/2),
			Left: t.Right() + pad,
			Side: SideRight,
		}
	}

	return Position{
		Top:  e.clampY(t.CenterY() - th/2),
		Left: t.Left - tw - pad,
		Side: SideLeft,
	}
}

// clampX keeps the tooltip within [padding, viewport.Width-tooltip-padding].
// The lower bound wins when the viewport is narrower than the tooltip.
func (e Engine) clampX(x float64, viewport Size) float64 {
	return max(e.Padding, min(x, viewport.Width-e.Tooltip.Width-e.Padding))
}

// clampY keeps the tooltip at least padding below the top edge.
func (e Engine) clampY(y float64) float64 {
	return max(e.Padding, y)
}

// Spotlight returns the highlight ring drawn around target, or nil when
// there is no target.
func Spotlight(target *Rect) *Rect {
	if target == nil {
		return nil
	}
	ring := target.Grow(SpotlightMargin)
	return &ring
}
