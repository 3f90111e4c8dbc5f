package reelmark

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport maps absolute timeline time (ms) to horizontal pixels inside the
// current scope. It plays the role a camera plays in a 2D scene: ScrollOffset
// is the time at the left edge, Zoom divides the scope duration into the
// visible duration, and every mutator clamps the offset back into the scope.
type Viewport struct {
	// ScopeStart and ScopeEnd bound the scrollable time range.
	ScopeStart, ScopeEnd int64
	// Zoom is the scope-to-visible ratio (1 = whole scope visible).
	Zoom float64
	// ScrollOffset is the time (ms) shown at x = 0.
	ScrollOffset float64
	// Width is the drawable width in pixels.
	Width float64

	MinZoom, MaxZoom float64

	scrollTween  *gween.Tween
	scrollTarget float64
}

// NewViewport creates a viewport over [0, duration] at zoom 1.
func NewViewport(width float64, duration int64) Viewport {
	return Viewport{
		ScopeEnd: duration,
		Zoom:     1.0,
		Width:    width,
		MinZoom:  1.0,
		MaxZoom:  50.0,
	}
}

// ScopeDuration returns max(1, ScopeEnd-ScopeStart).
func (v *Viewport) ScopeDuration() float64 {
	return math.Max(1, float64(v.ScopeEnd-v.ScopeStart))
}

// VisibleDuration returns the amount of time spanned by Width pixels.
func (v *Viewport) VisibleDuration() float64 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return v.ScopeDuration() / zoom
}

// TimeToX converts a time in ms to a pixel offset from the left edge.
func (v *Viewport) TimeToX(t float64) float64 {
	if v.Width <= 0 {
		return 0
	}
	return (t - v.ScrollOffset) / v.VisibleDuration() * v.Width
}

// XToTime converts a pixel offset to a time in ms.
func (v *Viewport) XToTime(x float64) float64 {
	if v.Width <= 0 {
		return v.ScrollOffset
	}
	return v.ScrollOffset + (x/v.Width)*v.VisibleDuration()
}

// VisibleRange returns the times at the left and right edges.
func (v *Viewport) VisibleRange() (start, end float64) {
	return v.ScrollOffset, v.ScrollOffset + v.VisibleDuration()
}

// MaxOffset returns the largest offset that keeps the right edge inside the scope.
func (v *Viewport) MaxOffset() float64 {
	return math.Max(float64(v.ScopeStart), float64(v.ScopeEnd)-v.VisibleDuration())
}

// Clamp restricts Zoom to [MinZoom, MaxZoom] and ScrollOffset to
// [ScopeStart, MaxOffset].
func (v *Viewport) Clamp() {
	v.Zoom = clampf(v.Zoom, v.MinZoom, v.MaxZoom)
	v.ScrollOffset = clampf(v.ScrollOffset, float64(v.ScopeStart), v.MaxOffset())
}

// SetScope moves the viewport to a new scope, resetting zoom to 1 and
// scrolling to offset. Any scroll animation is dropped.
func (v *Viewport) SetScope(start, end int64, offset float64) {
	v.ScopeStart, v.ScopeEnd = start, end
	v.Zoom = 1.0
	v.ScrollOffset = offset
	v.scrollTween = nil
	v.Clamp()
}

// ZoomAt multiplies the zoom by (1±step) while keeping the time under pixel x
// fixed on screen. in selects the direction.
func (v *Viewport) ZoomAt(x float64, in bool, step float64) {
	anchor := v.XToTime(x)
	factor := 1 + step
	if !in {
		factor = 1 - step
	}
	v.Zoom = clampf(v.Zoom*factor, v.MinZoom, v.MaxZoom)
	if v.Width > 0 {
		v.ScrollOffset = anchor - (x/v.Width)*v.VisibleDuration()
	}
	v.scrollTween = nil
	v.Clamp()
}

// ScrollBy moves the view by ticks wheel steps, each step fraction of the
// visible duration. Positive ticks scroll toward later times.
func (v *Viewport) ScrollBy(ticks int, fraction float64) {
	v.ScrollOffset += float64(ticks) * v.VisibleDuration() * fraction
	v.scrollTween = nil
	v.Clamp()
}

// ScrollTo animates ScrollOffset to t over duration seconds. The target is
// clamped up front; Update drives the animation.
func (v *Viewport) ScrollTo(t float64, duration float32, easeFn ease.TweenFunc) {
	target := clampf(t, float64(v.ScopeStart), v.MaxOffset())
	if duration <= 0 {
		v.ScrollOffset = target
		v.scrollTween = nil
		return
	}
	v.scrollTween = gween.New(float32(v.ScrollOffset), float32(target), duration, easeFn)
	v.scrollTarget = target
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Update advances the scroll animation by dt seconds.
func (v *Viewport) Update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollOffset = float64(val)
	if done {
		v.ScrollOffset = v.scrollTarget
		v.scrollTween = nil
	}
	v.Clamp()
}

// Reveal scrolls so t is visible, keeping it where it was if already shown.
// Used to follow the playhead.
func (v *Viewport) Reveal(t float64, duration float32) {
	start, end := v.VisibleRange()
	if t >= start && t <= end {
		return
	}
	v.ScrollTo(t-v.VisibleDuration()/2, duration, ease.OutQuad)
}

func clampf(x, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(x, hi))
}
