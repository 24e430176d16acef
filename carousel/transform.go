// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package carousel

import (
	"fmt"
	"math"
)

// Layout constants for the stacked-card look.
const (
	baseZIndex     = 100
	baseDepthPx    = 100
	depthStepPx    = 40
	scaleStep      = 0.06
	minScale       = 0.86
	shiftPercent   = 55
	rotateStepDeg  = -8
	visibleRadius  = 2
	minSwipePx     = 40
	swipeViewRatio = 0.10
)

// Transform is the visual placement of one slide relative to the current one.
type Transform struct {
	Offset     int     `json:"offset"`
	ZIndex     int     `json:"z_index"`
	TranslateX float64 `json:"translate_x"` // percent of slide width
	TranslateZ float64 `json:"translate_z"` // px
	Scale      float64 `json:"scale"`
	RotateY    float64 `json:"rotate_y"` // degrees
	Opacity    float64 `json:"opacity"`
}

// TransformFor computes the transform for a slide at signed offset o from the
// current index. Offsets are not wrapped.
func TransformFor(o int) Transform {
	abs := o
	if abs < 0 {
		abs = -abs
	}

	opacity := 1.0
	if abs > visibleRadius {
		opacity = 0
	}

	return Transform{
		Offset:     o,
		ZIndex:     baseZIndex - abs,
		TranslateX: float64(o * shiftPercent),
		TranslateZ: float64(baseDepthPx - abs*depthStepPx),
		Scale:      math.Max(minScale, 1-float64(abs)*scaleStep),
		RotateY:    float64(o * rotateStepDeg),
		Opacity:    opacity,
	}
}

// CSS renders the transform as a CSS transform value.
func (t Transform) CSS() string {
	return fmt.Sprintf("translateX(%g%%) translateZ(%gpx) scale(%g) rotateY(%gdeg)",
		t.TranslateX, t.TranslateZ, t.Scale, t.RotateY)
}

// Direction is the navigation a gesture resolves to.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "next"
	case Backward:
		return "prev"
	default:
		return "none"
	}
}

// SwipeThreshold is the minimum horizontal travel, in px, for a swipe on a
// viewport of the given width.
func SwipeThreshold(viewportWidth float64) float64 {
	return math.Max(minSwipePx, viewportWidth*swipeViewRatio)
}

// ResolveSwipe maps a drag (dx, dy in px) to a direction. The drag must travel
// further than the threshold and further horizontally than vertically.
// Dragging left moves forward.
func ResolveSwipe(dx, dy, viewportWidth float64) Direction {
	adx := math.Abs(dx)
	if adx <= SwipeThreshold(viewportWidth) || adx <= math.Abs(dy) {
		return None
	}
	if dx < 0 {
		return Forward
	}
	return Backward
}
