package viewport

import "math"

// Transform is the (zoom, scroll) pair every layer derives its pixel
// positions from. Zoom is pixels per depth unit; Scroll is the depth shown
// at the top edge of the visible window.
//
// Two layers given the same Transform place a depth at the same y, so the
// ruler, the tracks and the marker overlay stay aligned without talking to
// each other.
type Transform struct {
	Zoom   float64
	Scroll float64
}

// DepthToPixel returns the y offset of depth relative to the top of the window.
func (t Transform) DepthToPixel(depth float64) float64 {
	return (depth - t.Scroll) * t.Zoom
}

// PixelToDepth returns the depth displayed at y offset pixel.
func (t Transform) PixelToDepth(pixel float64) float64 {
	return pixel/t.Zoom + t.Scroll
}

// Valid reports whether the transform can be used for coordinate math.
func (t Transform) Valid() bool {
	return t.Zoom > 0 && !math.IsInf(t.Zoom, 0) && !math.IsNaN(t.Scroll) && !math.IsInf(t.Scroll, 0)
}

// VisibleDepths returns the depth interval covered by a window of heightPx
// pixels, widened by bufferPx on both sides.
func (t Transform) VisibleDepths(heightPx, bufferPx float64) (top, bottom float64) {
	return t.PixelToDepth(-bufferPx), t.PixelToDepth(heightPx + bufferPx)
}

// ScrollOffsetToDepth converts a scroll container offset in pixels to the
// depth at the top of the window. The content starts at minDepth.
func ScrollOffsetToDepth(offset, zoom, minDepth float64) float64 {
	return Transform{Zoom: zoom, Scroll: minDepth}.PixelToDepth(offset)
}

// DepthToScrollOffset is the inverse of ScrollOffsetToDepth.
func DepthToScrollOffset(depth, zoom, minDepth float64) float64 {
	return Transform{Zoom: zoom, Scroll: minDepth}.DepthToPixel(depth)
}
