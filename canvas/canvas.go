// Package canvas is the drawing surface the log renderers paint on.
//
// Renderers only see the Canvas interface and work in logical (CSS) pixels.
// Two implementations are provided:
//
//   - Image: a raster surface backed by a gg.Context whose backing store is
//     scaled by the device pixel ratio.
//   - Recorder: captures typed drawing commands into a Recording that can be
//     inspected in tests or played back onto any Canvas.
//
// # Example
//
//	img := canvas.NewImage(800, 600, 2) // 1600x1200 physical pixels
//	defer img.Close()
//	img.SetColor(gg.Black)
//	img.MoveTo(10, 10)
//	img.LineTo(100, 100)
//	_ = img.Stroke()
//	_ = img.SavePNG("out.png")
package canvas

import "github.com/gogpu/gg"

// Canvas is the subset of an immediate-mode 2D API used by the renderers.
// All coordinates and lengths are logical pixels.
//
// Save/Restore bracket Translate, ClipRect, color, line width and dash
// changes.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	ClipRect(x, y, w, h float64)

	SetColor(c gg.RGBA)
	SetLineWidth(w float64)
	// SetDash sets a dash pattern; no arguments restores solid lines.
	SetDash(lengths ...float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Stroke strokes and clears the current path.
	Stroke() error
	// Fill fills and clears the current path.
	Fill() error

	FillRect(x, y, w, h float64) error
	// DrawText draws s anchored at (x, y). ax and ay are in [0, 1]:
	// (0, 0) puts the text baseline start at the point, (1, 0) ends it there,
	// (0.5, 0.5) centers the text vertically and horizontally.
	DrawText(s string, x, y, ax, ay, size float64)
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
