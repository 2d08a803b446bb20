// Package track draws one column of well-log curves.
//
// A Track is built once per well load and holds the curves of one column
// together with their precomputed value domains. Render is a pure function
// of the track, the viewport state and the options: it clears the column
// and repaints it, touching only the samples inside the visible depth window.
package track

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/welllog/canvas"
	"github.com/gogpu/welllog/internal/wlog"
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/viewport"
)

// Entry is one curve of a track with its resolved depth array and domain.
type Entry struct {
	Curve *model.Curve
	// Depths is the curve's own depth array, or the master array when the
	// curve carries none of matching length. Nil means the curve is unusable.
	Depths []float64
	Domain Domain
	// HasData reports whether Domain is usable.
	HasData bool
	// PaletteIndex picks the fallback color.
	PaletteIndex int
}

// Track is a fixed group of curves rendered into one column.
type Track struct {
	Index   int
	Entries []Entry
}

// New builds a track from curves. master is the well's reference depth
// array, used for curves whose own depths do not pair with their values.
// paletteStart is the palette index of the first curve.
func New(index int, curves []*model.Curve, master []float64, paletteStart int) Track {
	tr := Track{Index: index, Entries: make([]Entry, 0, len(curves))}
	for i, c := range curves {
		e := Entry{Curve: c, PaletteIndex: paletteStart + i}
		switch {
		case c == nil:
		case c.Valid():
			e.Depths = c.Depths
		case len(master) > 0 && len(master) == len(c.Values):
			e.Depths = master
		default:
			wlog.Logger().Warn("track: curve depths do not match values",
				"curve", c.Name, "depths", len(c.Depths), "values", len(c.Values))
		}
		if e.Depths != nil {
			e.Domain, e.HasData = ComputeDomain(c.Values, c.Style.Scale)
		}
		tr.Entries = append(tr.Entries, e)
	}
	return tr
}

// HasData reports whether any curve in the track has a usable sample.
func (t Track) HasData() bool {
	for _, e := range t.Entries {
		if e.HasData {
			return true
		}
	}
	return false
}

// Names returns the curve names in track order.
func (t Track) Names() []string {
	names := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		if e.Curve != nil {
			names = append(names, e.Curve.Name)
		}
	}
	return names
}

// Segments returns the polylines of samples lo..hi-1. A sample that cannot
// be mapped (NaN, infinite, non-positive on a log scale) ends the current
// polyline; the next usable sample starts a new one. Gaps are never bridged.
func Segments(depths, values []float64, lo, hi int, d Domain, t viewport.Transform, width float64) [][]canvas.Point {
	var (
		segs [][]canvas.Point
		cur  []canvas.Point
	)
	hi = min(hi, len(depths), len(values))
	for i := max(lo, 0); i < hi; i++ {
		x, ok := d.X(values[i], width)
		if ok && !model.IsSample(depths[i]) {
			ok = false
		}
		if !ok {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, canvas.Point{X: x, Y: t.DepthToPixel(depths[i])})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// Options configure a track render.
type Options struct {
	Width    float64
	Height   float64
	BufferPx float64

	LineWidth  float64
	FillAlpha  float64
	Background gg.RGBA
	Border     gg.RGBA
	Grid       gg.RGBA
	// GridLines is the number of vertical divisions; 0 disables the grid.
	GridLines int

	NoDataText  string
	NoDataColor gg.RGBA
	FontSize    float64
}

// DefaultOptions returns options for a width x height column.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:       width,
		Height:      height,
		BufferPx:    50,
		LineWidth:   1.5,
		FillAlpha:   0.25,
		Background:  gg.White,
		Border:      gg.Hex("#999999"),
		Grid:        gg.Hex("#e5e5e5"),
		GridLines:   4,
		NoDataText:  "No data",
		NoDataColor: gg.Hex("#888888"),
		FontSize:    11,
	}
}

// CurveResult describes how one curve was drawn.
type CurveResult struct {
	Name     string
	Segments int
	Samples  int
}

// Result summarizes a render pass.
type Result struct {
	Curves []CurveResult
	// SamplesVisited is the number of samples walked over all curves.
	SamplesVisited int
	NoData         bool
}

// Render clears the column and draws every visible curve of tr.
func Render(c canvas.Canvas, tr Track, st viewport.State, opt Options) (Result, error) {
	var res Result
	c.Save()
	defer c.Restore()
	c.ClipRect(0, 0, opt.Width, opt.Height)

	c.SetColor(opt.Background)
	if err := c.FillRect(0, 0, opt.Width, opt.Height); err != nil {
		return res, err
	}
	if err := drawFrame(c, opt); err != nil {
		return res, err
	}

	if !tr.HasData() {
		res.NoData = true
		c.SetColor(opt.NoDataColor)
		c.DrawText(opt.NoDataText, opt.Width/2, opt.Height/2, 0.5, 0.5, opt.FontSize)
		return res, nil
	}

	t := st.Transform()
	if !t.Valid() {
		return res, nil
	}
	for _, e := range tr.Entries {
		if !e.HasData || !st.IsCurveVisible(e.Curve.Name) {
			continue
		}
		cr, err := drawCurve(c, e, curveColor(e, st), t, opt)
		if err != nil {
			return res, err
		}
		res.SamplesVisited += cr.Samples
		res.Curves = append(res.Curves, cr)
	}
	return res, nil
}

func curveColor(e Entry, st viewport.State) gg.RGBA {
	fallback := canvas.ColorOr(canvas.PaletteColor(e.PaletteIndex), gg.Black)
	if s, ok := st.CurveColor(e.Curve.Name); ok {
		return canvas.ColorOr(s, fallback)
	}
	return canvas.ColorOr(e.Curve.Style.Color, fallback)
}

func drawFrame(c canvas.Canvas, opt Options) error {
	c.SetLineWidth(1)
	c.SetDash()
	if opt.GridLines > 1 {
		c.SetColor(opt.Grid)
		for i := 1; i < opt.GridLines; i++ {
			x := opt.Width * float64(i) / float64(opt.GridLines)
			c.MoveTo(x, 0)
			c.LineTo(x, opt.Height)
		}
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	c.SetColor(opt.Border)
	c.MoveTo(0.5, 0)
	c.LineTo(0.5, opt.Height)
	c.MoveTo(opt.Width-0.5, 0)
	c.LineTo(opt.Width-0.5, opt.Height)
	return c.Stroke()
}

func drawCurve(c canvas.Canvas, e Entry, color gg.RGBA, t viewport.Transform, opt Options) (CurveResult, error) {
	lo, hi := VisibleRange(e.Depths, t, opt.Height, opt.BufferPx)
	segs := Segments(e.Depths, e.Curve.Values, lo, hi, e.Domain, t, opt.Width)
	cr := CurveResult{Name: e.Curve.Name, Segments: len(segs), Samples: hi - lo}
	if len(segs) == 0 {
		return cr, nil
	}

	c.SetColor(color)
	c.SetLineWidth(opt.LineWidth)
	c.SetDash()
	for _, seg := range segs {
		if len(seg) == 1 {
			// An isolated sample is drawn as a short tick.
			c.MoveTo(seg[0].X-1, seg[0].Y)
			c.LineTo(seg[0].X+1, seg[0].Y)
			continue
		}
		c.MoveTo(seg[0].X, seg[0].Y)
		for _, p := range seg[1:] {
			c.LineTo(p.X, p.Y)
		}
	}
	if err := c.Stroke(); err != nil {
		return cr, err
	}

	fill := e.Curve.Style.Fill
	if fill == model.FillNone {
		return cr, nil
	}
	edge := 0.0
	if fill == model.FillRight {
		edge = opt.Width
	}
	c.SetColor(canvas.WithAlpha(color, color.A*opt.FillAlpha))
	for _, seg := range segs {
		if len(seg) < 2 {
			continue
		}
		c.MoveTo(edge, seg[0].Y)
		for _, p := range seg {
			c.LineTo(p.X, p.Y)
		}
		c.LineTo(edge, seg[len(seg)-1].Y)
		c.ClosePath()
	}
	return cr, c.Fill()
}
