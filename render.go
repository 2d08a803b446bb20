package welllog

import (
	"context"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/welllog/canvas"
	"github.com/gogpu/welllog/overlay"
	"github.com/gogpu/welllog/ruler"
	"github.com/gogpu/welllog/track"
)

// Placeholder texts shown instead of the plot.
const (
	NoWellText       = "No well selected"
	LoadingText      = "Loading well data..."
	InvalidRangeText = "No valid depth range for this well"
)

// Frame summarizes one render pass.
type Frame struct {
	State State
	// Placeholder is the text drawn instead of the plot, if any.
	Placeholder    string
	Ticks          int
	Tracks         []track.Result
	Markers        int
	SamplesVisited int
	Duration       time.Duration
}

// Render clears the plot region of c and draws the current frame: the
// ruler, every track and the marker overlay, or a placeholder when there is
// nothing to plot. Render only reads panel state.
func (p *Panel) Render(c canvas.Canvas) (Frame, error) {
	start := time.Now()
	f := Frame{State: p.state}
	err := p.render(c, &f)
	f.Duration = time.Since(start)
	if err == nil {
		p.metrics.Frame(context.Background(), p.state.String(), f.Duration, f.SamplesVisited)
	}
	return f, err
}

func (p *Panel) render(c canvas.Canvas, f *Frame) error {
	layout := p.Layout()
	plot := layout.Plot.Rect

	c.Save()
	defer c.Restore()
	c.ClipRect(plot.X, plot.Y, plot.W, plot.H)
	c.SetColor(gg.White)
	if err := c.FillRect(plot.X, plot.Y, plot.W, plot.H); err != nil {
		return err
	}

	switch {
	case p.state == StateNoWell:
		f.Placeholder = NoWellText
	case p.state == StateLoading:
		f.Placeholder = LoadingText
	case !p.domainOK:
		f.Placeholder = InvalidRangeText
	}
	if f.Placeholder != "" {
		c.SetColor(gg.Hex("#666666"))
		c.DrawText(f.Placeholder, plot.X+plot.W/2, plot.Y+plot.H/2, 0.5, 0.5, 13)
		return nil
	}

	st := p.view.Snapshot()
	t := st.Transform()
	h := p.opts.viewportHeight

	ticks := ruler.Ticks(ruler.Params{
		Domain:    p.domain,
		Transform: t,
		HeightPx:  h,
		BufferPx:  p.opts.bufferPx,
	})
	f.Ticks = len(ticks)
	rs := p.opts.rulerStyle
	if p.well != nil && p.well.Range.Unit != "" {
		rs.Unit = p.well.Range.Unit
	}
	if err := drawAt(c, layout.Ruler.Rect, func() error {
		return ruler.Render(c, ticks, rs, layout.Ruler.Rect.W, h)
	}); err != nil {
		return err
	}

	for i, tr := range p.tracks {
		r := layout.Tracks[i].Rect
		opt := track.DefaultOptions(r.W, h)
		opt.BufferPx = p.opts.bufferPx
		var res track.Result
		if err := drawAt(c, r, func() error {
			var err error
			res, err = track.Render(c, tr, st, opt)
			return err
		}); err != nil {
			return err
		}
		f.SamplesVisited += res.SamplesVisited
		f.Tracks = append(f.Tracks, res)
	}

	placements := p.Placements()
	f.Markers = len(placements)
	return drawAt(c, layout.Overlay.Rect, func() error {
		return overlay.Render(c, placements, p.opts.markerStyle, layout.Overlay.Rect.W, h)
	})
}

// drawAt runs draw with the origin moved to r.
func drawAt(c canvas.Canvas, r canvas.Rect, draw func() error) error {
	c.Save()
	defer c.Restore()
	c.Translate(r.X, r.Y)
	return draw()
}

// Record renders the current frame into a vector recording. The recording
// can be inspected or played back onto any canvas at any pixel ratio.
func (p *Panel) Record() (*canvas.Recording, Frame, error) {
	plot := p.Layout().Plot.Rect
	rec := canvas.NewRecorder(plot.W, plot.H)
	f, err := p.Render(rec)
	if err != nil {
		return nil, f, err
	}
	return rec.Finish(), f, nil
}

// RenderImage renders the current frame into a new raster image at the
// given device pixel ratio. The caller closes the image.
func (p *Panel) RenderImage(dpr float64) (*canvas.Image, Frame, error) {
	plot := p.Layout().Plot.Rect
	img := canvas.NewImage(int(plot.W), int(plot.H), dpr)
	f, err := p.Render(img)
	if err != nil {
		_ = img.Close()
		return nil, f, err
	}
	return img, f, nil
}
