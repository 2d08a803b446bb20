// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package logcanvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/welllog"
	"github.com/gogpu/welllog/canvas"
	"github.com/gogpu/welllog/internal/wlog"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("logcanvas: canvas is closed")

	// ErrNilPanel is returned when New is called without a panel.
	ErrNilPanel = errors.New("logcanvas: nil panel")
)

// Canvas keeps a GPU texture in sync with a panel.
type Canvas struct {
	gc     *ggcanvas.Canvas
	panel  *welllog.Panel
	dpr    float64
	stale  bool
	cancel func()
	frame  welllog.Frame
	frames int
	closed bool
}

// New creates a canvas sized to the panel's plot region at the given device
// pixel ratio (<= 0 means 1) and subscribes to panel changes.
func New(provider gpucontext.DeviceProvider, panel *welllog.Panel, dpr float64) (*Canvas, error) {
	if panel == nil {
		return nil, ErrNilPanel
	}
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	w, h := physicalSize(panel, dpr)
	gc, err := ggcanvas.New(provider, w, h)
	if err != nil {
		return nil, fmt.Errorf("logcanvas: %w", err)
	}
	c := &Canvas{gc: gc, panel: panel, dpr: dpr, stale: true}
	c.cancel = panel.OnChange(func() { c.stale = true })
	return c, nil
}

func physicalSize(p *welllog.Panel, dpr float64) (int, int) {
	plot := p.Layout().Plot.Rect
	w := int(math.Ceil(plot.W * dpr))
	h := int(math.Ceil(plot.H * dpr))
	return max(w, 1), max(h, 1)
}

// Panel returns the panel shown by the canvas.
func (c *Canvas) Panel() *welllog.Panel { return c.panel }

// DevicePixelRatio returns the physical-to-logical scale.
func (c *Canvas) DevicePixelRatio() float64 { return c.dpr }

// Size returns the texture size in device pixels.
func (c *Canvas) Size() (width, height int) { return c.gc.Size() }

// Stale reports whether the panel changed since the last repaint.
func (c *Canvas) Stale() bool { return c.stale }

// Frame returns the summary of the last repaint.
func (c *Canvas) Frame() welllog.Frame { return c.frame }

// Frames returns the number of repaints so far.
func (c *Canvas) Frames() int { return c.frames }

// Context returns the backing gg context, or nil once closed.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.gc.Context()
}

// SetDevicePixelRatio changes the pixel ratio, for example when the window
// moves to another monitor.
func (c *Canvas) SetDevicePixelRatio(dpr float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if !(dpr > 0) || math.IsInf(dpr, 0) || dpr == c.dpr {
		return nil
	}
	c.dpr = dpr
	return c.sync()
}

// Resize sets the panel viewport height in logical pixels and resizes the
// texture to match the new plot region.
func (c *Canvas) Resize(heightPx float64) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.panel.Resize(heightPx)
	return c.sync()
}

// sync resizes the texture to the panel layout. Track count changes on
// well switches also change the width.
func (c *Canvas) sync() error {
	w, h := physicalSize(c.panel, c.dpr)
	if gw, gh := c.gc.Size(); gw == w && gh == h {
		return nil
	}
	if err := c.gc.Resize(w, h); err != nil {
		return fmt.Errorf("logcanvas: %w", err)
	}
	c.stale = true
	return nil
}

// Redraw repaints the panel if it changed since the last repaint.
func (c *Canvas) Redraw() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := c.sync(); err != nil {
		return err
	}
	if !c.stale {
		return nil
	}
	var renderErr error
	if err := c.gc.Draw(func(dc *gg.Context) {
		img := canvas.Wrap(dc, c.dpr)
		img.Clear(gg.White)
		c.frame, renderErr = c.panel.Render(img)
	}); err != nil {
		return fmt.Errorf("logcanvas: %w", err)
	}
	if renderErr != nil {
		return fmt.Errorf("logcanvas: render: %w", renderErr)
	}
	c.stale = false
	c.frames++
	wlog.Logger().Debug("logcanvas: repainted",
		"state", c.frame.State.String(),
		"samples", c.frame.SamplesVisited,
		"duration", c.frame.Duration)
	return nil
}

// Flush repaints if needed and uploads the pixels, returning the texture.
func (c *Canvas) Flush() (any, error) {
	if err := c.Redraw(); err != nil {
		return nil, err
	}
	return c.gc.Flush()
}

// RenderTo repaints if needed and draws the texture at the window origin.
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition repaints if needed and draws the texture at (x, y)
// window pixels.
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if err := c.Redraw(); err != nil {
		return err
	}
	return c.gc.RenderToPosition(dc, x, y)
}

// Close unsubscribes from the panel and releases the texture.
// Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return c.gc.Close()
}
