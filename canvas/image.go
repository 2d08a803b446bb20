package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/welllog/internal/wlog"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// labelFont returns the shared label font source (Go Regular).
func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("canvas: load label font: %w", fontErr)
		}
	})
	return fontSource, fontErr
}

// imageState is the part of the drawing state saved by Save.
type imageState struct {
	ox, oy    float64
	lineWidth float64
	dash      []float64
}

// Image is a raster Canvas backed by a gg.Context.
//
// The backing pixmap has ceil(width*dpr) x ceil(height*dpr) physical pixels;
// callers draw in logical pixels and Image scales every coordinate, line
// width and font size by the device pixel ratio.
//
// Image is NOT safe for concurrent use.
type Image struct {
	dc     *gg.Context
	width  float64
	height float64
	dpr    float64
	owned  bool

	state imageState
	stack []imageState
	faces map[float64]text.Face
}

// NewImage creates an image of width x height logical pixels.
// A dpr <= 0 is treated as 1.
func NewImage(width, height int, dpr float64) *Image {
	dpr = normalizeDPR(dpr)
	pw := int(math.Ceil(float64(width) * dpr))
	ph := int(math.Ceil(float64(height) * dpr))
	img := Wrap(gg.NewContext(max(pw, 1), max(ph, 1)), dpr)
	img.width, img.height = float64(width), float64(height)
	img.owned = true
	return img
}

// Wrap adapts an existing gg.Context. The logical size is the context size
// divided by dpr. The caller keeps ownership of dc.
func Wrap(dc *gg.Context, dpr float64) *Image {
	dpr = normalizeDPR(dpr)
	img := &Image{
		dc:     dc,
		width:  float64(dc.Width()) / dpr,
		height: float64(dc.Height()) / dpr,
		dpr:    dpr,
		faces:  make(map[float64]text.Face),
	}
	img.state.lineWidth = 1
	dc.SetLineWidth(dpr)
	return img
}

func normalizeDPR(dpr float64) float64 {
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		return 1
	}
	return dpr
}

// Context returns the underlying gg context.
func (m *Image) Context() *gg.Context { return m.dc }

// Size returns the logical size.
func (m *Image) Size() (width, height float64) { return m.width, m.height }

// DevicePixelRatio returns the physical-to-logical scale.
func (m *Image) DevicePixelRatio() float64 { return m.dpr }

// PhysicalSize returns the backing store size in device pixels.
func (m *Image) PhysicalSize() (width, height int) { return m.dc.Width(), m.dc.Height() }

func (m *Image) px(x, y float64) (float64, float64) {
	return (x + m.state.ox) * m.dpr, (y + m.state.oy) * m.dpr
}

// Clear fills the whole image with c, ignoring clip and translation.
func (m *Image) Clear(c gg.RGBA) {
	m.dc.ClearWithColor(c)
}

// Save implements Canvas.
func (m *Image) Save() {
	st := m.state
	st.dash = append([]float64(nil), m.state.dash...)
	m.stack = append(m.stack, st)
	m.dc.Push()
}

// Restore implements Canvas.
func (m *Image) Restore() {
	if len(m.stack) == 0 {
		return
	}
	m.state = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.dc.Pop()
	m.applyStroke()
}

// Translate implements Canvas.
func (m *Image) Translate(dx, dy float64) {
	m.state.ox += dx
	m.state.oy += dy
}

// ClipRect implements Canvas.
func (m *Image) ClipRect(x, y, w, h float64) {
	px, py := m.px(x, y)
	m.dc.ClipRect(px, py, w*m.dpr, h*m.dpr)
}

// SetColor implements Canvas.
func (m *Image) SetColor(c gg.RGBA) {
	m.dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// SetLineWidth implements Canvas.
func (m *Image) SetLineWidth(w float64) {
	m.state.lineWidth = w
	m.dc.SetLineWidth(w * m.dpr)
}

// SetDash implements Canvas.
func (m *Image) SetDash(lengths ...float64) {
	m.state.dash = append(m.state.dash[:0], lengths...)
	m.applyDash()
}

func (m *Image) applyStroke() {
	m.dc.SetLineWidth(m.state.lineWidth * m.dpr)
	m.applyDash()
}

func (m *Image) applyDash() {
	if len(m.state.dash) == 0 {
		m.dc.ClearDash()
		return
	}
	scaled := make([]float64, len(m.state.dash))
	for i, l := range m.state.dash {
		scaled[i] = l * m.dpr
	}
	m.dc.SetDash(scaled...)
}

// MoveTo implements Canvas.
func (m *Image) MoveTo(x, y float64) { m.dc.MoveTo(m.px(x, y)) }

// LineTo implements Canvas.
func (m *Image) LineTo(x, y float64) { m.dc.LineTo(m.px(x, y)) }

// ClosePath implements Canvas.
func (m *Image) ClosePath() { m.dc.ClosePath() }

// Stroke implements Canvas.
func (m *Image) Stroke() error { return m.dc.Stroke() }

// Fill implements Canvas.
func (m *Image) Fill() error { return m.dc.Fill() }

// FillRect implements Canvas.
func (m *Image) FillRect(x, y, w, h float64) error {
	px, py := m.px(x, y)
	m.dc.DrawRectangle(px, py, w*m.dpr, h*m.dpr)
	return m.dc.Fill()
}

// DrawText implements Canvas. Text is skipped when the label font cannot
// be loaded.
func (m *Image) DrawText(s string, x, y, ax, ay, size float64) {
	face, ok := m.face(size)
	if !ok {
		return
	}
	m.dc.SetFont(face)
	px, py := m.px(x, y)
	m.dc.DrawStringAnchored(s, px, py, ax, ay)
}

func (m *Image) face(size float64) (text.Face, bool) {
	if f, ok := m.faces[size]; ok {
		return f, true
	}
	src, err := labelFont()
	if err != nil {
		wlog.Logger().Warn("canvas: text disabled", "err", err)
		return nil, false
	}
	f := src.Face(size * m.dpr)
	m.faces[size] = f
	return f, true
}

// Image returns the rendered pixels at physical resolution.
func (m *Image) Image() image.Image { return m.dc.Image() }

// SubImage copies the logical region r (at physical resolution) into a new
// image. Regions outside the image are clipped.
func (m *Image) SubImage(r Rect) *image.RGBA {
	src := m.dc.Image()
	phys := image.Rect(
		int(math.Floor(r.X*m.dpr)),
		int(math.Floor(r.Y*m.dpr)),
		int(math.Ceil((r.X+r.W)*m.dpr)),
		int(math.Ceil((r.Y+r.H)*m.dpr)),
	).Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, phys.Dx(), phys.Dy()))
	draw.Draw(dst, dst.Bounds(), src, phys.Min, draw.Src)
	return dst
}

// EncodePNG writes the image as PNG.
func (m *Image) EncodePNG(w io.Writer) error { return m.dc.EncodePNG(w) }

// SavePNG writes the image to a PNG file.
func (m *Image) SavePNG(path string) error { return m.dc.SavePNG(path) }

// SaveRegionPNG writes the logical region r to a PNG file at physical
// resolution.
func (m *Image) SaveRegionPNG(r Rect, path string) error {
	dc := gg.NewContextForImage(m.SubImage(r))
	defer func() { _ = dc.Close() }()
	return dc.SavePNG(path)
}

// Close releases the context if the Image created it.
func (m *Image) Close() error {
	if !m.owned {
		return nil
	}
	return m.dc.Close()
}
