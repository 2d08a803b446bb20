// Package overlay places stratigraphic markers over the log tracks and
// handles click-to-select.
//
// Placement uses the same viewport.Transform as the ruler and the tracks,
// so a marker line always lands on the depth the ruler shows for it.
// Selection is visual only and never changes geometry.
package overlay

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"github.com/gogpu/welllog/canvas"
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/ruler"
	"github.com/gogpu/welllog/viewport"
)

// Placement is a marker resolved to a y position and color.
type Placement struct {
	Marker   model.Marker
	Y        float64
	Color    gg.RGBA
	Label    string
	Selected bool
}

// Place returns the markers whose y lies within [-marginPx, heightPx+marginPx],
// ordered by depth then ID. Colors come from the marker's horizon, then the
// marker itself, then model.DefaultMarkerColor.
func Place(markers []model.Marker, horizons []model.Horizon, t viewport.Transform, heightPx, marginPx float64, selectedID string) []Placement {
	if !t.Valid() || len(markers) == 0 {
		return nil
	}
	idx := model.IndexHorizons(horizons)
	fallback := canvas.ColorOr(model.DefaultMarkerColor, gg.Red)
	var out []Placement
	for _, m := range model.SortMarkers(markers) {
		if !model.IsSample(m.Depth) {
			continue
		}
		y := t.DepthToPixel(m.Depth)
		if y < -marginPx || y > heightPx+marginPx {
			continue
		}
		out = append(out, Placement{
			Marker:   m,
			Y:        y,
			Color:    canvas.ColorOr(model.ResolveMarkerColor(m, idx), fallback),
			Label:    Label(m),
			Selected: selectedID != "" && m.ID == selectedID,
		})
	}
	return out
}

// Label returns the marker caption, e.g. "TOP A (1,250)".
func Label(m model.Marker) string {
	interval := 1.0
	if m.Depth != math.Trunc(m.Depth) {
		interval = 0.1
	}
	d := ruler.FormatDepth(m.Depth, interval)
	if m.Name == "" {
		return d
	}
	return m.Name + " (" + d + ")"
}

// HitTest returns the placement nearest to y within tolerancePx.
// On equal distance the shallower marker wins.
func HitTest(placements []Placement, y, tolerancePx float64) (Placement, bool) {
	best, found := -1, false
	bestDist := math.Inf(1)
	for i, p := range placements {
		d := math.Abs(p.Y - y)
		if d <= tolerancePx && d < bestDist {
			best, bestDist, found = i, d, true
		}
	}
	if !found {
		return Placement{}, false
	}
	return placements[best], true
}

// Selector is the selection part of the viewport manager.
type Selector interface {
	SelectedMarker() string
	SetSelectedMarker(id string)
}

// Click selects the marker under y. Clicking the selected marker again
// clears the selection; a click that hits nothing leaves it unchanged.
// It returns the hit marker ID and whether anything was hit.
func Click(s Selector, placements []Placement, y, tolerancePx float64) (string, bool) {
	p, ok := HitTest(placements, y, tolerancePx)
	if !ok {
		return "", false
	}
	if s.SelectedMarker() == p.Marker.ID {
		s.SetSelectedMarker("")
	} else {
		s.SetSelectedMarker(p.Marker.ID)
	}
	return p.Marker.ID, true
}

// Style controls marker drawing.
type Style struct {
	LineWidth         float64
	SelectedLineWidth float64
	Dash              []float64
	FontSize          float64
	LabelPad          float64
	LabelBackground   gg.RGBA
	// LabelAlpha is the background opacity of unselected labels.
	LabelAlpha float64
	Text       gg.RGBA
}

// DefaultStyle returns the standard marker look.
func DefaultStyle() Style {
	return Style{
		LineWidth:         1,
		SelectedLineWidth: 2,
		Dash:              []float64{6, 4},
		FontSize:          10,
		LabelPad:          2,
		LabelBackground:   gg.White,
		LabelAlpha:        0.6,
		Text:              gg.Hex("#111111"),
	}
}

// Render draws a full-width line and a right-anchored label per placement.
// Selected markers are drawn last, solid and bold with an opaque label.
func Render(c canvas.Canvas, placements []Placement, st Style, width, height float64) error {
	c.Save()
	defer c.Restore()
	c.ClipRect(0, 0, width, height)

	ordered := slices.Clone(placements)
	slices.SortStableFunc(ordered, func(a, b Placement) int {
		switch {
		case a.Selected == b.Selected:
			return 0
		case a.Selected:
			return 1
		default:
			return -1
		}
	})

	for _, p := range ordered {
		c.SetColor(p.Color)
		if p.Selected {
			c.SetLineWidth(st.SelectedLineWidth)
			c.SetDash()
		} else {
			c.SetLineWidth(st.LineWidth)
			c.SetDash(st.Dash...)
		}
		c.MoveTo(0, p.Y)
		c.LineTo(width, p.Y)
		if err := c.Stroke(); err != nil {
			return err
		}
		if err := drawLabel(c, p, st, width); err != nil {
			return err
		}
	}
	return nil
}

func drawLabel(c canvas.Canvas, p Placement, st Style, width float64) error {
	// Canvas has no text metrics; 0.6em per rune is close for Go Regular.
	w := float64(utf8.RuneCountInString(p.Label))*st.FontSize*0.6 + 2*st.LabelPad
	h := st.FontSize + 2*st.LabelPad
	x := width - w
	y := p.Y - h

	bg := st.LabelBackground
	if !p.Selected {
		bg = canvas.WithAlpha(bg, bg.A*st.LabelAlpha)
	}
	c.SetColor(bg)
	if err := c.FillRect(x, y, w, h); err != nil {
		return err
	}
	c.SetColor(st.Text)
	c.DrawText(p.Label, width-st.LabelPad, y+h/2, 1, 0.5, st.FontSize)
	return nil
}
