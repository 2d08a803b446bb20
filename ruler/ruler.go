// Package ruler generates and draws the depth scale next to the log tracks.
//
// The tick interval depends only on zoom (see TickInterval). Tick generation
// is bounded by the visible window plus a buffer, so a kilometers-deep well at
// high zoom costs the same as a shallow one.
package ruler

import (
	"math"

	"github.com/gogpu/welllog/internal/wlog"
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/viewport"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorDivisions is the number of minor steps per major interval.
const MinorDivisions = 5

// MaxTicks caps the number of ticks returned by a single Ticks call.
const MaxTicks = 4096

// TickInterval returns the major tick spacing in depth units for zoom
// (pixels per depth unit). Denser zoom gives a smaller interval.
// The result is always positive.
func TickInterval(zoom float64) float64 {
	switch {
	case zoom > 10:
		return 1
	case zoom > 5:
		return 2
	case zoom > 2:
		return 5
	case zoom < 0.2:
		return 100
	case zoom < 0.5:
		return 50
	default:
		return 10
	}
}

// Params describes the window the ruler is drawn for.
type Params struct {
	Domain    model.DepthDomain
	Transform viewport.Transform
	HeightPx  float64
	// BufferPx extends the emitted range above and below the window.
	BufferPx float64
}

// Tick is one ruler mark. Y is relative to the top of the window.
type Tick struct {
	Depth float64
	Y     float64
	Major bool
	// Label is set on major ticks only.
	Label string
}

// Ticks returns the ticks whose depth lies in the domain and whose pixel
// position falls within [-BufferPx, HeightPx+BufferPx]. Ticks are sorted by
// depth. A degenerate domain yields a single major tick.
func Ticks(p Params) []Tick {
	t := p.Transform
	if !t.Valid() || !p.Domain.Valid() || !finite(p.HeightPx) || !finite(p.BufferPx) {
		return nil
	}
	buf := math.Max(p.BufferPx, 0)
	printer := message.NewPrinter(language.English)
	interval := TickInterval(t.Zoom)

	if p.Domain.Degenerate() {
		d := p.Domain.Min
		y := t.DepthToPixel(d)
		if y < -buf || y > p.HeightPx+buf {
			return nil
		}
		return []Tick{{Depth: d, Y: y, Major: true, Label: formatDepth(printer, d, interval)}}
	}

	top, bottom := t.VisibleDepths(p.HeightPx, buf)
	lo := math.Max(top, p.Domain.Min)
	hi := math.Min(bottom, p.Domain.Max)
	if !(lo <= hi) {
		return nil
	}

	step := interval / MinorDivisions
	const eps = 1e-9
	first := math.Ceil(lo/step - eps)
	last := math.Floor(hi/step + eps)
	if math.Abs(first) > 1<<52 || math.Abs(last) > 1<<52 {
		return nil
	}
	start, end := int64(first), int64(last)
	if n := end - start + 1; n > MaxTicks {
		wlog.Logger().Debug("ruler: tick count capped", "want", n, "max", MaxTicks)
		end = start + MaxTicks - 1
	}
	if end < start {
		return nil
	}

	ticks := make([]Tick, 0, end-start+1)
	for i := start; i <= end; i++ {
		// Integer multiple first keeps majors exact.
		depth := float64(i) * interval / MinorDivisions
		tk := Tick{
			Depth: depth,
			Y:     t.DepthToPixel(depth),
			Major: i%MinorDivisions == 0,
		}
		if tk.Major {
			tk.Label = formatDepth(printer, depth, interval)
		}
		ticks = append(ticks, tk)
	}
	return ticks
}

// FormatDepth formats a depth label with English digit grouping.
// Whole-unit intervals drop the fraction.
func FormatDepth(depth, interval float64) string {
	return formatDepth(message.NewPrinter(language.English), depth, interval)
}

func formatDepth(p *message.Printer, depth, interval float64) string {
	if depth == 0 {
		depth = 0 // normalize -0
	}
	if interval >= 1 {
		return p.Sprintf("%.0f", depth)
	}
	return p.Sprintf("%.1f", depth)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
