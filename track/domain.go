package track

import (
	"math"
	"sort"

	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/viewport"
)

// Domain is the value range a curve is normalized against.
// For ScaleLog, Min and Max are log10 values.
type Domain struct {
	Min   float64
	Max   float64
	Scale model.ScaleKind
}

// ComputeDomain returns the range of the usable samples in values.
// NaN and infinite samples are ignored, and so are non-positive samples
// on a log scale. A flat range is widened to [min, min+1].
// It reports false when no usable sample exists.
func ComputeDomain(values []float64, scale model.ScaleKind) (Domain, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		s, ok := scaled(v, scale)
		if !ok {
			continue
		}
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if lo > hi {
		return Domain{}, false
	}
	if lo == hi {
		hi = lo + 1
	}
	return Domain{Min: lo, Max: hi, Scale: scale}, true
}

// scaled maps a sample into domain space.
func scaled(v float64, scale model.ScaleKind) (float64, bool) {
	if !model.IsSample(v) {
		return 0, false
	}
	if scale == model.ScaleLog {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

// X maps value to a horizontal position in [0, width].
// It reports false for samples that must be drawn as a gap.
func (d Domain) X(value, width float64) (float64, bool) {
	s, ok := scaled(value, d.Scale)
	if !ok {
		return 0, false
	}
	x := (s - d.Min) / (d.Max - d.Min) * width
	return math.Max(0, math.Min(width, x)), true
}

// VisibleRange returns the half-open index range [lo, hi) of the samples
// that fall inside the window of heightPx pixels widened by bufferPx, plus
// one sample on each side so lines enter and leave the window.
// depths must be ascending.
func VisibleRange(depths []float64, t viewport.Transform, heightPx, bufferPx float64) (lo, hi int) {
	n := len(depths)
	if n == 0 || !t.Valid() {
		return 0, 0
	}
	top, bottom := t.VisibleDepths(heightPx, bufferPx)
	lo = sort.SearchFloat64s(depths, top) - 1
	hi = sort.Search(n, func(i int) bool { return depths[i] > bottom }) + 1
	lo = max(lo, 0)
	hi = min(hi, n)
	if lo >= hi {
		return 0, 0
	}
	return lo, hi
}
