package model

import (
	"math"
	"slices"
	"strings"
)

// CurveOrder selects the order curves are laid out into tracks.
type CurveOrder uint8

const (
	// OrderDeclared keeps the order in which the loader added the curves.
	OrderDeclared CurveOrder = iota
	// OrderAlphabetical sorts curves by name (case-insensitive, then exact).
	OrderAlphabetical
)

// WellLogs is an ordered collection of curves keyed by name.
//
// The declaration order is preserved so that track layout never depends on
// map iteration order.
type WellLogs struct {
	curves []*Curve
	index  map[string]int
}

// NewWellLogs creates a collection from curves in declaration order.
// A later curve with a duplicate name replaces the earlier one in place.
func NewWellLogs(curves ...*Curve) *WellLogs {
	l := &WellLogs{index: make(map[string]int, len(curves))}
	for _, c := range curves {
		l.Add(c)
	}
	return l
}

// Add appends a curve, or replaces a curve with the same name.
// Nil curves are ignored.
func (l *WellLogs) Add(c *Curve) {
	if c == nil {
		return
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[c.Name]; ok {
		l.curves[i] = c
		return
	}
	l.index[c.Name] = len(l.curves)
	l.curves = append(l.curves, c)
}

// Len returns the number of curves.
func (l *WellLogs) Len() int {
	if l == nil {
		return 0
	}
	return len(l.curves)
}

// Curve returns the curve with the given name.
func (l *WellLogs) Curve(name string) (*Curve, bool) {
	if l == nil {
		return nil, false
	}
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return l.curves[i], true
}

// Names returns curve names in the requested order.
func (l *WellLogs) Names(order CurveOrder) []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.curves))
	for i, c := range l.curves {
		names[i] = c.Name
	}
	if order == OrderAlphabetical {
		slices.SortStableFunc(names, func(a, b string) int {
			if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
	}
	return names
}

// Curves returns the curves in the requested order.
func (l *WellLogs) Curves(order CurveOrder) []*Curve {
	names := l.Names(order)
	out := make([]*Curve, 0, len(names))
	for _, n := range names {
		c, _ := l.Curve(n)
		out = append(out, c)
	}
	return out
}

// MasterDepths returns the longest depth array among valid curves.
// Ties are broken by curve name so the choice is deterministic.
func (l *WellLogs) MasterDepths() []float64 {
	var best *Curve
	for _, c := range l.Curves(OrderAlphabetical) {
		if len(c.Depths) == 0 {
			continue
		}
		if best == nil || len(c.Depths) > len(best.Depths) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return best.Depths
}

// DepthDomain is the [Min, Max] depth range displayed for a well.
type DepthDomain struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (d DepthDomain) Span() float64 {
	return d.Max - d.Min
}

// Degenerate reports whether the domain has zero height.
func (d DepthDomain) Degenerate() bool {
	return d.Max == d.Min
}

// Contains reports whether depth lies inside the domain.
func (d DepthDomain) Contains(depth float64) bool {
	return depth >= d.Min && depth <= d.Max
}

// Valid reports whether both bounds are finite and ordered.
func (d DepthDomain) Valid() bool {
	return IsSample(d.Min) && IsSample(d.Max) && d.Min <= d.Max
}

// Domain derives the depth domain from the master depth array.
// Non-finite depths at either end are skipped.
func (l *WellLogs) Domain() (DepthDomain, bool) {
	depths := l.MasterDepths()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range depths {
		if !IsSample(d) {
			continue
		}
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	dom := DepthDomain{Min: lo, Max: hi}
	if !dom.Valid() {
		return DepthDomain{}, false
	}
	return dom, true
}
