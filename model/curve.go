package model

import (
	"math"
	"strings"
)

// ScaleKind selects how curve values map to horizontal track positions.
type ScaleKind uint8

const (
	// ScaleLinear maps values linearly across the track width.
	ScaleLinear ScaleKind = iota
	// ScaleLog maps log10 of the value; non-positive samples become gaps.
	ScaleLog
)

// String returns the scale name.
func (s ScaleKind) String() string {
	switch s {
	case ScaleLinear:
		return "linear"
	case ScaleLog:
		return "log"
	default:
		return "unknown"
	}
}

// FillMode selects whether the area between a curve and a track edge is shaded.
type FillMode uint8

const (
	// FillNone draws the line only.
	FillNone FillMode = iota
	// FillLeft shades between the curve and the left track edge.
	FillLeft
	// FillRight shades between the curve and the right track edge.
	FillRight
)

// String returns the fill mode name.
func (f FillMode) String() string {
	switch f {
	case FillNone:
		return "none"
	case FillLeft:
		return "left"
	case FillRight:
		return "right"
	default:
		return "unknown"
	}
}

// Style holds per-curve presentation defaults.
// Color is a hex string; empty means "use the track palette".
type Style struct {
	Scale ScaleKind
	Fill  FillMode
	Color string
}

// Curve is one named measurement series aligned to a depth array.
//
// Depths must be strictly ascending and have the same length as Values.
// Curves of one well usually share the same Depths slice.
type Curve struct {
	Name   string
	Unit   string
	Depths []float64
	Values []float64
	Style  Style
}

// Len returns the number of samples, or 0 if the curve is malformed.
func (c *Curve) Len() int {
	if !c.Valid() {
		return 0
	}
	return len(c.Values)
}

// Valid reports whether depths and values are paired one to one.
func (c *Curve) Valid() bool {
	return c != nil && len(c.Depths) == len(c.Values) && len(c.Values) > 0
}

// HasSamples reports whether the curve has at least one finite value.
func (c *Curve) HasSamples() bool {
	if !c.Valid() {
		return false
	}
	for _, v := range c.Values {
		if IsSample(v) {
			return true
		}
	}
	return false
}

// IsSample reports whether v is a usable (finite) sample.
func IsSample(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Null is the value used for missing samples.
var Null = math.NaN()

// resistivity units and mnemonics that are conventionally plotted on a log scale.
var (
	logUnits     = []string{"ohm.m", "ohmm", "ohm-m", "ohm_m", "ohm m"}
	logMnemonics = []string{"RES", "ILD", "ILM", "LLD", "LLS", "RT", "RXO", "MSFL", "AT90", "AHT90"}
	fillPrefixes = []string{"GR", "SGR", "CGR"}
)

// InferStyle returns the conventional presentation for a curve mnemonic.
// Resistivity curves use a log scale; gamma ray curves are filled from the
// left edge. Anything else is a plain linear line.
func InferStyle(name, unit string) Style {
	st := Style{Scale: ScaleLinear, Fill: FillNone}

	u := strings.ToLower(strings.TrimSpace(unit))
	for _, lu := range logUnits {
		if u == lu {
			st.Scale = ScaleLog
		}
	}

	n := strings.ToUpper(strings.TrimSpace(name))
	for _, m := range logMnemonics {
		if strings.HasPrefix(n, m) {
			st.Scale = ScaleLog
		}
	}
	for _, p := range fillPrefixes {
		if n == p || strings.HasPrefix(n, p+"_") {
			st.Fill = FillLeft
		}
	}
	return st
}
