package model

import (
	"cmp"
	"slices"
)

// DefaultMarkerColor is used when neither the horizon nor the marker
// carries a color.
const DefaultMarkerColor = "#d62728"

// Marker is a depth-anchored annotation such as a formation top.
type Marker struct {
	ID        string
	Name      string
	Depth     float64
	Color     string
	HorizonID string
	WellID    string
}

// Horizon is a named, colored classification shared by markers.
type Horizon struct {
	ID    string
	Name  string
	Color string
}

// HorizonIndex maps horizon IDs to horizons.
type HorizonIndex map[string]Horizon

// IndexHorizons builds a lookup table. Later duplicates win.
func IndexHorizons(horizons []Horizon) HorizonIndex {
	idx := make(HorizonIndex, len(horizons))
	for _, h := range horizons {
		idx[h.ID] = h
	}
	return idx
}

// ResolveMarkerColor returns the horizon color, then the marker color,
// then DefaultMarkerColor.
func ResolveMarkerColor(m Marker, horizons HorizonIndex) string {
	if m.HorizonID != "" {
		if h, ok := horizons[m.HorizonID]; ok && h.Color != "" {
			return h.Color
		}
	}
	if m.Color != "" {
		return m.Color
	}
	return DefaultMarkerColor
}

// SortMarkers returns a copy of markers ordered by depth, then ID.
func SortMarkers(markers []Marker) []Marker {
	out := slices.Clone(markers)
	slices.SortStableFunc(out, func(a, b Marker) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
