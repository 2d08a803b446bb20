package model

import (
	"math"
	"slices"
	"testing"
)

func depthsRange(from, to int) []float64 {
	out := make([]float64, 0, to-from+1)
	for d := from; d <= to; d++ {
		out = append(out, float64(d))
	}
	return out
}

func TestWellLogs_NamesOrder(t *testing.T) {
	logs := NewWellLogs(
		&Curve{Name: "RHOB"},
		&Curve{Name: "GR"},
		&Curve{Name: "nphi"},
		&Curve{Name: "DT"},
	)

	if got, want := logs.Names(OrderDeclared), []string{"RHOB", "GR", "nphi", "DT"}; !slices.Equal(got, want) {
		t.Errorf("Names(OrderDeclared) = %v, want %v", got, want)
	}
	if got, want := logs.Names(OrderAlphabetical), []string{"DT", "GR", "nphi", "RHOB"}; !slices.Equal(got, want) {
		t.Errorf("Names(OrderAlphabetical) = %v, want %v", got, want)
	}
}

func TestWellLogs_AddReplacesInPlace(t *testing.T) {
	logs := NewWellLogs(&Curve{Name: "A", Unit: "x"}, &Curve{Name: "B"})
	logs.Add(&Curve{Name: "A", Unit: "y"})
	logs.Add(nil)

	if logs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", logs.Len())
	}
	c, ok := logs.Curve("A")
	if !ok || c.Unit != "y" {
		t.Errorf("Curve(A) = %+v, %v; want replaced curve", c, ok)
	}
	if got := logs.Names(OrderDeclared); got[0] != "A" {
		t.Errorf("replaced curve moved: %v", got)
	}
}

func TestWellLogs_DomainFromLongestDepthArray(t *testing.T) {
	logs := NewWellLogs(
		&Curve{Name: "SHORT", Depths: depthsRange(100, 200), Values: make([]float64, 101)},
		&Curve{Name: "LONG", Depths: depthsRange(50, 400), Values: make([]float64, 351)},
	)

	dom, ok := logs.Domain()
	if !ok {
		t.Fatal("Domain() ok = false")
	}
	if dom.Min != 50 || dom.Max != 400 {
		t.Errorf("Domain() = %+v, want {50 400}", dom)
	}
}

func TestWellLogs_DomainEmpty(t *testing.T) {
	var nilLogs *WellLogs
	if _, ok := nilLogs.Domain(); ok {
		t.Error("nil logs Domain() ok = true")
	}
	if _, ok := NewWellLogs().Domain(); ok {
		t.Error("empty logs Domain() ok = true")
	}
}

func TestWell_DomainFallsBackToRange(t *testing.T) {
	w := &Well{Range: DepthRange{Start: 3000, Stop: 1000, Unit: "m"}, Logs: NewWellLogs()}
	dom, ok := w.Domain()
	if !ok {
		t.Fatal("Domain() ok = false")
	}
	if dom.Min != 1000 || dom.Max != 3000 {
		t.Errorf("Domain() = %+v, want {1000 3000}", dom)
	}

	bad := &Well{Range: DepthRange{Start: math.NaN(), Stop: 10}}
	if _, ok := bad.Domain(); ok {
		t.Error("invalid range produced a domain")
	}
}

func TestWell_HasCurves(t *testing.T) {
	tests := []struct {
		name string
		well *Well
		want bool
	}{
		{"nil well", nil, false},
		{"no logs", &Well{}, false},
		{"all gaps", &Well{Logs: NewWellLogs(&Curve{Name: "A", Depths: []float64{1, 2}, Values: []float64{Null, Null}})}, false},
		{"mismatched lengths", &Well{Logs: NewWellLogs(&Curve{Name: "A", Depths: []float64{1, 2}, Values: []float64{1}})}, false},
		{"one sample", &Well{Logs: NewWellLogs(&Curve{Name: "A", Depths: []float64{1, 2}, Values: []float64{Null, 4}})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.well.HasCurves(); got != tt.want {
				t.Errorf("HasCurves() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveMarkerColor(t *testing.T) {
	horizons := IndexHorizons([]Horizon{
		{ID: "h1", Color: "#00ff00"},
		{ID: "h2"},
	})

	tests := []struct {
		name   string
		marker Marker
		want   string
	}{
		{"horizon color wins", Marker{HorizonID: "h1", Color: "#0000ff"}, "#00ff00"},
		{"horizon without color", Marker{HorizonID: "h2", Color: "#0000ff"}, "#0000ff"},
		{"unknown horizon", Marker{HorizonID: "missing", Color: "#0000ff"}, "#0000ff"},
		{"default", Marker{HorizonID: "missing"}, DefaultMarkerColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMarkerColor(tt.marker, horizons); got != tt.want {
				t.Errorf("ResolveMarkerColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortMarkers(t *testing.T) {
	in := []Marker{{ID: "c", Depth: 20}, {ID: "b", Depth: 10}, {ID: "a", Depth: 20}}
	got := SortMarkers(in)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if want := []string{"b", "a", "c"}; !slices.Equal(ids, want) {
		t.Errorf("SortMarkers() ids = %v, want %v", ids, want)
	}
	if in[0].ID != "c" {
		t.Error("SortMarkers mutated its input")
	}
}

func TestInferStyle(t *testing.T) {
	tests := []struct {
		name, unit string
		scale      ScaleKind
		fill       FillMode
	}{
		{"GR", "gAPI", ScaleLinear, FillLeft},
		{"ILD", "ohm.m", ScaleLog, FillNone},
		{"deep", "OHMM", ScaleLog, FillNone},
		{"RHOB", "g/cc", ScaleLinear, FillNone},
		{"GRAIN", "", ScaleLinear, FillNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := InferStyle(tt.name, tt.unit)
			if st.Scale != tt.scale || st.Fill != tt.fill {
				t.Errorf("InferStyle(%q, %q) = %v/%v, want %v/%v", tt.name, tt.unit, st.Scale, st.Fill, tt.scale, tt.fill)
			}
		})
	}
}
