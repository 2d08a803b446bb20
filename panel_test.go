package welllog

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/viewport"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// testWell builds a well with depths first..last (step 1) and one curve
// per name.
func testWell(id string, first, last int, names ...string) *model.Well {
	depths := make([]float64, 0, last-first+1)
	for d := first; d <= last; d++ {
		depths = append(depths, float64(d))
	}
	logs := model.NewWellLogs()
	for i, n := range names {
		values := make([]float64, len(depths))
		for j := range values {
			values[j] = float64((j + i*7) % 100)
		}
		logs.Add(&model.Curve{Name: n, Unit: "api", Depths: depths, Values: values})
	}
	return &model.Well{
		ID:    id,
		Name:  "Well " + id,
		Range: model.DepthRange{Start: float64(first), Stop: float64(last), Unit: "m"},
		Logs:  logs,
	}
}

func TestPanel_ContentHeight(t *testing.T) {
	p := NewPanel(WithMinimumHeight(500))
	p.SetWell(testWell("w1", 1, 1000, "GR"))
	p.SetZoom(2)
	if got := p.ContentHeight(); got != 1998 {
		t.Errorf("ContentHeight() = %v, want 1998", got)
	}

	// Low zoom falls back to the minimum height.
	p.SetZoom(0.1)
	if got := p.ContentHeight(); got != 500 {
		t.Errorf("ContentHeight() at zoom 0.1 = %v, want 500", got)
	}
}

func TestPanel_ContentHeightWithoutWell(t *testing.T) {
	p := NewPanel(WithMinimumHeight(300))
	if got := p.ContentHeight(); got != 300 {
		t.Errorf("ContentHeight() = %v, want 300", got)
	}
}

func TestPanel_HandleScroll(t *testing.T) {
	p := NewPanel(WithViewportHeight(600))
	p.SetWell(testWell("w1", 100, 2100, "GR"))

	tests := []struct {
		offset     float64
		wantOffset float64
		wantDepth  float64
	}{
		{0, 0, 100},
		{250, 250, 350},
		{-40, 0, 100},
		{1e9, 1400, 1500},
	}
	for _, tt := range tests {
		p.HandleScroll(tt.offset)
		if p.ScrollOffset() != tt.wantOffset || p.ScrollPosition() != tt.wantDepth {
			t.Errorf("HandleScroll(%v): offset=%v depth=%v, want %v, %v",
				tt.offset, p.ScrollOffset(), p.ScrollPosition(), tt.wantOffset, tt.wantDepth)
		}
	}

	p.HandleScroll(math.NaN())
	if p.ScrollOffset() != 1400 {
		t.Errorf("NaN scroll changed offset to %v", p.ScrollOffset())
	}
}

func TestPanel_ZoomKeepsTopDepth(t *testing.T) {
	p := NewPanel()
	p.SetWell(testWell("w1", 1, 5000, "GR", "RHOB"))
	p.HandleScroll(600)
	top := p.ScrollPosition()
	zoom := p.Zoom()
	if top != 601 {
		t.Fatalf("top depth = %v, want 601", top)
	}

	p.HandleZoomIn()
	if !approx(p.Zoom(), zoom*1.5) {
		t.Errorf("zoom after HandleZoomIn = %v, want %v", p.Zoom(), zoom*1.5)
	}
	if !approx(p.ScrollPosition(), top) {
		t.Errorf("top depth after zoom in = %v, want %v", p.ScrollPosition(), top)
	}
	if !approx(p.ScrollOffset(), 900) {
		t.Errorf("scroll offset after zoom in = %v, want 900", p.ScrollOffset())
	}
	// The anchor depth sits at pixel 0 of the window.
	if y := p.Viewport().DepthToPixel(top); !approx(y, 0) {
		t.Errorf("DepthToPixel(top) = %v, want 0", y)
	}

	p.HandleZoomOut()
	if !approx(p.Zoom(), zoom) {
		t.Errorf("zoom after in/out = %v, want %v", p.Zoom(), zoom)
	}
	if !approx(p.ScrollPosition(), top) {
		t.Errorf("top depth after in/out = %v, want %v", p.ScrollPosition(), top)
	}
	if !approx(p.ScrollOffset(), 600) {
		t.Errorf("scroll offset after in/out = %v, want 600", p.ScrollOffset())
	}
}

func TestPanel_WellSwitchResetsViewport(t *testing.T) {
	p := NewPanel()
	a := testWell("a", 0, 5000, "GR")
	a.Markers = []model.Marker{{ID: "m1", Depth: 100}}
	p.SetWell(a)
	for range 5 {
		p.HandleZoomIn()
	}
	p.HandleScroll(1e6)
	p.SetSelectedMarker("m1")
	p.ToggleCurveVisibility("GR")
	p.SetCurveColor("GR", "#123456")

	p.SetWell(testWell("b", 100, 200, "GR"))
	d, ok := p.Domain()
	if !ok || d.Min != 100 || d.Max != 200 {
		t.Fatalf("Domain() = %+v, %v", d, ok)
	}
	if p.Zoom() != viewport.DefaultLimits().DefaultZoom {
		t.Errorf("zoom = %v, want default", p.Zoom())
	}
	if s := p.ScrollPosition(); math.IsNaN(s) || !d.Contains(s) {
		t.Errorf("scroll position %v outside new domain", s)
	}
	if p.ScrollOffset() != 0 {
		t.Errorf("scroll offset = %v, want 0", p.ScrollOffset())
	}
	if p.SelectedMarker() != "" {
		t.Errorf("selection %q survived well change", p.SelectedMarker())
	}
	if !p.IsCurveVisible("GR") {
		t.Error("visibility survived well change")
	}
	if _, ok := p.CurveColor("GR"); ok {
		t.Error("curve color survived well change")
	}
}

func TestPanel_StateMachine(t *testing.T) {
	p := NewPanel()
	if p.State() != StateNoWell {
		t.Fatalf("initial state = %v", p.State())
	}

	var changes int
	cancel := p.OnChange(func() { changes++ })
	t.Cleanup(cancel)

	p.BeginLoad("w1")
	if p.State() != StateLoading || p.WellID() != "w1" {
		t.Fatalf("after BeginLoad: %v %q", p.State(), p.WellID())
	}

	p.SetWell(testWell("w1", 0, 10, "GR"))
	if p.State() != StateLoadedWithCurves {
		t.Errorf("state = %v, want %v", p.State(), StateLoadedWithCurves)
	}

	empty := testWell("w2", 0, 10)
	empty.Logs.Add(&model.Curve{Name: "DT", Depths: []float64{0, 1}, Values: []float64{model.Null, model.Null}})
	p.SetWell(empty)
	if p.State() != StateLoadedEmpty || p.WellID() != "w2" {
		t.Errorf("state = %v %q, want %v w2", p.State(), p.WellID(), StateLoadedEmpty)
	}

	p.ClearWell()
	if p.State() != StateNoWell || p.Well() != nil {
		t.Errorf("after ClearWell: %v", p.State())
	}

	p.SetWell(testWell("w3", 0, 10, "GR"))
	p.SetWell(nil)
	if p.State() != StateNoWell {
		t.Errorf("SetWell(nil) state = %v", p.State())
	}

	// One notification per public mutation.
	if changes != 6 {
		t.Errorf("changes = %d, want 6", changes)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateNoWell, "no-well"},
		{StateLoading, "loading"},
		{StateLoadedWithCurves, "loaded"},
		{StateLoadedEmpty, "empty"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestPanel_TrackChunking(t *testing.T) {
	names := []string{"RHOB", "GR", "NPHI", "DT", "CALI", "SP", "ILD"}
	tests := []struct {
		name string
		opts []Option
		want [][]string
	}{
		{
			name: "declared",
			want: [][]string{{"RHOB", "GR", "NPHI"}, {"DT", "CALI", "SP"}, {"ILD"}},
		},
		{
			name: "alphabetical",
			opts: []Option{WithCurveOrder(model.OrderAlphabetical)},
			want: [][]string{{"CALI", "DT", "GR"}, {"ILD", "NPHI", "RHOB"}, {"SP"}},
		},
		{
			name: "two per track",
			opts: []Option{WithCurvesPerTrack(2)},
			want: [][]string{{"RHOB", "GR"}, {"NPHI", "DT"}, {"CALI", "SP"}, {"ILD"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPanel(tt.opts...)
			p.SetWell(testWell("w", 0, 50, names...))
			got := p.Tracks()
			if !slices.EqualFunc(got, tt.want, slices.Equal[[]string]) {
				t.Errorf("Tracks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPanel_Layout(t *testing.T) {
	p := NewPanel(WithRulerWidth(60), WithTrackWidth(100), WithViewportHeight(400))
	p.SetWell(testWell("w", 0, 50, "A", "B", "C", "D"))
	l := p.Layout()

	if l.Plot.ID != CaptureRegionID || l.Plot.Rect.W != 260 || l.Plot.Rect.H != 400 {
		t.Errorf("Plot = %+v", l.Plot)
	}
	if len(l.Tracks) != 2 || l.Tracks[1].Rect.X != 160 {
		t.Errorf("Tracks = %+v", l.Tracks)
	}
	if r, ok := l.Region("track-1"); !ok || r.Rect.W != 100 {
		t.Errorf("Region(track-1) = %+v, %v", r, ok)
	}
	if r, ok := l.Region(OverlayRegionID); !ok || r.Rect.X != 60 || r.Rect.W != 200 {
		t.Errorf("Region(overlay) = %+v, %v", r, ok)
	}
	if _, ok := l.Region("nope"); ok {
		t.Error("Region(nope) found")
	}
	if n := len(l.Regions()); n != 5 {
		t.Errorf("len(Regions()) = %d, want 5", n)
	}
}

func TestPanel_ClickAt(t *testing.T) {
	p := NewPanel(WithRulerWidth(50), WithTrackWidth(100))
	w := testWell("w", 0, 1000, "GR")
	w.Markers = []model.Marker{
		{ID: "top-a", Name: "A", Depth: 100},
		{ID: "top-b", Name: "B", Depth: 300},
		{ID: "other", Name: "X", Depth: 200, WellID: "someone-else"},
	}
	p.SetWell(w)

	if _, ok := p.ClickAt(10, 100); ok {
		t.Error("click on the ruler hit a marker")
	}
	if id, ok := p.ClickAt(80, 101); !ok || id != "top-a" || p.SelectedMarker() != "top-a" {
		t.Fatalf("click on A: %q %v, selected %q", id, ok, p.SelectedMarker())
	}
	if _, ok := p.ClickAt(80, 200); ok {
		t.Error("marker of another well was hit")
	}
	if _, ok := p.ClickAt(80, 299); !ok || p.SelectedMarker() != "top-b" {
		t.Errorf("click on B: selected %q", p.SelectedMarker())
	}
	if _, ok := p.ClickAt(80, 300); !ok || p.SelectedMarker() != "" {
		t.Errorf("second click on B: selected %q, want none", p.SelectedMarker())
	}
}

func TestPanel_ControlSurface(t *testing.T) {
	p := NewPanel()
	p.SetWell(testWell("w", 0, 100, "GR", "RHOB"))

	p.SetScrollPosition(40)
	if p.ScrollPosition() != 40 || p.ScrollOffset() != 40 {
		t.Errorf("SetScrollPosition(40): depth=%v offset=%v", p.ScrollPosition(), p.ScrollOffset())
	}
	p.ToggleCurveVisibility("RHOB")
	vis := p.VisibleCurves()
	if !vis["GR"] || vis["RHOB"] {
		t.Errorf("VisibleCurves() = %v", vis)
	}
	p.SetCurveColor("GR", "orange")
	if c := p.CurveColors(); c["GR"] != "orange" {
		t.Errorf("CurveColors() = %v", c)
	}

	p.HandleZoomIn()
	p.HandleResetView()
	if p.Zoom() != 1 || p.ScrollPosition() != 0 || p.ScrollOffset() != 0 {
		t.Errorf("after reset: zoom=%v depth=%v offset=%v", p.Zoom(), p.ScrollPosition(), p.ScrollOffset())
	}
	if p.IsCurveVisible("RHOB") {
		t.Error("HandleResetView changed visibility")
	}
}

func TestPanel_Resize(t *testing.T) {
	p := NewPanel(WithViewportHeight(200))
	p.SetWell(testWell("w", 0, 1000, "GR"))
	p.HandleScroll(800)
	p.Resize(500)
	if p.ScrollOffset() != 500 || p.ScrollPosition() != 500 {
		t.Errorf("after Resize: offset=%v depth=%v, want 500", p.ScrollOffset(), p.ScrollPosition())
	}
}

func TestPanel_OnChangeCancel(t *testing.T) {
	p := NewPanel()
	p.SetWell(testWell("w", 0, 100, "GR"))
	var n int
	cancel := p.OnChange(func() { n++ })
	p.HandleZoomIn()
	cancel()
	p.HandleZoomIn()
	if n != 1 {
		t.Errorf("notifications = %d, want 1", n)
	}
}
