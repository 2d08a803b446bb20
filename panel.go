package welllog

import (
	"context"
	"math"

	"github.com/gogpu/welllog/internal/metrics"
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/overlay"
	"github.com/gogpu/welllog/track"
	"github.com/gogpu/welllog/viewport"
)

// Panel is the composite well-log view: a depth ruler, curve tracks and a
// marker overlay sharing one scroll container.
//
// The panel owns the scroll offset in pixels and keeps the viewport
// manager's scroll position (a depth) in step with it. Every layer derives
// its pixel positions from the same viewport transform, so layers never
// exchange positions with each other.
//
// Panel is NOT safe for concurrent use. Drive it from one goroutine.
type Panel struct {
	opts    panelOptions
	view    *viewport.Manager
	metrics *metrics.Recorder

	state    State
	wellID   string
	well     *model.Well
	domain   model.DepthDomain
	domainOK bool
	tracks   []track.Track
	markers  []model.Marker

	scrollTop float64

	observers map[int]func()
	nextID    int
	muted     int
}

// NewPanel creates a panel in StateNoWell.
func NewPanel(opts ...Option) *Panel {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Panel{
		opts:      o,
		view:      viewport.NewManager(o.limits),
		observers: make(map[int]func()),
	}
	rec, err := metrics.New(o.meterProvider)
	if err != nil {
		Logger().Warn("welllog: metrics disabled", "err", err)
	}
	p.metrics = rec
	p.view.Subscribe(func(viewport.Change) { p.notify() })
	return p
}

// OnChange registers fn to be called after every state or viewport
// mutation, typically to schedule a re-render. The returned function
// removes the subscription.
func (p *Panel) OnChange(fn func()) (cancel func()) {
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	return func() { delete(p.observers, id) }
}

func (p *Panel) notify() {
	if p.muted > 0 {
		return
	}
	for id := 0; id < p.nextID; id++ {
		if fn, ok := p.observers[id]; ok {
			fn()
		}
	}
}

// batch runs fn with notifications suppressed and notifies once after.
func (p *Panel) batch(fn func()) {
	p.muted++
	fn()
	p.muted--
	p.notify()
}

// State returns the lifecycle state.
func (p *Panel) State() State { return p.state }

// Well returns the applied snapshot, or nil.
func (p *Panel) Well() *model.Well { return p.well }

// WellID returns the ID of the well being loaded or shown.
func (p *Panel) WellID() string { return p.wellID }

// Domain returns the displayed depth domain. ok is false when the well has
// no usable depth range.
func (p *Panel) Domain() (d model.DepthDomain, ok bool) { return p.domain, p.domainOK }

// Viewport returns the viewport manager.
func (p *Panel) Viewport() *viewport.Manager { return p.view }

// BeginLoad moves to StateLoading for wellID. Data of the previous well is
// dropped and the viewport reset so nothing from the old depth domain
// survives into the next render.
func (p *Panel) BeginLoad(wellID string) {
	p.batch(func() { p.beginLoad(wellID) })
}

func (p *Panel) beginLoad(wellID string) {
	Logger().Debug("welllog: loading well", "well", wellID, "from", p.state)
	p.state = StateLoading
	p.wellID = wellID
	p.well = nil
	p.tracks = nil
	p.markers = nil
	p.domain, p.domainOK = model.DepthDomain{}, false
	p.scrollTop = 0
	p.view.Reset(p.domain)
}

// SetWell applies a loaded snapshot. If the panel is not already loading
// this well, it passes through StateLoading first. A nil well clears the
// panel.
func (p *Panel) SetWell(w *model.Well) {
	if w == nil {
		p.ClearWell()
		return
	}
	p.batch(func() {
		if p.state != StateLoading || p.wellID != w.ID {
			p.beginLoad(w.ID)
		}
		p.well = w
		p.domain, p.domainOK = w.Domain()
		p.markers = wellMarkers(w)
		p.tracks = p.buildTracks(w)
		if w.HasCurves() {
			p.state = StateLoadedWithCurves
		} else {
			p.state = StateLoadedEmpty
		}
		p.scrollTop = 0
		p.view.Reset(p.domain)
		Logger().Info("welllog: well loaded", "well", w.ID, "state", p.state,
			"curves", w.Logs.Len(), "tracks", len(p.tracks), "markers", len(p.markers))
		if !p.domainOK {
			Logger().Warn("welllog: well has no usable depth range", "well", w.ID)
		}
		p.metrics.WellLoaded(context.Background(), p.state.String())
	})
}

// ClearWell returns to StateNoWell.
func (p *Panel) ClearWell() {
	p.batch(func() {
		p.beginLoad("")
		p.state = StateNoWell
	})
}

// wellMarkers returns the markers that belong to w. Markers without a
// well ID are kept.
func wellMarkers(w *model.Well) []model.Marker {
	out := make([]model.Marker, 0, len(w.Markers))
	for _, m := range w.Markers {
		if m.WellID == "" || m.WellID == w.ID {
			out = append(out, m)
		}
	}
	return out
}

// buildTracks chunks curves into tracks in the configured order. A well
// without curves gets one empty track so the "no data" indicator shows.
func (p *Panel) buildTracks(w *model.Well) []track.Track {
	curves := w.Logs.Curves(p.opts.order)
	master := w.Logs.MasterDepths()
	n := p.opts.curvesPerTrack
	if len(curves) == 0 {
		return []track.Track{track.New(0, nil, master, 0)}
	}
	tracks := make([]track.Track, 0, (len(curves)+n-1)/n)
	for i := 0; i < len(curves); i += n {
		end := min(i+n, len(curves))
		tracks = append(tracks, track.New(len(tracks), curves[i:end], master, i))
	}
	return tracks
}

// Tracks returns the curve names of each track.
func (p *Panel) Tracks() [][]string {
	out := make([][]string, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t.Names()
	}
	return out
}

// ViewportHeight returns the visible window height in pixels.
func (p *Panel) ViewportHeight() float64 { return p.opts.viewportHeight }

// Resize changes the visible window height and re-clamps the scroll offset.
func (p *Panel) Resize(heightPx float64) {
	if !(heightPx > 0) || math.IsInf(heightPx, 0) {
		return
	}
	p.batch(func() {
		p.opts.viewportHeight = heightPx
		p.HandleScroll(p.scrollTop)
	})
}

// ContentHeight returns the height of the scrollable content:
// max(MinimumHeight, (Max-Min) * zoom).
func (p *Panel) ContentHeight() float64 {
	if !p.domainOK {
		return p.opts.minimumHeight
	}
	return math.Max(p.opts.minimumHeight, p.domain.Span()*p.view.Zoom())
}

// MaxScrollOffset returns the largest valid scroll offset.
func (p *Panel) MaxScrollOffset() float64 {
	return math.Max(0, p.ContentHeight()-p.opts.viewportHeight)
}

// ScrollOffset returns the scroll container offset in pixels.
func (p *Panel) ScrollOffset() float64 { return p.scrollTop }

// HandleScroll applies a scroll container offset. The offset is clamped to
// [0, MaxScrollOffset] and converted to the depth at the top of the window.
func (p *Panel) HandleScroll(offsetPx float64) {
	if !model.IsSample(offsetPx) {
		return
	}
	offsetPx = math.Min(math.Max(offsetPx, 0), p.MaxScrollOffset())
	p.scrollTop = offsetPx
	p.view.SetScrollPosition(viewport.ScrollOffsetToDepth(offsetPx, p.view.Zoom(), p.domain.Min))
}

// Zoom returns the current zoom in pixels per depth unit.
func (p *Panel) Zoom() float64 { return p.view.Zoom() }

// ScrollPosition returns the depth at the top of the window.
func (p *Panel) ScrollPosition() float64 { return p.view.ScrollPosition() }

// SetScrollPosition scrolls so that depth is at the top of the window.
// The depth is not clamped to the domain.
func (p *Panel) SetScrollPosition(depth float64) {
	if !model.IsSample(depth) {
		return
	}
	p.batch(func() {
		p.scrollTop = viewport.DepthToScrollOffset(depth, p.view.Zoom(), p.domain.Min)
		p.view.SetScrollPosition(depth)
	})
}

// SetZoom changes zoom while keeping the depth at the top of the window.
func (p *Panel) SetZoom(zoom float64) {
	p.anchored(func() { p.view.SetZoom(zoom) })
}

// HandleZoomIn zooms in one step, keeping the depth at the top in place.
func (p *Panel) HandleZoomIn() {
	p.anchored(p.view.ZoomIn)
}

// HandleZoomOut zooms out one step, keeping the depth at the top in place.
func (p *Panel) HandleZoomOut() {
	p.anchored(p.view.ZoomOut)
}

// anchored applies a zoom change and rewrites the scroll offset so the
// depth that was at the top stays there.
func (p *Panel) anchored(apply func()) {
	p.batch(func() {
		depthAtTop := p.view.ScrollPosition()
		apply()
		p.scrollTop = viewport.DepthToScrollOffset(depthAtTop, p.view.Zoom(), p.domain.Min)
		p.view.SetScrollPosition(depthAtTop)
	})
}

// HandleResetView restores the default zoom at the top of the domain.
func (p *Panel) HandleResetView() {
	p.batch(func() {
		p.scrollTop = 0
		p.view.ResetView(p.domain)
	})
}

// IsCurveVisible reports whether a curve is drawn.
func (p *Panel) IsCurveVisible(name string) bool { return p.view.IsCurveVisible(name) }

// ToggleCurveVisibility shows or hides a curve.
func (p *Panel) ToggleCurveVisibility(name string) { p.view.ToggleCurveVisibility(name) }

// VisibleCurves returns the visibility of every curve of the well.
func (p *Panel) VisibleCurves() map[string]bool {
	out := make(map[string]bool)
	if p.well == nil {
		return out
	}
	for _, name := range p.well.Logs.Names(p.opts.order) {
		out[name] = p.view.IsCurveVisible(name)
	}
	return out
}

// CurveColor returns the color override of a curve.
func (p *Panel) CurveColor(name string) (string, bool) { return p.view.CurveColor(name) }

// SetCurveColor overrides a curve color. An empty color removes the override.
func (p *Panel) SetCurveColor(name, color string) { p.view.SetCurveColor(name, color) }

// CurveColors returns the color overrides.
func (p *Panel) CurveColors() map[string]string { return p.view.Snapshot().CurveColors }

// SelectedMarker returns the selected marker ID, or "" when none.
func (p *Panel) SelectedMarker() string { return p.view.SelectedMarker() }

// SetSelectedMarker selects a marker. An empty id clears the selection.
func (p *Panel) SetSelectedMarker(id string) { p.view.SetSelectedMarker(id) }

// Placements returns the markers positioned for the current viewport.
func (p *Panel) Placements() []overlay.Placement {
	if !p.state.Loaded() {
		return nil
	}
	var horizons []model.Horizon
	if p.well != nil {
		horizons = p.well.Horizons
	}
	return overlay.Place(p.markers, horizons, p.view.Transform(),
		p.opts.viewportHeight, p.opts.markerMargin, p.view.SelectedMarker())
}

// ClickAt handles a click at panel coordinates (x, y). Clicks inside the
// marker overlay select or deselect the nearest marker.
// It returns the hit marker ID and whether a marker was hit.
func (p *Panel) ClickAt(x, y float64) (string, bool) {
	r := p.Layout().Overlay.Rect
	if !r.Contains(x, y) {
		return "", false
	}
	id, ok := overlay.Click(p.view, p.Placements(), y-r.Y, p.opts.hitTolerance)
	if ok {
		p.metrics.MarkerClicked(context.Background())
	}
	return id, ok
}

// Layout returns the panel regions for the current track count.
func (p *Panel) Layout() Layout {
	return computeLayout(p.opts.rulerWidth, p.opts.trackWidth, p.opts.viewportHeight, len(p.tracks))
}
