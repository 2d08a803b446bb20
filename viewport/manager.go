package viewport

import (
	"maps"
	"math"

	"github.com/gogpu/welllog/internal/wlog"
	"github.com/gogpu/welllog/model"
)

// Limits bounds zoom changes.
type Limits struct {
	MinZoom     float64 // smallest allowed zoom, > 0
	MaxZoom     float64 // largest allowed zoom
	ZoomFactor  float64 // multiplier for one ZoomIn/ZoomOut step, > 1
	DefaultZoom float64 // zoom restored by ResetView
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MinZoom:     0.05,
		MaxZoom:     50,
		ZoomFactor:  1.5,
		DefaultZoom: 1,
	}
}

// normalized repairs unusable limits so the manager can never hold a zero
// or negative zoom.
func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if !(l.MinZoom > 0) || math.IsInf(l.MinZoom, 0) {
		l.MinZoom = d.MinZoom
	}
	if !(l.MaxZoom >= l.MinZoom) || math.IsInf(l.MaxZoom, 0) {
		l.MaxZoom = math.Max(d.MaxZoom, l.MinZoom)
	}
	if !(l.ZoomFactor > 1) || math.IsInf(l.ZoomFactor, 0) {
		l.ZoomFactor = d.ZoomFactor
	}
	if !(l.DefaultZoom > 0) || math.IsInf(l.DefaultZoom, 0) {
		l.DefaultZoom = d.DefaultZoom
	}
	return l
}

// Clamp restricts zoom to [MinZoom, MaxZoom].
func (l Limits) Clamp(zoom float64) float64 {
	return math.Min(math.Max(zoom, l.MinZoom), l.MaxZoom)
}

// Change identifies which part of the state a mutation touched.
type Change uint8

const (
	ChangeZoom Change = iota
	ChangeScroll
	ChangeVisibility
	ChangeColor
	ChangeSelection
	ChangeReset
)

var changeNames = [...]string{
	ChangeZoom:       "zoom",
	ChangeScroll:     "scroll",
	ChangeVisibility: "visibility",
	ChangeColor:      "color",
	ChangeSelection:  "selection",
	ChangeReset:      "reset",
}

// String returns the change name.
func (c Change) String() string {
	if int(c) < len(changeNames) {
		return changeNames[c]
	}
	return "unknown"
}

// State is a snapshot of the viewport, safe to hand to renderers.
type State struct {
	Zoom           float64
	ScrollPosition float64
	VisibleCurves  map[string]bool
	CurveColors    map[string]string
	SelectedMarker string // empty when nothing is selected
}

// Transform returns the coordinate transform of the snapshot.
func (s State) Transform() Transform {
	return Transform{Zoom: s.Zoom, Scroll: s.ScrollPosition}
}

// IsCurveVisible reports whether a curve should be drawn. Curves are visible
// unless explicitly hidden.
func (s State) IsCurveVisible(name string) bool {
	v, ok := s.VisibleCurves[name]
	return !ok || v
}

// CurveColor returns the user-selected color for a curve.
func (s State) CurveColor(name string) (string, bool) {
	c, ok := s.CurveColors[name]
	return c, ok && c != ""
}

// Manager owns zoom, scroll, curve visibility and colors, and marker
// selection for one panel. It is the single source of truth for coordinate
// math.
//
// Every mutation notifies subscribers synchronously. Manager is NOT safe for
// concurrent use.
type Manager struct {
	limits    Limits
	state     State
	observers map[int]func(Change)
	nextID    int
}

// NewManager creates a manager at the default zoom with scroll at depth 0.
func NewManager(limits Limits) *Manager {
	limits = limits.normalized()
	return &Manager{
		limits: limits,
		state: State{
			Zoom:          limits.Clamp(limits.DefaultZoom),
			VisibleCurves: make(map[string]bool),
			CurveColors:   make(map[string]string),
		},
		observers: make(map[int]func(Change)),
	}
}

// Limits returns the zoom limits in effect.
func (m *Manager) Limits() Limits { return m.limits }

// Zoom returns the current zoom in pixels per depth unit.
func (m *Manager) Zoom() float64 { return m.state.Zoom }

// ScrollPosition returns the depth at the top of the window.
func (m *Manager) ScrollPosition() float64 { return m.state.ScrollPosition }

// Transform returns the current coordinate transform.
func (m *Manager) Transform() Transform { return m.state.Transform() }

// DepthToPixel converts depth to a y offset under the current state.
func (m *Manager) DepthToPixel(depth float64) float64 {
	return m.Transform().DepthToPixel(depth)
}

// PixelToDepth converts a y offset to depth under the current state.
func (m *Manager) PixelToDepth(pixel float64) float64 {
	return m.Transform().PixelToDepth(pixel)
}

// SetZoom sets zoom clamped to the configured limits.
// Scroll position is left untouched; the caller anchors it.
// Non-finite and non-positive values are ignored.
func (m *Manager) SetZoom(zoom float64) {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		wlog.Logger().Debug("viewport: ignoring invalid zoom", "zoom", zoom)
		return
	}
	z := m.limits.Clamp(zoom)
	if z == m.state.Zoom {
		return
	}
	m.state.Zoom = z
	m.notify(ChangeZoom)
}

// ZoomIn multiplies zoom by the zoom factor.
func (m *Manager) ZoomIn() { m.SetZoom(m.state.Zoom * m.limits.ZoomFactor) }

// ZoomOut divides zoom by the zoom factor.
func (m *Manager) ZoomOut() { m.SetZoom(m.state.Zoom / m.limits.ZoomFactor) }

// SetScrollPosition stores the depth at the top of the window.
// The value is not clamped to the depth domain: renderers tolerate a window
// that lies partly or fully outside the data. Non-finite values are ignored.
func (m *Manager) SetScrollPosition(depth float64) {
	if !model.IsSample(depth) {
		wlog.Logger().Debug("viewport: ignoring invalid scroll position", "depth", depth)
		return
	}
	if depth == m.state.ScrollPosition {
		return
	}
	m.state.ScrollPosition = depth
	m.notify(ChangeScroll)
}

// IsCurveVisible reports whether a curve is drawn (default true).
func (m *Manager) IsCurveVisible(name string) bool {
	return m.state.IsCurveVisible(name)
}

// ToggleCurveVisibility flips the visibility of a curve.
func (m *Manager) ToggleCurveVisibility(name string) {
	m.state.VisibleCurves[name] = !m.state.IsCurveVisible(name)
	m.notify(ChangeVisibility)
}

// CurveColor returns the color chosen for a curve, if any.
func (m *Manager) CurveColor(name string) (string, bool) {
	return m.state.CurveColor(name)
}

// SetCurveColor records a curve color. An empty color removes the override.
func (m *Manager) SetCurveColor(name, color string) {
	if color == "" {
		delete(m.state.CurveColors, name)
	} else {
		m.state.CurveColors[name] = color
	}
	m.notify(ChangeColor)
}

// SelectedMarker returns the selected marker ID, or "" when none.
func (m *Manager) SelectedMarker() string { return m.state.SelectedMarker }

// SetSelectedMarker selects a marker, replacing any previous selection.
// An empty id clears the selection. Toggling a marker off by selecting it
// twice is left to callers.
func (m *Manager) SetSelectedMarker(id string) {
	if id == m.state.SelectedMarker {
		return
	}
	m.state.SelectedMarker = id
	m.notify(ChangeSelection)
}

// ResetView restores the default zoom and scrolls to the top of domain.
// Curve visibility, colors and selection are kept.
func (m *Manager) ResetView(domain model.DepthDomain) {
	m.state.Zoom = m.limits.Clamp(m.limits.DefaultZoom)
	m.state.ScrollPosition = topOf(domain)
	m.notify(ChangeReset)
}

// Reset prepares the manager for a new well: ResetView plus cleared
// selection, visibility and colors.
func (m *Manager) Reset(domain model.DepthDomain) {
	m.state.SelectedMarker = ""
	clear(m.state.VisibleCurves)
	clear(m.state.CurveColors)
	m.ResetView(domain)
}

// Snapshot returns a copy of the state that later mutations do not affect.
func (m *Manager) Snapshot() State {
	s := m.state
	s.VisibleCurves = maps.Clone(m.state.VisibleCurves)
	s.CurveColors = maps.Clone(m.state.CurveColors)
	return s
}

// Subscribe registers fn to be called after every mutation.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Change)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

func (m *Manager) notify(c Change) {
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.observers[id]; ok {
			fn(c)
		}
	}
}

// topOf returns the scroll position for the top of domain, or 0 when the
// domain is unusable.
func topOf(domain model.DepthDomain) float64 {
	if !domain.Valid() {
		return 0
	}
	return domain.Min
}
