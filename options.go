package welllog

import (
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/overlay"
	"github.com/gogpu/welllog/ruler"
	"github.com/gogpu/welllog/viewport"
	"go.opentelemetry.io/otel/metric"
)

// Option configures a Panel during creation.
//
// Example:
//
//	// Defaults: 3 curves per track, 600px viewport, declared curve order
//	p := welllog.NewPanel()
//
//	// Alphabetical tracks of two curves in a tall viewport
//	p := welllog.NewPanel(
//	    welllog.WithCurvesPerTrack(2),
//	    welllog.WithCurveOrder(model.OrderAlphabetical),
//	    welllog.WithViewportHeight(900),
//	)
type Option func(*panelOptions)

// panelOptions holds the Panel configuration.
type panelOptions struct {
	minimumHeight  float64
	viewportHeight float64
	trackWidth     float64
	rulerWidth     float64
	curvesPerTrack int
	order          model.CurveOrder
	limits         viewport.Limits
	bufferPx       float64
	markerMargin   float64
	hitTolerance   float64
	rulerStyle     ruler.Style
	markerStyle    overlay.Style
	meterProvider  metric.MeterProvider
}

// defaultOptions returns the default panel options.
func defaultOptions() panelOptions {
	return panelOptions{
		minimumHeight:  500,
		viewportHeight: 600,
		trackWidth:     160,
		rulerWidth:     64,
		curvesPerTrack: 3,
		order:          model.OrderDeclared,
		limits:         viewport.DefaultLimits(),
		bufferPx:       50,
		markerMargin:   20,
		hitTolerance:   4,
		rulerStyle:     ruler.DefaultStyle(),
		markerStyle:    overlay.DefaultStyle(),
	}
}

// WithMinimumHeight sets the floor of the scrollable content height.
// Values <= 0 are ignored.
func WithMinimumHeight(px float64) Option {
	return func(o *panelOptions) {
		if px > 0 {
			o.minimumHeight = px
		}
	}
}

// WithViewportHeight sets the height of the visible window in pixels.
func WithViewportHeight(px float64) Option {
	return func(o *panelOptions) {
		if px > 0 {
			o.viewportHeight = px
		}
	}
}

// WithTrackWidth sets the width of each curve track.
func WithTrackWidth(px float64) Option {
	return func(o *panelOptions) {
		if px > 0 {
			o.trackWidth = px
		}
	}
}

// WithRulerWidth sets the width of the depth scale column.
func WithRulerWidth(px float64) Option {
	return func(o *panelOptions) {
		if px > 0 {
			o.rulerWidth = px
		}
	}
}

// WithCurvesPerTrack sets how many curves share one track.
func WithCurvesPerTrack(n int) Option {
	return func(o *panelOptions) {
		if n > 0 {
			o.curvesPerTrack = n
		}
	}
}

// WithCurveOrder sets the order curves are chunked into tracks.
func WithCurveOrder(order model.CurveOrder) Option {
	return func(o *panelOptions) {
		o.order = order
	}
}

// WithZoomLimits sets the zoom range, step factor and default zoom.
func WithZoomLimits(l viewport.Limits) Option {
	return func(o *panelOptions) {
		o.limits = l
	}
}

// WithBufferPx sets how far beyond the window ticks and samples are
// evaluated.
func WithBufferPx(px float64) Option {
	return func(o *panelOptions) {
		if px >= 0 {
			o.bufferPx = px
		}
	}
}

// WithMarkerMargin sets how far outside the window markers are still placed.
func WithMarkerMargin(px float64) Option {
	return func(o *panelOptions) {
		if px >= 0 {
			o.markerMargin = px
		}
	}
}

// WithHitTolerance sets the click distance for marker selection.
func WithHitTolerance(px float64) Option {
	return func(o *panelOptions) {
		if px >= 0 {
			o.hitTolerance = px
		}
	}
}

// WithRulerStyle overrides the depth scale look.
func WithRulerStyle(st ruler.Style) Option {
	return func(o *panelOptions) {
		o.rulerStyle = st
	}
}

// WithMarkerStyle overrides the marker look.
func WithMarkerStyle(st overlay.Style) Option {
	return func(o *panelOptions) {
		o.markerStyle = st
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for render
// metrics. The global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *panelOptions) {
		o.meterProvider = mp
	}
}
