// Package metrics records render statistics through OpenTelemetry.
//
// Instruments come from the global meter provider unless one is given, so
// they are no-ops until the application installs an SDK.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/gogpu/welllog"

func meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		return otel.Meter(instrumentationName)
	}
	return mp.Meter(instrumentationName)
}

// Recorder holds the panel instruments.
type Recorder struct {
	frames   metric.Int64Counter
	samples  metric.Int64Counter
	duration metric.Float64Histogram
	loads    metric.Int64Counter
	clicks   metric.Int64Counter
}

// New creates the instruments. A nil provider uses the global one.
func New(mp metric.MeterProvider) (*Recorder, error) {
	m := meter(mp)
	r := &Recorder{}
	var err error

	r.frames, err = m.Int64Counter(
		"welllog.frames",
		metric.WithDescription("Frames rendered by the panel"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	r.samples, err = m.Int64Counter(
		"welllog.samples.visited",
		metric.WithDescription("Curve samples walked while rendering"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples counter: %w", err)
	}

	r.duration, err = m.Float64Histogram(
		"welllog.frame.duration",
		metric.WithDescription("Time spent rendering one frame"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}

	r.loads, err = m.Int64Counter(
		"welllog.well.loads",
		metric.WithDescription("Well snapshots applied to the panel"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating well loads counter: %w", err)
	}

	r.clicks, err = m.Int64Counter(
		"welllog.marker.clicks",
		metric.WithDescription("Clicks that hit a marker"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating marker clicks counter: %w", err)
	}

	return r, nil
}

// Frame records one rendered frame. state is the panel state name.
func (r *Recorder) Frame(ctx context.Context, state string, d time.Duration, samples int) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("state", state))
	r.frames.Add(ctx, 1, attrs)
	r.samples.Add(ctx, int64(samples), attrs)
	r.duration.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
}

// WellLoaded records a well change ending in state.
func (r *Recorder) WellLoaded(ctx context.Context, state string) {
	if r == nil {
		return
	}
	r.loads.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

// MarkerClicked records a click that hit a marker.
func (r *Recorder) MarkerClicked(ctx context.Context) {
	if r == nil {
		return
	}
	r.clicks.Add(ctx, 1)
}
