package metrics

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		new  func() (*Recorder, error)
	}{
		{"global provider", func() (*Recorder, error) { return New(nil) }},
		{"explicit provider", func() (*Recorder, error) { return New(noop.NewMeterProvider()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.new()
			if err != nil {
				t.Fatalf("New() = %v", err)
			}
			ctx := context.Background()
			r.Frame(ctx, "loaded", 3*time.Millisecond, 120)
			r.WellLoaded(ctx, "loaded")
			r.MarkerClicked(ctx)
		})
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	ctx := context.Background()
	// A nil recorder disables metrics.
	r.Frame(ctx, "empty", time.Millisecond, 0)
	r.WellLoaded(ctx, "empty")
	r.MarkerClicked(ctx)
}
