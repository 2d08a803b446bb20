package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/welllog"
	"github.com/gogpu/welllog/model"
	"github.com/spf13/pflag"
)

func TestResolve_Defaults(t *testing.T) {
	v := New()
	if err := Load(v, ""); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	c, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	if c.Render.DPR != 1 || c.Render.Height != 600 || c.Render.CurvesPerTrack != 3 {
		t.Errorf("render defaults = %+v", c.Render)
	}
	if c.Zoom.Min != 0.05 || c.Zoom.Max != 50 || c.Zoom.Factor != 1.5 {
		t.Errorf("zoom defaults = %+v", c.Zoom)
	}
	if c.Watch.Debounce != 150*time.Millisecond {
		t.Errorf("watch.debounce = %v", c.Watch.Debounce)
	}
	if c.Debug || c.DB != "" {
		t.Errorf("debug/db defaults = %v / %q", c.Debug, c.DB)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellplot.yaml")
	body := "db: wells.db\nrender:\n  height: 900\n  order: alphabetical\nzoom:\n  max: 8\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := Load(v, path); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	c, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	if c.DB != "wells.db" || c.Render.Height != 900 || c.Zoom.Max != 8 {
		t.Errorf("config = %+v", c)
	}
	if order, _ := c.CurveOrder(); order != model.OrderAlphabetical {
		t.Errorf("CurveOrder() = %v, want alphabetical", order)
	}
	// Keys missing from the file keep their defaults.
	if c.Render.TrackWidth != 160 {
		t.Errorf("render.trackWidth = %v, want default 160", c.Render.TrackWidth)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load(missing) = nil, want error")
	}
}

func TestResolve_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellplot.json")
	if err := os.WriteFile(path, []byte(`{"render": {"dpr": 1.5, "height": 700}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WELLPLOT_RENDER_HEIGHT", "750")
	t.Setenv("WELLPLOT_DB", "postgres://localhost/wells")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("dpr", 1, "")
	fs.Float64("height", 600, "")
	if err := fs.Parse([]string{"--dpr", "3"}); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := Load(v, path); err != nil {
		t.Fatal(err)
	}
	if err := BindFlags(v, fs, map[string]string{
		"render.dpr":    "dpr",
		"render.height": "height",
		"render.out":    "out", // not defined, skipped
	}); err != nil {
		t.Fatalf("BindFlags() = %v", err)
	}
	c, err := Resolve(v)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats file", c.Render.DPR, 3.0},
		{"env beats file when flag unset", c.Render.Height, 750.0},
		{"env beats default", c.DB, "postgres://localhost/wells"},
		{"default survives", c.Render.Out, "well.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"order", "render.order", "random"},
		{"curves per track", "render.curvesPerTrack", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.value)
			if _, err := Resolve(v); err == nil {
				t.Errorf("Resolve() with %s=%v = nil error", tt.key, tt.value)
			}
		})
	}
}

func TestPanelOptions(t *testing.T) {
	v := New()
	v.Set("render.height", 420)
	v.Set("zoom.max", 4)
	c, err := Resolve(v)
	if err != nil {
		t.Fatal(err)
	}
	p := welllog.NewPanel(c.PanelOptions()...)
	if p.ViewportHeight() != 420 {
		t.Errorf("ViewportHeight() = %v, want 420", p.ViewportHeight())
	}
	if got := p.Viewport().Limits().MaxZoom; got != 4 {
		t.Errorf("MaxZoom = %v, want 4", got)
	}
}
