package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/welllog"
)

const snapshot = `
well:
  id: T-1
  range: {start: 1000, stop: 1100, unit: m}
depths: [1000, 1025, 1050, 1075, 1100]
curves:
  - {name: GR, unit: gAPI, values: [40, 55, null, 70, 65]}
  - {name: RDEP, unit: ohm.m, values: [2, 20, 200, 20, 2]}
markers:
  - {id: m1, name: Top A, depth: 1040}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { welllog.SetLogger(nil) })
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func TestRender_Snapshot(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "well.yaml", snapshot)
	out := filepath.Join(dir, "out.png")

	stdout, err := run(t, "render", snap, "--out", out, "--dpr", "2", "--height", "200",
		"--zoom", "2", "--select", "m1", "--hide", "RDEP", "--color", "GR=#00aa00")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout, "wrote "+out) || !strings.Contains(stdout, "well T-1") {
		t.Errorf("stdout = %q", stdout)
	}
	// Ruler (64) plus one track (160) at 2x.
	if w, h := pngSize(t, out); w != 448 || h != 400 {
		t.Errorf("png = %dx%d, want 448x400", w, h)
	}
}

func TestRender_Region(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "well.yaml", snapshot)
	out := filepath.Join(dir, "ruler.png")

	if _, err := run(t, "render", snap, "--out", out, "--height", "150", "--region", welllog.RulerRegionID); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w, h := pngSize(t, out); w != 64 || h != 150 {
		t.Errorf("png = %dx%d, want 64x150", w, h)
	}
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "well.yaml", snapshot)
	out := filepath.Join(dir, "x.png")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad color", []string{"render", snap, "--out", out, "--color", "GR=nope"}, "invalid color"},
		{"color without name", []string{"render", snap, "--out", out, "--color", "#fff"}, "want name=color"},
		{"unknown region", []string{"render", snap, "--out", out, "--region", "legend"}, "unknown region"},
		{"no db", []string{"render", "T-1", "--out", out}, "no --db"},
		{"bad order", []string{"render", snap, "--out", out, "--order", "random"}, "render.order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestImportThenRenderFromStore(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "well.yaml", snapshot)
	db := filepath.Join(dir, "wells.db")
	out := filepath.Join(dir, "stored.png")

	stdout, err := run(t, "import", snap, "--db", db)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(stdout, "imported T-1 (2 curves, 1 markers)") {
		t.Errorf("import stdout = %q", stdout)
	}

	if _, err := run(t, "render", "T-1", "--db", db, "--out", out); err != nil {
		t.Fatalf("render from store: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}

	if _, err := run(t, "render", "missing", "--db", db, "--out", out); err == nil {
		t.Error("render of unknown well id succeeded")
	}
}

func TestImport_NeedsDB(t *testing.T) {
	snap := writeFile(t, t.TempDir(), "well.yaml", snapshot)
	if _, err := run(t, "import", snap); err == nil || !strings.Contains(err.Error(), "--db") {
		t.Errorf("import without db: %v", err)
	}
}

func TestTicks(t *testing.T) {
	stdout, err := run(t, "ticks", "--min", "1000", "--max", "2000", "--zoom", "2", "--scroll", "1200", "--height", "100")
	if err != nil {
		t.Fatalf("ticks: %v", err)
	}
	for _, want := range []string{"interval", "1,200", "1,250", "major", "minor", "26 ticks"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestTicks_InvalidZoom(t *testing.T) {
	if _, err := run(t, "ticks", "--zoom", "0"); err == nil {
		t.Error("ticks --zoom 0 succeeded")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "well.yaml", snapshot)
	out := filepath.Join(dir, "cfg.png")
	cfg := writeFile(t, dir, "wellplot.yaml", "render:\n  height: 120\n  out: "+out+"\n")

	if _, err := run(t, "--config", cfg, "render", snap); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, h := pngSize(t, out); h != 120 {
		t.Errorf("png height = %d, want 120 from config file", h)
	}
}
