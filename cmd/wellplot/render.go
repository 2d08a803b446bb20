package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/welllog"
	"github.com/gogpu/welllog/canvas"
	"github.com/gogpu/welllog/internal/wlog"
	"github.com/gogpu/welllog/source"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	zoom   float64
	scroll float64
	sel    string
	hide   []string
	colors []string
	region string
	watch  bool

	scrollSet bool
}

func renderCmd(a *app) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render [flags] <snapshot|well-id>",
		Short: "Render a well to PNG",
		Example: `  # Render a snapshot at 2x
  wellplot render well.yaml --dpr 2 --out well.png

  # Zoom in, start at 2700 m and highlight a marker
  wellplot render well.yaml --zoom 4 --scroll 2700 --select m1

  # Render a stored well, depth scale only
  wellplot render 15/9-F-11 --db wells.db --region depth-scale

  # Re-render whenever the snapshot changes
  wellplot render well.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.scrollSet = cmd.Flags().Changed("scroll")
			return a.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], o)
		},
	}

	f := cmd.Flags()
	f.Float64("dpr", 1, "Device pixel ratio")
	f.Float64("height", 600, "Viewport height in logical pixels")
	f.StringP("out", "o", "well.png", "Output PNG file")
	f.String("order", "declared", "Curve order: declared or alphabetical")
	f.Duration("debounce", source.DefaultDebounce, "Delay before re-rendering in --watch mode")
	f.Float64Var(&o.zoom, "zoom", 0, "Zoom in pixels per depth unit (0 keeps the default)")
	f.Float64Var(&o.scroll, "scroll", 0, "Depth at the top of the window")
	f.StringVar(&o.sel, "select", "", "Marker ID to highlight")
	f.StringSliceVar(&o.hide, "hide", nil, "Curves to hide")
	f.StringArrayVar(&o.colors, "color", nil, "Curve color override as name=#rrggbb (repeatable)")
	f.StringVar(&o.region, "region", "", "Write only this layout region (well-log-plot, depth-scale, track-N, marker-overlay)")
	f.BoolVarP(&o.watch, "watch", "w", false, "Re-render when the snapshot file changes")
	return cmd
}

func (a *app) runRender(ctx context.Context, out io.Writer, target string, o renderOptions) error {
	colors, err := parseColors(o.colors)
	if err != nil {
		return err
	}
	loader, wellID, closeFn, err := a.loader(target)
	if err != nil {
		return err
	}
	defer closeFn()

	p := welllog.NewPanel(a.cfg.PanelOptions()...)
	if err := a.renderOnce(ctx, out, p, loader, wellID, o, colors); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	snap, ok := loader.(source.SnapshotFile)
	if !ok {
		return errors.New("--watch needs a snapshot file")
	}
	fmt.Fprintf(out, "watching %s\n", snap.Path)
	return source.Watch(ctx, snap.Path, a.cfg.Watch.Debounce, func() {
		if err := a.renderOnce(ctx, out, p, loader, wellID, o, colors); err != nil {
			wlog.Logger().Error("wellplot: re-render failed", "err", err)
		}
	})
}

// loader picks the well source: an existing file is a snapshot, anything
// else is a well ID in the configured store.
func (a *app) loader(target string) (source.Loader, string, func(), error) {
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		return source.SnapshotFile{Path: target}, "", func() {}, nil
	}
	if a.cfg.DB == "" {
		return nil, "", nil, fmt.Errorf("%s is not a file and no --db is configured", target)
	}
	store, err := source.Open(a.cfg.DB)
	if err != nil {
		return nil, "", nil, err
	}
	return store, target, func() { _ = store.Close() }, nil
}

// renderOnce loads the well into p, applies the view flags and writes
// the PNG. Reloads go through the same path as a well switch.
func (a *app) renderOnce(ctx context.Context, out io.Writer, p *welllog.Panel, l source.Loader, wellID string, o renderOptions, colors map[string]string) error {
	p.BeginLoad(wellID)
	w, err := l.Load(ctx, wellID)
	if err != nil {
		p.ClearWell()
		return err
	}
	p.SetWell(w)

	if o.zoom > 0 {
		p.SetZoom(o.zoom)
	}
	if o.scrollSet {
		p.SetScrollPosition(o.scroll)
	}
	for _, name := range o.hide {
		if p.IsCurveVisible(name) {
			p.ToggleCurveVisibility(name)
		}
	}
	for name, c := range colors {
		p.SetCurveColor(name, c)
	}
	if o.sel != "" {
		p.SetSelectedMarker(o.sel)
	}

	img, frame, err := p.RenderImage(a.cfg.Render.DPR)
	if err != nil {
		return fmt.Errorf("render %s: %w", w.ID, err)
	}
	defer img.Close()

	path := a.cfg.Render.Out
	if o.region != "" {
		r, ok := p.Layout().Region(o.region)
		if !ok {
			return fmt.Errorf("unknown region %q", o.region)
		}
		err = img.SaveRegionPNG(r.Rect, path)
	} else {
		err = img.SavePNG(path)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(out, "wrote %s: well %s, %s, %d tracks, %d ticks, %d markers, %d samples\n",
		path, w.ID, frame.State, len(frame.Tracks), frame.Ticks, frame.Markers, frame.SamplesVisited)
	return nil
}

// parseColors parses name=#rrggbb pairs.
func parseColors(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		name, c, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("--color %q: want name=color", kv)
		}
		if _, ok := canvas.ParseColor(c); !ok {
			return nil, fmt.Errorf("--color %q: invalid color %q", kv, c)
		}
		out[name] = c
	}
	return out, nil
}
