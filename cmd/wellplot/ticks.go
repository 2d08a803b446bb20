package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/ruler"
	"github.com/gogpu/welllog/viewport"
	"github.com/spf13/cobra"
)

type ticksOptions struct {
	min, max float64
	zoom     float64
	scroll   float64
	height   float64
	buffer   float64
}

func ticksCmd(_ *app) *cobra.Command {
	var o ticksOptions

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the depth scale ticks for a window",
		Example: `  # Ticks for 1000-2000 m at 2 px/m, scrolled to 1200 m
  wellplot ticks --min 1000 --max 2000 --zoom 2 --scroll 1200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scroll") {
				o.scroll = o.min
			}
			return printTicks(cmd.OutOrStdout(), o)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.min, "min", 0, "Top of the depth domain")
	f.Float64Var(&o.max, "max", 1000, "Bottom of the depth domain")
	f.Float64Var(&o.zoom, "zoom", 1, "Zoom in pixels per depth unit")
	f.Float64Var(&o.scroll, "scroll", 0, "Depth at the top of the window (default --min)")
	f.Float64Var(&o.height, "height", 600, "Window height in pixels")
	f.Float64Var(&o.buffer, "buffer", 0, "Extra pixels above and below the window")
	return cmd
}

func printTicks(w io.Writer, o ticksOptions) error {
	d := model.DepthDomain{Min: min(o.min, o.max), Max: max(o.min, o.max)}
	if !d.Valid() {
		return fmt.Errorf("invalid depth domain [%v, %v]", o.min, o.max)
	}
	t := viewport.Transform{Zoom: o.zoom, Scroll: o.scroll}
	if !t.Valid() {
		return fmt.Errorf("invalid zoom %v", o.zoom)
	}
	ticks := ruler.Ticks(ruler.Params{Domain: d, Transform: t, HeightPx: o.height, BufferPx: o.buffer})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "interval\t%s\t\n", strconv.FormatFloat(ruler.TickInterval(o.zoom), 'g', -1, 64))
	fmt.Fprintln(tw, "depth\ty\tkind\tlabel\t")
	for _, tk := range ticks {
		kind := "minor"
		if tk.Major {
			kind = "major"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%s\t\n",
			strconv.FormatFloat(tk.Depth, 'f', -1, 64), tk.Y, kind, tk.Label)
	}
	fmt.Fprintf(tw, "%d ticks\t\t\t\t\n", len(ticks))
	return tw.Flush()
}
