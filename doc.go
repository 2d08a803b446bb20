// Package welllog renders well-log curve data as a depth-synchronized,
// scrollable and zoomable multi-track plot.
//
// # Overview
//
// A Panel combines three kinds of layers that share one scroll container:
// a depth scale (package ruler), curve tracks (package track) and a marker
// overlay (package overlay). Every layer computes pixel positions from the
// same viewport transform owned by a viewport.Manager, so the layers stay
// aligned without talking to each other.
//
// # Quick Start
//
//	import "github.com/gogpu/welllog"
//
//	p := welllog.NewPanel(welllog.WithViewportHeight(800))
//	p.SetWell(well) // *model.Well from a loader
//
//	p.HandleZoomIn()
//	p.HandleScroll(1200)
//
//	img, _, err := p.RenderImage(2) // 2x device pixel ratio
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
//	img.SavePNG("well.png")
//
// # Coordinate System
//
// Depth grows downward. For zoom z (pixels per depth unit) and scroll
// position s (the depth at the top of the window):
//
//	y     = (depth - s) * z
//	depth = y / z + s
//
// All renderer coordinates are logical pixels; canvas.Image scales them by
// the device pixel ratio.
//
// # Lifecycle
//
// The panel starts in StateNoWell. BeginLoad moves it to StateLoading and
// SetWell to StateLoadedWithCurves or StateLoadedEmpty. Every well change
// resets the viewport to the new depth domain.
//
// # Rendering
//
// Rendering is synchronous and stateless: Render repaints the whole plot
// from the panel state. Per-frame work is bounded by the visible window, not
// by the length of the curves. Register OnChange to re-render after
// mutations.
package welllog

// Version is the current version of the library.
const Version = "0.3.0"
