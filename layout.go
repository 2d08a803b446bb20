package welllog

import (
	"strconv"

	"github.com/gogpu/welllog/canvas"
)

// Region IDs of the panel layout. External capture (reports, exports)
// looks regions up by these names.
const (
	CaptureRegionID = "well-log-plot"
	RulerRegionID   = "depth-scale"
	OverlayRegionID = "marker-overlay"
	trackRegionPfx  = "track-"
)

// TrackRegionID returns the region ID of track i.
func TrackRegionID(i int) string {
	return trackRegionPfx + strconv.Itoa(i)
}

// Region is a named rectangle of the panel in logical pixels.
type Region struct {
	ID   string
	Rect canvas.Rect
}

// Layout describes where the panel draws each layer. The overlay spans the
// track columns.
type Layout struct {
	Plot    Region
	Ruler   Region
	Tracks  []Region
	Overlay Region
}

// Regions returns all regions, plot first.
func (l Layout) Regions() []Region {
	out := make([]Region, 0, len(l.Tracks)+3)
	out = append(out, l.Plot, l.Ruler)
	out = append(out, l.Tracks...)
	return append(out, l.Overlay)
}

// Region looks a region up by ID.
func (l Layout) Region(id string) (Region, bool) {
	for _, r := range l.Regions() {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

func computeLayout(rulerWidth, trackWidth, height float64, tracks int) Layout {
	tracks = max(tracks, 1)
	l := Layout{
		Ruler: Region{ID: RulerRegionID, Rect: canvas.Rect{W: rulerWidth, H: height}},
	}
	for i := range tracks {
		l.Tracks = append(l.Tracks, Region{
			ID:   TrackRegionID(i),
			Rect: canvas.Rect{X: rulerWidth + float64(i)*trackWidth, W: trackWidth, H: height},
		})
	}
	tracksWidth := float64(tracks) * trackWidth
	l.Overlay = Region{ID: OverlayRegionID, Rect: canvas.Rect{X: rulerWidth, W: tracksWidth, H: height}}
	l.Plot = Region{ID: CaptureRegionID, Rect: canvas.Rect{W: rulerWidth + tracksWidth, H: height}}
	return l
}
