package model

import "math"

// DepthRange is the active well's declared depth interval.
// Start and Stop may be given in either order.
type DepthRange struct {
	Start float64
	Stop  float64
	Unit  string
}

// Valid reports whether both ends are finite.
func (r DepthRange) Valid() bool {
	return IsSample(r.Start) && IsSample(r.Stop)
}

// Domain returns the range as an ordered domain.
func (r DepthRange) Domain() (DepthDomain, bool) {
	if !r.Valid() {
		return DepthDomain{}, false
	}
	return DepthDomain{Min: math.Min(r.Start, r.Stop), Max: math.Max(r.Start, r.Stop)}, true
}

// Well is the snapshot of one well's log data.
type Well struct {
	ID       string
	Name     string
	Range    DepthRange
	Logs     *WellLogs
	Markers  []Marker
	Horizons []Horizon
}

// HasCurves reports whether any curve carries at least one usable sample.
func (w *Well) HasCurves() bool {
	if w == nil || w.Logs == nil {
		return false
	}
	for _, c := range w.Logs.curves {
		if c.HasSamples() {
			return true
		}
	}
	return false
}

// Domain returns the displayed depth domain.
//
// The master depth array of the curves wins; the declared DepthRange is
// used when there are no curves with depths.
func (w *Well) Domain() (DepthDomain, bool) {
	if w == nil {
		return DepthDomain{}, false
	}
	if d, ok := w.Logs.Domain(); ok {
		return d, true
	}
	return w.Range.Domain()
}
