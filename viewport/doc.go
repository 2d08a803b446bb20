// Package viewport holds the zoom/scroll state and the depth↔pixel
// coordinate model shared by every layer of a log panel.
//
// # Coordinate System
//
// Depth increases downward. For a Transform{Zoom, Scroll}:
//
//	DepthToPixel(d) = (d - Scroll) * Zoom
//	PixelToDepth(p) = p / Zoom + Scroll
//
// Zoom is pixels per depth unit and is always > 0, so DepthToPixel is
// strictly increasing and PixelToDepth is its inverse.
//
// # Manager
//
// Manager is the mutable state behind a panel: zoom (clamped to Limits),
// scroll position (deliberately unclamped), per-curve visibility and colors,
// and an exclusive marker selection. Mutations notify subscribers so the
// owner can re-render; renderers consume an immutable Snapshot.
package viewport
