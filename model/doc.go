// Package model defines the read-only well data consumed by the log renderer.
//
// A Well is a snapshot produced by a loading collaborator: named curves that
// share an ascending depth reference, depth-anchored markers and the horizons
// that color them. The renderer never mutates these values; replacing the
// active well means building a new snapshot.
//
// # Gaps
//
// Missing samples are stored as NaN. Renderers treat NaN (and any other
// non-finite value) as a break in the curve, never as a value to interpolate
// across.
package model
