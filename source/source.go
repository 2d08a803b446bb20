// Package source loads well snapshots for the panel.
//
// Loaders are the external collaborators of the rendering engine: they turn
// files or database rows into immutable model.Well values. Two loaders are
// provided: SnapshotFile reads a YAML (or JSON) snapshot and Store reads
// wells saved in a SQL database through gorm.
package source

import (
	"context"
	"errors"

	"github.com/gogpu/welllog/model"
)

// Sentinel errors.
var (
	// ErrWellNotFound is returned when the requested well does not exist.
	ErrWellNotFound = errors.New("source: well not found")

	// ErrInvalidSnapshot is returned when a snapshot cannot be turned into
	// a well.
	ErrInvalidSnapshot = errors.New("source: invalid snapshot")

	// ErrUnsupportedDSN is returned by Open for an unknown database DSN.
	ErrUnsupportedDSN = errors.New("source: unsupported database DSN")
)

// Loader loads a well snapshot by ID.
type Loader interface {
	Load(ctx context.Context, wellID string) (*model.Well, error)
}
