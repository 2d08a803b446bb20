package welllog

import (
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/welllog/internal/wlog"
)

// SetLogger configures the logger for welllog and all its sub-packages.
// By default, welllog produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
// The logger is also handed to gg so rasterizer diagnostics end up in the
// same place.
//
// Log levels used by welllog:
//   - [slog.LevelDebug]: panel state transitions, ignored input, tick caps
//   - [slog.LevelInfo]: well loads
//   - [slog.LevelWarn]: degraded data (mismatched curve arrays, missing font)
//
// Example:
//
//	welllog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	wlog.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by welllog.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return wlog.Logger()
}
