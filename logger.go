package gghello

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

func newNopLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gghello, its sub-packages and the gg
// rasterizer. By default nothing is logged. Pass nil to restore silence.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame details, resource creation
//   - [slog.LevelInfo]: lifecycle (backend selected, window created, device generation)
//   - [slog.LevelWarn]: device loss, failed render or resize
//
// The logger is handed to components when an App is initialized, so call
// SetLogger before Initialize.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
