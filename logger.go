package quad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so slog never
// builds the record in the first place.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent = slog.New(nopHandler{})

	current atomic.Pointer[slog.Logger]
)

// SetLogger routes the diagnostics of every quad package to l.
// Nothing is logged until it is called; nil switches logging off again.
//
// Errors are reserved for the two startup failures (no GPU API, no
// adapter). Info marks the adapter in use and written files, Warn covers
// problems that do not stop a frame, and Debug traces buffer uploads and
// pipeline creation.
//
//	quad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
