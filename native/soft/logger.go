package soft

import (
	"context"
	"log/slog"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// SetLogger sets the logger of this device. glctx calls it when a Context
// is created on the device. Pass nil to silence the device again.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	d.log = l
}
