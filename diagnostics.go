// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/glctx/native"
)

// diagnostics is the bounded log fed by the device debug callback.
//
// The callback runs inside device calls made by the owning goroutine, and
// PollErrors drains between those calls, so there is one writer and one
// reader that never overlap.
type diagnostics struct {
	entries []string
	limit   int
	warned  bool
}

func newDiagnostics(limit int) *diagnostics {
	return &diagnostics{entries: make([]string, 0, limit), limit: limit}
}

func severityLevel(s native.DebugSeverity) slog.Level {
	switch s {
	case native.SeverityHigh:
		return slog.LevelError
	case native.SeverityMedium:
		return slog.LevelWarn
	case native.SeverityLow:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// receive is installed as the device debug callback.
func (d *diagnostics) receive(m native.DebugMessage) {
	Logger().Log(context.Background(), severityLevel(m.Severity), m.Message,
		"source", m.Source.String(),
		"type", m.Type.String(),
		"id", m.ID,
	)

	if !m.Type.Actionable() {
		return
	}
	if len(d.entries) >= d.limit {
		if !d.warned {
			d.warned = true
			Logger().Warn("glctx: diagnostics log full, discarding messages", "capacity", d.limit)
		}
		return
	}
	d.entries = append(d.entries, fmt.Sprintf("%d: %s from %s: %s", m.ID, m.Type, m.Source, m.Message))
}

// drain returns the buffered messages, or nil when there are none.
func (d *diagnostics) drain() []string {
	if len(d.entries) == 0 {
		return nil
	}
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	d.entries = d.entries[:0]
	d.warned = false
	return out
}

func (d *diagnostics) reset() {
	d.entries = d.entries[:0]
	d.warned = false
}
