package glctx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/glctx/native"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func errorMessage(id uint32) native.DebugMessage {
	return native.DebugMessage{
		Source:   native.SourceAPI,
		Type:     native.TypeError,
		ID:       id,
		Severity: native.SeverityHigh,
		Message:  "bad call",
	}
}

func TestDiagnosticsOverflow(t *testing.T) {
	buf := captureLog(t)
	const capacity = 4
	d := newDiagnostics(capacity)

	for i := range capacity + 5 {
		d.receive(errorMessage(uint32(i)))
	}

	got := d.drain()
	if len(got) != capacity {
		t.Fatalf("drain() returned %d messages, want %d", len(got), capacity)
	}
	if got[0] != "0: error from api: bad call" {
		t.Errorf("drain()[0] = %q", got[0])
	}
	if n := strings.Count(buf.String(), "diagnostics log full"); n != 1 {
		t.Errorf("log full warnings = %d, want 1", n)
	}
	if again := d.drain(); again != nil {
		t.Errorf("second drain() = %v, want nil", again)
	}

	// Draining rearms the warning.
	for i := range capacity + 1 {
		d.receive(errorMessage(uint32(i)))
	}
	if n := strings.Count(buf.String(), "diagnostics log full"); n != 2 {
		t.Errorf("log full warnings after refill = %d, want 2", n)
	}
}

func TestDiagnosticsFiltersByType(t *testing.T) {
	captureLog(t)
	d := newDiagnostics(16)

	for typ := native.TypeError; typ <= native.TypeOther; typ++ {
		d.receive(native.DebugMessage{Type: typ, Severity: native.SeverityLow, Message: typ.String()})
	}
	got := d.drain()
	if len(got) != 5 {
		t.Fatalf("drain() = %v, want 5 actionable messages", got)
	}
	for _, m := range got {
		for _, skipped := range []string{"marker", "push group", "pop group", ": other"} {
			if strings.HasSuffix(m, skipped) {
				t.Errorf("drain() kept %q", m)
			}
		}
	}
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		severity native.DebugSeverity
		want     slog.Level
	}{
		{native.SeverityHigh, slog.LevelError},
		{native.SeverityMedium, slog.LevelWarn},
		{native.SeverityLow, slog.LevelInfo},
		{native.SeverityNotification, slog.LevelDebug},
		{native.SeverityUnknown, slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := severityLevel(tt.severity); got != tt.want {
			t.Errorf("severityLevel(%v) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestDiagnosticsLogsEveryMessage(t *testing.T) {
	buf := captureLog(t)
	d := newDiagnostics(1)

	d.receive(native.DebugMessage{Type: native.TypeOther, Severity: native.SeverityNotification, ID: 131185, Message: "buffer info"})
	d.receive(native.DebugMessage{Type: native.TypePerformance, Severity: native.SeverityMedium, ID: 7, Message: "slow path"})

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG msg=\"buffer info\"") {
		t.Errorf("notification not logged at debug: %s", out)
	}
	if !strings.Contains(out, "level=WARN msg=\"slow path\"") || !strings.Contains(out, "id=7") {
		t.Errorf("performance message not logged at warn with id: %s", out)
	}
}

func TestPollErrorsFromDevice(t *testing.T) {
	captureLog(t)
	ctx, dev := newTestContext(t)

	if errs := ctx.PollErrors(); errs != nil {
		t.Fatalf("PollErrors() on a fresh context = %v, want nil", errs)
	}

	// Buffer uploads produce notifications only.
	if _, err := ctx.CreateBuffer(Buffer{Data: []byte{1, 2, 3}}); err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	if errs := ctx.PollErrors(); errs != nil {
		t.Errorf("PollErrors() after upload = %v, want nil", errs)
	}

	dev.UseProgram(999)
	errs := ctx.PollErrors()
	if len(errs) != 1 || !strings.Contains(errs[0], "GL_INVALID_OPERATION") {
		t.Errorf("PollErrors() = %v, want one invalid operation", errs)
	}

	dev.UseProgram(999)
	ctx.Reset()
	if errs := ctx.PollErrors(); errs != nil {
		t.Errorf("PollErrors() after Reset = %v, want nil", errs)
	}
}
