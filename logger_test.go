package quad

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

var allLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range allLevels {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("frame", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() left the nop handler")
	}
	if _, ok := h.WithGroup("gpu").(nopHandler); !ok {
		t.Error("WithGroup() left the nop handler")
	}
}

// restoreLogger puts back the logger active before the test.
func restoreLogger(t *testing.T) {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
}

func TestLoggerSilentByDefault(t *testing.T) {
	restoreLogger(t)

	for _, name := range []string{"unset", "reset to nil"} {
		if name == "reset to nil" {
			SetLogger(slog.Default())
			SetLogger(nil)
		}
		l := Logger()
		if l == nil {
			t.Fatalf("%s: Logger() = nil", name)
		}
		for _, level := range allLevels {
			if l.Enabled(context.Background(), level) {
				t.Errorf("%s: enabled at %v", name, level)
			}
		}
	}
}

func TestSetLogger(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)

	if Logger() != custom {
		t.Fatal("Logger() did not return the logger passed to SetLogger")
	}
	Logger().Debug("vertex buffer uploaded", "bytes", 48)
	if !strings.Contains(buf.String(), "bytes=48") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	restoreLogger(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("frame")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}
