package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestLogger() (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewWriterLogger(&stdout, &stderr), &stdout, &stderr
}

func TestDefaultLoggerRouting(t *testing.T) {
	l, stdout, stderr := newTestLogger()

	l.Info("frame analyzed")
	l.Warn("channel unplottable")
	l.Error(errors.New("boom"), "decode failed")

	if !strings.Contains(stdout.String(), "[INFO] frame analyzed") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[WARN] channel unplottable") {
		t.Errorf("stderr missing warn: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "[ERROR] decode failed: boom") {
		t.Errorf("stderr missing error: %q", stderr.String())
	}
}

func TestDefaultLoggerLevel(t *testing.T) {
	l, stdout, _ := newTestLogger()

	l.Debug("hidden")
	if stdout.Len() != 0 {
		t.Errorf("debug logged at info level: %q", stdout.String())
	}

	l.SetLevel(DebugLevel)
	l.Debug("shown")
	if !strings.Contains(stdout.String(), "[DEBUG] shown") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestDefaultLoggerFieldsSorted(t *testing.T) {
	l, stdout, _ := newTestLogger()

	l.WithFields(Fields{"component": "dashboard"}).Info("peaks", Fields{"peaks": 3, "channel": "ch1"})

	if !strings.Contains(stdout.String(), "[INFO] peaks channel=ch1 component=dashboard peaks=3") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	l, stdout, _ := newTestLogger()

	_ = l.WithFields(Fields{"component": "child"})
	l.Info("parent")

	if strings.Contains(stdout.String(), "component") {
		t.Errorf("child fields leaked into parent: %q", stdout.String())
	}
}

func TestWithContext(t *testing.T) {
	l, stdout, _ := newTestLogger()

	ctx := ContextWithFields(context.Background(), Fields{"request": "r-1"})
	l.WithContext(ctx).Info("handled")
	if !strings.Contains(stdout.String(), "request=r-1") {
		t.Errorf("stdout = %q", stdout.String())
	}

	if got := l.WithContext(context.Background()); got != Logger(l) {
		t.Error("context without fields should return the same logger")
	}
}

func TestFatalExits(t *testing.T) {
	l, _, stderr := newTestLogger()
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("bad config"), "startup")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "[FATAL] startup: bad config") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestColors(t *testing.T) {
	l, _, stderr := newTestLogger()
	l.SetColors(true)
	l.Warn("careful")

	if !strings.HasPrefix(strings.SplitN(stderr.String(), " ", 3)[2], ColorYellow) {
		t.Errorf("warn not colored: %q", stderr.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	l, stdout, _ := newTestLogger()
	SetGlobalLogger(l)
	Info("global", Fields{"k": "v"})
	if !strings.Contains(stdout.String(), "[INFO] global k=v") {
		t.Errorf("stdout = %q", stdout.String())
	}

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Errorf("nil logger installed %T, want *NoOpLogger", GetGlobalLogger())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": DebugLevel,
		"WARN":  WarnLevel,
		"error": ErrorLevel,
		"":      InfoLevel,
		"bogus": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
