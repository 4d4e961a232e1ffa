package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf)

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", l.Level())
	}

	if l.Format() != DefaultFormat {
		t.Errorf("expected default format, got %v", l.Format())
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))

	l.Info("hello", slog.String("key", "value"))

	out := buf.String()

	if !strings.Contains(out, "hello") {
		t.Errorf("expected message in output, got %q", out)
	}

	if !strings.Contains(out, "key=value") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))

	l.Info("hello", slog.Int("n", 42))

	var entry map[string]any

	err := json.Unmarshal(buf.Bytes(), &entry)
	if err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if entry["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", entry["msg"])
	}

	if entry["n"] != float64(42) {
		t.Errorf("expected n=42, got %v", entry["n"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn))

	l.Info("filtered")

	if buf.Len() != 0 {
		t.Errorf("expected info suppressed at warn level, got %q", buf.String())
	}

	l.Warn("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected warn message, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON)).With(slog.String("run", "alpha"))

	l.Info("tagged")

	if !strings.Contains(buf.String(), `"run":"alpha"`) {
		t.Errorf("expected attached attribute, got %q", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf).Wrap(WithLevel(LevelDebug), WithFormat(FormatJSON))

	if l.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", l.Level())
	}

	if l.Format() != FormatJSON {
		t.Errorf("expected wrapped format json, got %v", l.Format())
	}
}

func TestLogger_ZeroValueDiscards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Info("nowhere")
	l.Error("nowhere")

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level from zero logger, got %v", l.Level())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"bogus", FormatText},
	}

	for _, c := range cases {
		if got := ParseFormat(c.in); got != c.want {
			t.Errorf("ParseFormat(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "debug" {
		t.Errorf("expected 'debug', got %q", LevelDebug.String())
	}

	if LevelError.String() != "error" {
		t.Errorf("expected 'error', got %q", LevelError.String())
	}
}

func TestResolveLayout(t *testing.T) {
	if resolveLayout("rfc3339") == "rfc3339" {
		t.Error("expected named layout resolved to constant")
	}

	if resolveLayout("2006-01-02") != "2006-01-02" {
		t.Error("expected custom layout passed through")
	}

	if resolveLayout("none") != "" {
		t.Error("expected 'none' to disable timestamps")
	}
}
