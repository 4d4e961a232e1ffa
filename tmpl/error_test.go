package tmpl

import (
	"errors"
	"io/fs"
	"log/slog"
	"testing"
)

func TestError_Message(t *testing.T) {
	e := NewError("outer").Wrap(errors.New("inner"))

	if e.Error() != "outer: inner" {
		t.Errorf("expected 'outer: inner', got %q", e.Error())
	}
}

func TestError_SentinelSurvivesAttrs(t *testing.T) {
	err := ErrUnclosedBlock.With(slog.String("preceding", "text"))

	if !errors.Is(err, ErrUnclosedBlock) {
		t.Error("expected sentinel match after With")
	}

	if errors.Is(err, ErrEmptySnippet) {
		t.Error("expected no match against a different sentinel")
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	err := ErrReadTemplate.Wrap(fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected wrapped cause to match")
	}

	if !errors.Is(err, ErrReadTemplate) {
		t.Error("expected sentinel to match")
	}
}

func TestWrapError_PreservesExisting(t *testing.T) {
	inner := ErrExprEvaluate.With(slog.String("snippet", "x"))

	if WrapError(inner) != inner {
		t.Error("expected existing Error returned unchanged")
	}

	plain := errors.New("plain")
	if !errors.Is(WrapError(plain), plain) {
		t.Error("expected plain error wrapped as cause")
	}
}

func TestError_LogValue(t *testing.T) {
	e := NewError("failed").
		Wrap(errors.New("cause")).
		With(slog.String("detail", "x"))

	v := e.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, want := range []string{"error", "cause", "detail"} {
		if !keys[want] {
			t.Errorf("expected attribute %q in log value", want)
		}
	}
}
