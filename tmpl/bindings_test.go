package tmpl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseBindings_Simple(t *testing.T) {
	ev := NewEvaluator(1)

	ns, err := ParseBindings(ev, []string{"a = 2", "name = \"run\""})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if ns["a"] != 2 {
		t.Errorf("expected a=2, got %v", ns["a"])
	}

	if ns["name"] != "run" {
		t.Errorf("expected name='run', got %v", ns["name"])
	}
}

func TestParseBindings_LaterSeesEarlier(t *testing.T) {
	ev := NewEvaluator(1)

	ns, err := ParseBindings(ev, []string{"a = 2", "b = a * 3"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if ns["b"] != 6 {
		t.Errorf("expected b=6, got %v", ns["b"])
	}
}

func TestParseBindings_Malformed(t *testing.T) {
	ev := NewEvaluator(1)

	for _, pair := range []string{"novalue", "= 5", "x =", "="} {
		_, err := ParseBindings(ev, []string{pair})
		if !errors.Is(err, ErrBadBinding) {
			t.Errorf("%q: expected ErrBadBinding, got %v", pair, err)
		}
	}
}

func TestParseBindings_EvalFailureFatal(t *testing.T) {
	ev := NewEvaluator(1)

	_, err := ParseBindings(ev, []string{"a = nosuchname"})
	if err == nil {
		t.Fatal("expected error for unresolvable binding value")
	}
}

func TestParseBindings_Empty(t *testing.T) {
	ns, err := ParseBindings(NewEvaluator(1), nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(ns) != 0 {
		t.Errorf("expected empty namespace, got %v", ns)
	}
}

func TestLoadBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")

	data := "count: 3\nlabel: run\nscale: 1.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	ns, err := LoadBindings(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if ns["label"] != "run" {
		t.Errorf("expected label='run', got %v", ns["label"])
	}

	if ns["scale"] != 1.5 {
		t.Errorf("expected scale=1.5, got %v", ns["scale"])
	}
}

func TestLoadBindings_MissingFile(t *testing.T) {
	_, err := LoadBindings(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrBindingsFile) {
		t.Errorf("expected ErrBindingsFile, got %v", err)
	}
}

func TestLoadBindings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	_, err := LoadBindings(path)
	if !errors.Is(err, ErrBindingsFile) {
		t.Errorf("expected ErrBindingsFile, got %v", err)
	}
}
