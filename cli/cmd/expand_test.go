package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpand_Run(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.cym.tpl")

	err := os.WriteFile(path, []byte("rate = [[ [1, 10] ]]\n"), 0o644)
	if err != nil {
		t.Fatalf("write template: %v", err)
	}

	e := &Expand{
		Templates: []string{path},
		OutputDir: dir,
		Width:     2,
		Repeat:    1,
		Seed:      1,
	}

	if err := e.Run(t.Context()); err != nil {
		t.Fatalf("run error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config00.cym"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "rate = 1\n" {
		t.Errorf("expected 'rate = 1', got %q", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "config01.cym"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "rate = 10\n" {
		t.Errorf("expected 'rate = 10', got %q", data)
	}
}

func TestExpand_Run_SetBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.txt.tpl")

	err := os.WriteFile(path, []byte("v=[[ base * 3 ]]"), 0o644)
	if err != nil {
		t.Fatalf("write template: %v", err)
	}

	e := &Expand{
		Templates: []string{path},
		OutputDir: dir,
		Repeat:    1,
		Set:       []string{"base = 2"},
		Seed:      1,
	}

	if err := e.Run(t.Context()); err != nil {
		t.Fatalf("run error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "v0000.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "v=6" {
		t.Errorf("expected 'v=6', got %q", data)
	}
}

func TestExpand_Run_BindingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.txt.tpl")

	err := os.WriteFile(path, []byte("label=[[ label ]]"), 0o644)
	if err != nil {
		t.Fatalf("write template: %v", err)
	}

	bindings := filepath.Join(dir, "bindings.yaml")

	err = os.WriteFile(bindings, []byte("label: alpha\n"), 0o644)
	if err != nil {
		t.Fatalf("write bindings: %v", err)
	}

	e := &Expand{
		Templates: []string{path},
		OutputDir: dir,
		Repeat:    1,
		Bindings:  bindings,
		Seed:      1,
	}

	if err := e.Run(t.Context()); err != nil {
		t.Fatalf("run error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "v0000.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(data) != "label=alpha" {
		t.Errorf("expected 'label=alpha', got %q", data)
	}
}

func TestExpand_Run_MalformedSetFatal(t *testing.T) {
	e := &Expand{
		Templates: []string{"unused.tpl"},
		Set:       []string{"notabinding"},
		Seed:      1,
	}

	if err := e.Run(t.Context()); err == nil {
		t.Fatal("expected error for malformed binding")
	}
}
