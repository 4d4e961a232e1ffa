package tmpl

import (
	"slices"
	"testing"
)

func TestNamespace_BindRestoresAbsent(t *testing.T) {
	ns := NewNamespace()

	restore := ns.Bind("x", 1)

	if ns["x"] != 1 {
		t.Fatalf("expected x=1, got %v", ns["x"])
	}

	restore()

	if _, ok := ns["x"]; ok {
		t.Error("expected x removed after restore")
	}
}

func TestNamespace_BindRestoresPrior(t *testing.T) {
	ns := NewNamespace()
	ns["x"] = "old"

	restore := ns.Bind("x", "new")

	if ns["x"] != "new" {
		t.Fatalf("expected x='new', got %v", ns["x"])
	}

	restore()

	if ns["x"] != "old" {
		t.Errorf("expected x='old' after restore, got %v", ns["x"])
	}
}

func TestNamespace_BindNesting(t *testing.T) {
	// Restores replayed innermost-first reproduce each prior state.
	ns := NewNamespace()

	outer := ns.Bind("x", 1)
	inner := ns.Bind("x", 2)

	inner()

	if ns["x"] != 1 {
		t.Fatalf("expected x=1 after inner restore, got %v", ns["x"])
	}

	outer()

	if _, ok := ns["x"]; ok {
		t.Error("expected x removed after outer restore")
	}
}

func TestNamespace_SortedKeys(t *testing.T) {
	ns := Namespace{"b": 1, "a": 2, "c": 3}

	keys := ns.SortedKeys()
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Errorf("expected sorted keys, got %v", keys)
	}
}

func TestNamespace_SnapshotIsIndependent(t *testing.T) {
	ns := NewNamespace()
	ns["x"] = 1

	snap := ns.Snapshot()
	ns["x"] = 2

	if snap["x"] != 1 {
		t.Errorf("expected snapshot x=1, got %v", snap["x"])
	}
}

func TestNewNamespace_IndexZero(t *testing.T) {
	ns := NewNamespace()

	if ns[IndexKey] != 0 {
		t.Errorf("expected index initialized to 0, got %v", ns[IndexKey])
	}
}
