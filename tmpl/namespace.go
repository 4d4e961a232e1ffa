package tmpl

import (
	"maps"
	"slices"
)

// IndexKey is the namespace variable automatically maintained by the output
// materializer. It holds the number of files produced so far for the current
// template and is visible to every snippet expression.
const IndexKey = "index"

// Namespace maps bound names to their evaluated values.
//
// A single Namespace is shared by reference across the entire run. The
// expansion engine mutates it in place while descending and undoes each
// binding before its frame returns, so sibling fan-out branches always
// observe the pre-fork state (stack-discipline mutation, not copy-on-write).
type Namespace map[string]any

// NewNamespace returns a Namespace with the file index initialized to zero.
func NewNamespace() Namespace {
	return Namespace{IndexKey: 0}
}

// Bind sets name to value and returns a function that restores the prior
// binding (or absence of one). Callers must invoke the returned function
// before their frame returns so the mutation never leaks to sibling frames.
func (ns Namespace) Bind(name string, value any) (restore func()) {
	prior, existed := ns[name]
	ns[name] = value

	return func() {
		if existed {
			ns[name] = prior
		} else {
			delete(ns, name)
		}
	}
}

// SortedKeys returns the bound names in lexicographic order.
// The table log uses this to fix its column order at the first emitted file.
func (ns Namespace) SortedKeys() []string {
	return slices.Sorted(maps.Keys(ns))
}

// Snapshot returns a shallow copy of the current bindings.
func (ns Namespace) Snapshot() Namespace {
	return maps.Clone(ns)
}
