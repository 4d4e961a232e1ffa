package tmpl

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// AsSequence attempts to coerce an evaluated snippet value into an ordered
// sequence of candidate values. It returns false for every scalar kind:
// numbers, booleans, maps, nil, and strings. A textual value is always
// scalar even though it is iterable at the character level, and byte slices
// are treated as text.
func AsSequence(v any) ([]any, bool) {
	switch v.(type) {
	case nil, string, []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	seq := make([]any, rv.Len())
	for i := range seq {
		seq[i] = rv.Index(i).Interface()
	}

	return seq, true
}

// FormatValue renders a value in its canonical string form for inline
// substitution. No locale-specific formatting is applied.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case bool:
		return strconv.FormatBool(val)

	case string:
		return val

	case []byte:
		return string(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case uint64:
		return strconv.FormatUint(val, 10)

	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)

	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)

	case []any:
		return formatSlice(val)

	case map[string]any:
		return formatMap(val)

	default:
		if seq, ok := AsSequence(v); ok {
			return formatSlice(seq)
		}

		return fmt.Sprintf("%v", val)
	}
}

// formatSlice renders a sequence as a bracketed, comma-separated list.
func formatSlice(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatValue(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// formatMap renders a map with keys in lexicographic order so output is
// stable across runs.
func formatMap(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, k+": "+FormatValue(m[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
