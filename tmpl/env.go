package tmpl

// This file defines the built-in evaluation environment available to all
// snippet expressions. The set of callable utilities is bounded and
// explicitly enumerated: sequence constructors, random-sampling primitives
// bound to a run-seeded generator, a few numeric helpers, and process
// environment and path utilities.
//
// Built-in names can be shadowed by snippet bindings.

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"
)

// rngStream is the second PCG seed word, fixed so a given --seed value
// reproduces the same draw sequence across runs.
const rngStream = 0xda3e39cb94b95bdb

// makeEnv constructs the built-in environment bound to the given random
// source. The returned map is owned by the caller and safe to mutate.
func makeEnv(rng *rand.Rand) map[string]any {
	return map[string]any{
		// Sequence constructors.
		"range":    rangeFunc,
		"linspace": linspaceFunc,

		// Random-sampling primitives.
		"uniform": uniformFunc(rng),
		"normal":  normalFunc(rng),
		"randint": randintFunc(rng),
		"choice":  choiceFunc(rng),

		// Numeric helpers beyond the evaluator's own builtins.
		"sqrt": mathFunc(math.Sqrt),
		"sin":  mathFunc(math.Sin),
		"cos":  mathFunc(math.Cos),
		"exp":  mathFunc(math.Exp),
		"logn": mathFunc(math.Log),
		"pow":  powFunc,
		"pi":   math.Pi,

		// Process environment.
		"env": envFunc(os.Getenv),

		// Path manipulation functions.
		"path": map[string]any{
			"abs": pathAbs,
			"cat": pathCat,
			"rel": pathRel,
		},

		// Delimited-list string manipulation via mung.
		"mung": map[string]any{
			"prefix": mungPrefix,
		},
	}
}

// ---------------------------------------------------------------------------
// Sequence constructors
// ---------------------------------------------------------------------------

// rangeFunc implements range(stop), range(start, stop), and
// range(start, stop, step) over integers, half-open like a counted loop.
func rangeFunc(args ...any) ([]any, error) {
	n, err := toInts("range", args...)
	if err != nil {
		return nil, err
	}

	var start, stop, step int

	switch len(n) {
	case 1:
		start, stop, step = 0, n[0], 1
	case 2:
		start, stop, step = n[0], n[1], 1
	case 3:
		start, stop, step = n[0], n[1], n[2]
	default:
		return nil, ErrExprEvaluate.With(
			slog.String("function", "range"),
			slog.Int("args", len(n)),
		)
	}

	if step == 0 {
		return nil, ErrExprEvaluate.With(
			slog.String("function", "range"),
			slog.String("reason", "zero step"),
		)
	}

	var seq []any

	if step > 0 {
		for i := start; i < stop; i += step {
			seq = append(seq, i)
		}
	} else {
		for i := start; i > stop; i += step {
			seq = append(seq, i)
		}
	}

	return seq, nil
}

// linspaceFunc returns n evenly spaced values from lo to hi inclusive.
func linspaceFunc(args ...any) ([]any, error) {
	if len(args) != 3 {
		return nil, ErrExprEvaluate.With(
			slog.String("function", "linspace"),
			slog.Int("args", len(args)),
		)
	}

	lo, err := toFloat("linspace", args[0])
	if err != nil {
		return nil, err
	}

	hi, err := toFloat("linspace", args[1])
	if err != nil {
		return nil, err
	}

	count, err := toInts("linspace", args[2])
	if err != nil {
		return nil, err
	}

	n := count[0]
	if n < 2 {
		return []any{lo}, nil
	}

	seq := make([]any, n)
	for i := range seq {
		seq[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}

	return seq, nil
}

// ---------------------------------------------------------------------------
// Random-sampling primitives
// ---------------------------------------------------------------------------

func uniformFunc(rng *rand.Rand) func(...any) (float64, error) {
	return func(args ...any) (float64, error) {
		lo, hi, err := toFloatPair("uniform", args)
		if err != nil {
			return 0, err
		}

		return lo + rng.Float64()*(hi-lo), nil
	}
}

func normalFunc(rng *rand.Rand) func(...any) (float64, error) {
	return func(args ...any) (float64, error) {
		mu, sigma, err := toFloatPair("normal", args)
		if err != nil {
			return 0, err
		}

		return mu + rng.NormFloat64()*sigma, nil
	}
}

// randintFunc draws an integer from [lo, hi], both bounds inclusive.
func randintFunc(rng *rand.Rand) func(...any) (int, error) {
	return func(args ...any) (int, error) {
		n, err := toInts("randint", args...)
		if err != nil {
			return 0, err
		}

		if len(n) != 2 || n[1] < n[0] {
			return 0, ErrExprEvaluate.With(
				slog.String("function", "randint"),
				slog.String("reason", "expected lo, hi with lo <= hi"),
			)
		}

		return n[0] + rng.IntN(n[1]-n[0]+1), nil
	}
}

func choiceFunc(rng *rand.Rand) func(any) (any, error) {
	return func(v any) (any, error) {
		seq, ok := AsSequence(v)
		if !ok || len(seq) == 0 {
			return nil, ErrExprEvaluate.With(
				slog.String("function", "choice"),
				slog.String("reason", "expected a non-empty sequence"),
			)
		}

		return seq[rng.IntN(len(seq))], nil
	}
}

// ---------------------------------------------------------------------------
// Numeric helpers
// ---------------------------------------------------------------------------

func mathFunc(fn func(float64) float64) func(any) (float64, error) {
	return func(v any) (float64, error) {
		f, err := toFloat("math", v)
		if err != nil {
			return 0, err
		}

		return fn(f), nil
	}
}

func powFunc(args ...any) (float64, error) {
	base, exp, err := toFloatPair("pow", args)
	if err != nil {
		return 0, err
	}

	return math.Pow(base, exp), nil
}

// toFloat coerces a single numeric argument to float64.
func toFloat(name string, v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, ErrExprEvaluate.With(
			slog.String("function", name),
			slog.Any("argument", v),
			slog.String("reason", "expected a number"),
		)
	}
}

func toFloatPair(name string, args []any) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, ErrExprEvaluate.With(
			slog.String("function", name),
			slog.Int("args", len(args)),
		)
	}

	a, err := toFloat(name, args[0])
	if err != nil {
		return 0, 0, err
	}

	b, err := toFloat(name, args[1])
	if err != nil {
		return 0, 0, err
	}

	return a, b, nil
}

// toInts coerces arguments to integers, rejecting fractional values.
func toInts(name string, args ...any) ([]int, error) {
	out := make([]int, len(args))

	for i, v := range args {
		switch n := v.(type) {
		case int:
			out[i] = n
		case int64:
			out[i] = int(n)
		case uint64:
			out[i] = int(n)
		case float64:
			if n != math.Trunc(n) {
				return nil, ErrExprEvaluate.With(
					slog.String("function", name),
					slog.Any("argument", v),
					slog.String("reason", "expected an integer"),
				)
			}

			out[i] = int(n)
		default:
			return nil, ErrExprEvaluate.With(
				slog.String("function", name),
				slog.Any("argument", v),
				slog.String("reason", "expected an integer"),
			)
		}
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Process environment
// ---------------------------------------------------------------------------

// envFunc returns the built-in env() function that provides process
// environment access to snippet expressions.
func envFunc(lookup func(string) string) func(string) string {
	return func(key string) string {
		return lookup(key)
	}
}

// ---------------------------------------------------------------------------
// Path manipulation functions
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// ---------------------------------------------------------------------------
// Delimited-list string manipulation (mung)
// ---------------------------------------------------------------------------

// mungPrefix prepends items to a delimiter-separated list value, useful for
// assembling search-path style fields in generated configurations.
func mungPrefix(value string, delim string, prefix ...string) string {
	if strings.TrimSpace(delim) == "" {
		delim = string(os.PathListSeparator)
	}

	return mung.Make(
		mung.WithSubjectItems(value),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
	).String()
}
