package tmpl

import (
	"log/slog"
	"maps"
	"math/rand/v2"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator evaluates snippet expression text against a namespace.
//
// Each evaluation compiles the expression with expr-lang against the merged
// environment of built-ins and current namespace bindings, then runs the
// compiled program. Namespace bindings shadow built-in names. Programs are
// not cached across evaluations: the environment's value types can differ
// between fan-out branches, and compilation is checked against them.
type Evaluator struct {
	builtins map[string]any
}

// NewEvaluator creates an Evaluator whose random-sampling built-ins draw
// from a generator seeded with seed. A zero seed selects a time-based seed,
// making draws unique per run; any other value makes runs reproducible.
func NewEvaluator(seed int64) *Evaluator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewPCG(uint64(seed), rngStream))

	return &Evaluator{builtins: makeEnv(rng)}
}

// Env returns the merged evaluation environment: built-ins overlaid with the
// namespace bindings, which take precedence.
func (ev *Evaluator) Env(ns Namespace) map[string]any {
	env := maps.Clone(ev.builtins)
	maps.Copy(env, ns)

	return env
}

// Builtins returns the names defined in the built-in environment.
// The REPL uses this for completion.
func (ev *Evaluator) Builtins() []string {
	keys := make([]string, 0, len(ev.builtins))
	for k := range ev.builtins {
		keys = append(keys, k)
	}

	return keys
}

// Eval evaluates expression text against the namespace and returns the
// resulting value. A zero-length expression is invalid. Failures are
// reported with the offending expression text attached.
func (ev *Evaluator) Eval(text string, ns Namespace) (any, error) {
	if text == "" {
		return nil, ErrEmptySnippet
	}

	env := ev.Env(ns)

	program, err := expr.Compile(text, expr.Env(env))
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("snippet", text))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("snippet", text))
	}

	return result, nil
}
