package tmpl

import (
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// ParseBindings evaluates externally supplied name=value entries into a seed
// namespace. Each value is evaluated once by the evaluator against the
// built-ins plus the bindings parsed so far, before any template is read.
// Input that does not split into a non-empty name and value is fatal.
func ParseBindings(ev *Evaluator, pairs []string) (Namespace, error) {
	ns := make(Namespace, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")

		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if !ok || name == "" || value == "" {
			return nil, ErrBadBinding.
				With(slog.String("binding", pair))
		}

		result, err := ev.Eval(value, ns)
		if err != nil {
			return nil, WrapError(err).
				With(slog.String("binding", pair))
		}

		ns[name] = result
	}

	return ns, nil
}

// LoadBindings reads a YAML mapping file into a seed namespace.
// Values are taken as decoded, without expression evaluation.
func LoadBindings(path string) (Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrBindingsFile.Wrap(err).
			With(slog.String("path", path))
	}

	var ns Namespace

	err = yaml.Unmarshal(data, &ns)
	if err != nil {
		return nil, ErrBindingsFile.Wrap(err).
			With(slog.String("path", path))
	}

	return ns, nil
}
