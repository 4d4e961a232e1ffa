package tmpl

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
)

// Session runs repeated full expansions of one template file.
//
// The naming pattern is derived once from the template path, the namespace
// index variable is initialized to zero once, and each repeat reopens the
// template stream fresh from an empty accumulated-output state. Bindings
// made by snippets are unwound by the engine between repeats, so only the
// seed bindings and the advancing index carry across.
type Session struct {
	// Path is the template file to expand.
	Path string

	// Dir is the directory receiving generated files. Empty means the
	// current directory.
	Dir string

	// Width is the zero-padded width of the file index. Negative values are
	// treated as zero (no padding).
	Width int

	// Repeat is the number of independent full expansions to run over the
	// template. Values below one mean a single expansion.
	Repeat int

	// Literal lists binding names exempt from fan-out.
	Literal []string

	// Table enables the per-file table log artifact, written alongside the
	// generated files as <stem>.log.
	Table bool

	// Seed seeds the evaluator's random primitives when Eval is nil.
	// Zero selects a time-based seed.
	Seed int64

	// Bindings seeds the namespace before the template is read.
	Bindings Namespace

	// Eval is the expression evaluator to use. When nil, the session
	// creates one seeded with Seed. Sharing one evaluator across sessions
	// keeps a single random stream for the whole run.
	Eval *Evaluator
}

// Run expands the template Repeat times and returns every file record
// produced, in generation order. Any scanner, evaluation, or write failure
// aborts the run immediately; files already written remain on disk.
func (s *Session) Run(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, ErrReadTemplate.Wrap(err).
			With(slog.String("template", s.Path))
	}

	ev := s.Eval
	if ev == nil {
		ev = NewEvaluator(s.Seed)
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	ns := NewNamespace()
	maps.Copy(ns, s.Bindings)
	ns[IndexKey] = 0

	pattern := DerivePattern(s.Path, dir, s.Width)

	var table *Table
	if s.Table {
		table = NewTable(filepath.Join(dir, pattern.Stem+".log"))

		defer table.Close()
	}

	emitter := NewEmitter(pattern, ns, table)

	emit := func(text string) error {
		_, err := emitter.Emit(text)

		return err
	}

	repeat := max(1, s.Repeat)

	for range repeat {
		if err := ctx.Err(); err != nil {
			return emitter.Records(), WrapError(err).
				With(slog.String("template", s.Path))
		}

		x := NewExpander(ev, ns, emit, s.Literal...)

		err := x.Expand(NewSource(string(data)))
		if err != nil {
			return emitter.Records(), WrapError(err).
				With(slog.String("template", s.Path))
		}
	}

	return emitter.Records(), nil
}
