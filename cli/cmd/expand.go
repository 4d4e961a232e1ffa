package cmd

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ardnew/sweep/log"
	"github.com/ardnew/sweep/tmpl"
)

// Expand expands one or more template files into generated output files.
type Expand struct {
	Templates []string `arg:"" help:"Template file(s) to expand" name:"template" type:"existingfile"`

	OutputDir string   `help:"Directory for generated files"                          short:"o" default:"." type:"existingdir"`
	Width     int      `help:"Zero-padded width of the file index"                    short:"w" default:"4"`
	Repeat    int      `help:"Independent full expansions per template"               short:"r" default:"1"`
	Set       []string `help:"Seed namespace binding, evaluated before expansion"     short:"s" placeholder:"name=value"`
	Bindings  string   `help:"YAML file of seed namespace bindings"                             optional:""  type:"existingfile"`
	Literal   []string `help:"Binding names exempt from fan-out"                      short:"l" placeholder:"name"`
	Table     bool     `help:"Write a per-file table log beside the generated files"  short:"t"`
	Seed      int64    `help:"Seed for random-sampling builtins (0 selects time)"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) error {
	ev := tmpl.NewEvaluator(e.Seed)

	// Seed bindings are resolved before any template is read: a malformed
	// entry aborts the whole run up front.
	seed := tmpl.Namespace{}

	if e.Bindings != "" {
		ns, err := tmpl.LoadBindings(e.Bindings)
		if err != nil {
			return err
		}

		maps.Copy(seed, ns)
	}

	ns, err := tmpl.ParseBindings(ev, e.Set)
	if err != nil {
		return err
	}

	maps.Copy(seed, ns)

	for _, path := range e.Templates {
		session := &tmpl.Session{
			Path:     path,
			Dir:      e.OutputDir,
			Width:    e.Width,
			Repeat:   e.Repeat,
			Literal:  e.Literal,
			Table:    e.Table,
			Bindings: seed,
			Eval:     ev,
		}

		records, err := session.Run(ctx)
		if err != nil {
			return err
		}

		for _, rec := range records {
			log.DebugContext(ctx, "wrote file",
				slog.String("path", rec.Path),
				slog.Int("bytes", len(rec.Text)),
			)
		}

		log.InfoContext(ctx, "expanded template",
			slog.String("template", path),
			slog.Int("files", len(records)),
		)
	}

	return nil
}
