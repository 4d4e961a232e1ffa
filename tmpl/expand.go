package tmpl

// EmitFunc receives the completed output text of one combination.
// The output materializer supplies this to turn text into numbered files.
type EmitFunc func(text string) error

// Expander performs the depth-first, left-to-right enumeration of every
// combination implied by the multi-valued snippets in a template.
//
// Each multi-valued snippet is a fork point: the remainder of the template
// is replayed once per candidate value by reseeking the shared stream, in
// sequence order, so enumeration order matches appearance order and the
// earliest snippet varies slowest. Exactly one emit occurs per complete
// combination. Execution is strictly sequential; forks share one namespace
// and one stream cursor, both restored before control returns to the caller
// frame.
type Expander struct {
	scanner Scanner
	eval    *Evaluator
	ns      Namespace
	literal map[string]struct{}
	emit    EmitFunc
}

// NewExpander creates an Expander over the shared namespace. Binding names
// in literal are exempt from fan-out: their evaluated value is substituted
// or bound whole even when it is a sequence.
func NewExpander(
	eval *Evaluator,
	ns Namespace,
	emit EmitFunc,
	literal ...string,
) *Expander {
	keep := make(map[string]struct{}, len(literal))
	for _, name := range literal {
		keep[name] = struct{}{}
	}

	return &Expander{
		scanner: NewScanner(),
		eval:    eval,
		ns:      ns,
		literal: keep,
		emit:    emit,
	}
}

// Expand runs one full expansion of the stream from an empty accumulated
// output, emitting one output per complete combination.
func (x *Expander) Expand(src *Source) error {
	return x.expand(src, "")
}

// expand processes the stream from the current cursor, carrying the output
// text accumulated so far. It is the recursive core: scalar snippets extend
// the current frame, multi-valued snippets fork once per non-last value and
// continue in place with the last.
func (x *Expander) expand(src *Source, acc string) error {
	// Bindings made by this frame are undone on return so they never leak
	// sideways into a sibling fork.
	var undo []func()

	defer func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	for {
		literal, block, eof, err := x.scanner.Scan(src)
		if err != nil {
			return err
		}

		acc += literal

		if eof {
			// Base case: the accumulated text is one complete combination.
			return x.emit(acc)
		}

		snip := ParseSnippet(x.scanner.Body(block))

		value, err := x.eval.Eval(snip.Expr, x.ns)
		if err != nil {
			return err
		}

		seq, fan := AsSequence(value)
		if _, keep := x.literal[snip.Name]; keep && snip.Name != "" {
			fan = false
		}

		if !fan {
			if snip.Name != "" {
				undo = append(undo, x.ns.Bind(snip.Name, value))
			} else {
				acc += FormatValue(value)
			}

			continue
		}

		if len(seq) == 0 {
			// No candidate values, so no combinations on this branch.
			return nil
		}

		// Fork once per value except the last, replaying the remainder of
		// the stream from just after this block each time.
		mark := src.Pos()

		for _, v := range seq[:len(seq)-1] {
			branch := acc

			var restore func()

			if snip.Name != "" {
				restore = x.ns.Bind(snip.Name, v)
			} else {
				branch += FormatValue(v)
			}

			err := x.expand(src, branch)

			if restore != nil {
				restore()
			}

			if err != nil {
				return err
			}

			src.Seek(mark)
		}

		// The held-back last value continues in this frame, without an
		// extra stack frame: combinations from earlier values are complete
		// before any from the last value begin.
		last := seq[len(seq)-1]

		if snip.Name != "" {
			undo = append(undo, x.ns.Bind(snip.Name, last))
		} else {
			acc += FormatValue(last)
		}
	}
}
