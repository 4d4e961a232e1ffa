// Package tmpl implements the sweep expansion engine.
//
// A template is ordinary text containing embedded [[ expression ]] snippets.
// Expanding a template evaluates each snippet in appearance order against a
// shared namespace: scalar results substitute inline (or bind a name when
// the snippet has the form "name = expression"), while sequence results fork
// the expansion, replaying the remainder of the template once per candidate
// value. One output file is produced per complete combination, so a template
// with independent snippets yielding n1, n2, ... values generates their
// product in files, numbered in enumeration order.
//
// The package is organized around five pieces: [Source], a re-seekable
// in-memory character stream; [Scanner], the doubled-delimiter block
// scanner; [Evaluator], which compiles and runs snippet expressions with
// expr-lang against the built-in environment; [Expander], the recursive
// combinatorial engine; and [Emitter]/[Session], which materialize numbered
// output files and sequence repeats over a template.
//
// Execution is single-threaded and depth-first: fan-out branches
// share one mutable namespace and one stream cursor, each restored before
// control returns to the caller frame.
package tmpl
