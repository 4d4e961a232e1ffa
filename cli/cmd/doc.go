// Package cmd implements the sweep subcommands.
//
// [Expand] is the default command: it expands template files into families
// of generated output files. [Repl] provides an interactive prompt for
// evaluating snippet expressions while developing templates.
package cmd
