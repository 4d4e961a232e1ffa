// Package cli wires the sweep command-line interface.
//
// It declares the top-level [CLI] structure parsed by kong, including the
// logging and profiling option groups shared by every command, and
// dispatches to the commands implemented in [github.com/ardnew/sweep/cli/cmd].
package cli
