// Package profile provides optional runtime profiling for the sweep
// command.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op with
// zero runtime overhead. When built with the tag, the --pprof-mode flag
// selects one of the supported modes (cpu, heap, allocs, block, mutex,
// goroutine, thread, clock, mem, trace) and profile data is written to the
// directory given by --pprof-dir for analysis with "go tool pprof".
package profile
