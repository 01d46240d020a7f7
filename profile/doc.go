// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling support is compiled in only with the "pprof" build tag. In the
// default build every operation is a no-op, so callers can start and stop
// the profiler unconditionally:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Supported modes in a tagged build are listed by [Modes]. Profile data is
// written to Path (one file per mode) and analyzed with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
