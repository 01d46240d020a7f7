//go:build !pprof

package profile

// Modes returns no modes when profiling is compiled out.
func Modes() []string { return nil }

func start(Profiler) Control { return noop{} }
