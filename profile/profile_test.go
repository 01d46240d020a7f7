package profile

import "testing"

func TestStartWithoutMode(t *testing.T) {
	var p Profiler

	// Must be safe regardless of build tags.
	p.Start().Stop()
}

func TestStartUnknownMode(t *testing.T) {
	p := Profiler{Mode: "bogus", Path: t.TempDir()}
	p.Start().Stop()
}
