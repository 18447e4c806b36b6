package main

import (
	"os"
	"runtime/pprof"

	"github.com/neurlang/punchedcards/errors"
)

// startCPUProfile collects a CPU profile into path, usable as default.pgo.
func startCPUProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating profile %s", path)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "starting cpu profile")
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
