package main

import (
	"runtime"
)

// resolvePoolSize determines the worker count.
// Priority: explicit flag or env > GOMAXPROCS (adjusted by automaxprocs).
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// One worker per usable CPU
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
