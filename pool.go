package twiki2moin

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent page conversions; beyond it the run is
	// bound by disk rather than CPU.
	MaxWorkers = 32
)

// ResolveWorkers determines the number of page workers.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}
