// Package hal builds ready-to-use peripheral objects from a frozen clock
// tree. Each constructor takes the Clocks snapshot, a timing request and an
// exclusively-claimed register handle, runs the relevant derivation, writes
// the resulting fields and returns a peripheral that no longer needs Clocks.
// Construction fails with the derivation's error when no register combination
// meets the request; it never falls back to an inexact value silently.
package hal

import "mcuhal-go/errcode"

// Configuration-time flag polling is a bounded spin, never an open loop: a
// flag that does not settle within the ceiling turns into a timeout error.
const readySpinLimit = 100_000

func waitFlag(ready func() bool) error {
	for i := 0; i < readySpinLimit; i++ {
		if ready() {
			return nil
		}
	}
	return errcode.Timeout
}
