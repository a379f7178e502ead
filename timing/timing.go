// Package timing maps frozen clock frequencies and requested real-world values
// to the discrete register fields the hardware supports. All functions are
// pure integer arithmetic: they return register-ready values together with the
// achieved value and its signed deviation, or a definite error. Nothing here
// touches hardware.
package timing

import "mcuhal-go/x/mathx"

// Tolerance defaults, applied when a Target leaves TolerancePPM zero. These
// are policy choices, not hardware limits; pass an explicit tolerance to
// override them.
const (
	DefaultBaudTolerancePPM  = 20_000 // 2%
	DefaultTimerTolerancePPM = 10_000 // 1%
)

// Target requests a real-world frequency together with the acceptable signed
// relative error, in parts per million.
type Target struct {
	Hz           uint32
	TolerancePPM uint32 // 0 selects the per-derivation default
}

// Timeout requests a watchdog window in milliseconds. Watchdog granularity is
// coarse and the achievable min/max window is the contract, so there is no
// tolerance field; callers inspect ErrPPM if they care.
type Timeout struct {
	Millis uint32
}

// relErrPPM returns the signed relative error, in ppm, of the exact rational
// num/den against target. Positive means the achieved value is high.
func relErrPPM(num, den, target uint64) int64 {
	ref := int64(den * target)
	diff := int64(num) - ref
	return mathx.RoundDivI64(diff*1_000_000, ref)
}

func withinPPM(ppm int64, tol uint32) bool {
	return mathx.Abs(ppm) <= int64(tol)
}
