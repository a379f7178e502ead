package timing

import (
	"mcuhal-go/errcode"
	"mcuhal-go/x/mathx"
)

// The USART samples at 16x the bit rate; BRR is a 16-bit field.
const (
	baudOversample = 16
	baudMaxDivisor = 0xFFFF
)

// BaudDivisor is the result of a serial baud derivation.
type BaudDivisor struct {
	Divisor    uint32 // BRR register value
	AchievedHz uint32 // clock/(16*divisor), rounded to the nearest hertz
	ErrPPM     int32  // signed deviation of the exact achieved rate from the target
}

// SerialBaud derives the 16x-oversampling baud divisor for a serial port fed
// by clockHz. It fails with BaudRateUnattainable when no divisor fits the
// register or the nearest divisor misses the target by more than the
// tolerance.
func SerialBaud(clockHz uint32, t Target) (BaudDivisor, error) {
	if clockHz == 0 || t.Hz == 0 {
		return BaudDivisor{}, errcode.InvalidParams
	}
	tol := t.TolerancePPM
	if tol == 0 {
		tol = DefaultBaudTolerancePPM
	}

	div := mathx.RoundDiv(uint64(clockHz), baudOversample*uint64(t.Hz))
	if div == 0 || div > baudMaxDivisor {
		return BaudDivisor{}, errcode.BaudRateUnattainable
	}

	ppm := relErrPPM(uint64(clockHz), baudOversample*div, uint64(t.Hz))
	if !withinPPM(ppm, tol) {
		return BaudDivisor{}, errcode.BaudRateUnattainable
	}

	achieved := mathx.RoundDiv(uint64(clockHz), baudOversample*div)
	return BaudDivisor{
		Divisor:    uint32(div),
		AchievedHz: uint32(achieved),
		ErrPPM:     int32(ppm),
	}, nil
}
