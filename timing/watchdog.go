package timing

import (
	"mcuhal-go/errcode"
	"mcuhal-go/x/mathx"
)

// WatchdogRefHz is the low-speed internal reference clock feeding the
// independent watchdog. It runs regardless of the bus clock tree.
const WatchdogRefHz = 32_000

// The watchdog prescaler is enumerated; the PR register field is the index
// into this set. The reload counter is 12 bits.
var watchdogPrescalers = [...]uint32{4, 8, 16, 32, 64, 128, 256}

const watchdogMaxReload = 0xFFF

// WatchdogTiming is the result of a watchdog timeout derivation.
//
// Prescaler is the division factor; PRBits is the register encoding for it.
// Reload is the RLR register value (the counter counts Reload+1 steps).
type WatchdogTiming struct {
	Prescaler  uint32
	PRBits     uint8
	Reload     uint16
	AchievedUS uint64 // achieved timeout in microseconds
	ErrPPM     int32
}

// WatchdogTimeout derives prescaler and reload for a timeout window over the
// refHz reference clock. The smallest prescaler whose reload fits the 12-bit
// counter is chosen for the finest step size. Targets outside the achievable
// window fail with TimeoutOutOfRange.
func WatchdogTimeout(refHz uint32, t Timeout) (WatchdogTiming, error) {
	if refHz == 0 || t.Millis == 0 {
		return WatchdogTiming{}, errcode.InvalidParams
	}
	for i, psc := range watchdogPrescalers {
		ticks := mathx.RoundDiv(uint64(t.Millis)*uint64(refHz), 1000*uint64(psc))
		if ticks == 0 {
			// Shorter than one step of the smallest prescaler.
			return WatchdogTiming{}, errcode.TimeoutOutOfRange
		}
		reload := ticks - 1
		if reload > watchdogMaxReload {
			continue
		}
		ppm := relErrPPM(uint64(psc)*ticks*1000, uint64(refHz), uint64(t.Millis))
		achieved := mathx.RoundDiv(uint64(psc)*ticks*1_000_000, uint64(refHz))
		return WatchdogTiming{
			Prescaler:  psc,
			PRBits:     uint8(i),
			Reload:     uint16(reload),
			AchievedUS: achieved,
			ErrPPM:     int32(ppm),
		}, nil
	}
	// Longer than the largest prescaler can count.
	return WatchdogTiming{}, errcode.TimeoutOutOfRange
}
