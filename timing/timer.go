package timing

import (
	"mcuhal-go/errcode"
	"mcuhal-go/x/mathx"
)

// The prescaler register is 16 bits wide and divides by PSC+1, so the usable
// division factors are 1..65536.
const timerMaxPrescaler = 65536

// TimerDivision is the result of a timer tick derivation.
//
// Prescaler is the division factor, not the raw register value; the PSC
// register takes Prescaler-1. Reload is the ARR register value: the counter
// wraps after Reload+1 kernel-clock ticks.
type TimerDivision struct {
	Prescaler  uint32
	Reload     uint32
	AchievedHz uint32 // rounded to the nearest hertz
	ErrPPM     int32
}

// TimerTick derives prescaler and auto-reload values for a counter of
// counterBits (16 or 32) clocked at timerClockHz so that it wraps at the
// target frequency. The smallest prescaler whose reload fits the counter is
// chosen, which keeps the reload as large as the hardware allows and so
// preserves the best resolution for compare channels.
func TimerTick(timerClockHz uint32, t Target, counterBits uint8) (TimerDivision, error) {
	if timerClockHz == 0 || t.Hz == 0 {
		return TimerDivision{}, errcode.InvalidParams
	}
	if counterBits != 16 && counterBits != 32 {
		return TimerDivision{}, errcode.InvalidParams
	}
	tol := t.TolerancePPM
	if tol == 0 {
		tol = DefaultTimerTolerancePPM
	}
	maxReload := uint64(1)<<counterBits - 1

	clk := uint64(timerClockHz)
	target := uint64(t.Hz)
	for psc := uint64(1); psc <= timerMaxPrescaler; psc++ {
		ticks := mathx.RoundDiv(clk, psc*target)
		if ticks == 0 {
			// Already over-divided; larger prescalers only get coarser.
			break
		}
		reload := ticks - 1
		if reload > maxReload {
			continue
		}
		ppm := relErrPPM(clk, psc*ticks, target)
		if !withinPPM(ppm, tol) {
			return TimerDivision{}, errcode.TimerFrequencyUnattainable
		}
		achieved := mathx.RoundDiv(clk, psc*ticks)
		return TimerDivision{
			Prescaler:  uint32(psc),
			Reload:     uint32(reload),
			AchievedHz: uint32(achieved),
			ErrPPM:     int32(ppm),
		}, nil
	}
	return TimerDivision{}, errcode.TimerFrequencyUnattainable
}
