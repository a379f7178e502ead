package hal

import (
	"testing"

	"mcuhal-go/clocks"
	"mcuhal-go/errcode"
	"mcuhal-go/regio"
	"mcuhal-go/regio/memregs"
	"mcuhal-go/timing"
)

func claimTimer(t *testing.T, reg *memregs.Registry, id regio.PeriphID) (regio.Timer, *memregs.Timer) {
	t.Helper()
	h, err := reg.ClaimTimer("test", id)
	if err != nil {
		t.Fatalf("claim %s: %v", id, err)
	}
	return h, h.(*memregs.Timer)
}

func TestNewTimer1kHz(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, mt := claimTimer(t, reg, "tim1")

	tm, err := NewTimer(clk24(t), timing.Target{Hz: 1000}, h)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if mt.PSC != 0 || mt.ARR != 23999 {
		t.Fatalf("PSC=%d ARR=%d, want 0/23999", mt.PSC, mt.ARR)
	}
	if tm.Running() {
		t.Fatalf("timer started before Start")
	}
	tm.Start()
	if !mt.Running() {
		t.Fatalf("Start did not run the counter")
	}
	tm.Stop()
	if mt.Running() {
		t.Fatalf("Stop did not halt the counter")
	}
}

// The timer kernel clock doubles when the APB bus is divided; the derivation
// must use it, not PCLK.
func TestNewTimerUsesKernelClock(t *testing.T) {
	clk, err := clocks.NewConfig().APB(clocks.APBDiv4).Freeze(clocks.HSI(clocks.Trim24))
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if clk.APB() != 6_000_000 || clk.APBTimer() != 12_000_000 {
		t.Fatalf("fixture tree: %+v", clk)
	}

	reg := memregs.New(memregs.DefaultPlan())
	h, mt := claimTimer(t, reg, "tim3")
	if _, err := NewTimer(clk, timing.Target{Hz: 1000}, h); err != nil {
		t.Fatalf("configure: %v", err)
	}
	// 12 MHz / 1 kHz = 12000 ticks.
	if mt.PSC != 0 || mt.ARR != 11999 {
		t.Fatalf("PSC=%d ARR=%d, want 0/11999", mt.PSC, mt.ARR)
	}
}

func TestNewTimer32BitCounter(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, mt := claimTimer(t, reg, "tim2")

	_, err := NewTimer(clk24(t), timing.Target{Hz: 1}, h)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if mt.PSC != 0 || mt.ARR != 23_999_999 {
		t.Fatalf("PSC=%d ARR=%d, want 0/23999999", mt.PSC, mt.ARR)
	}
}

func TestNewTimerUnattainable(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, mt := claimTimer(t, reg, "tim1")

	_, err := NewTimer(clk24(t), timing.Target{Hz: 100_000_000}, h)
	if errcode.Of(err) != errcode.TimerFrequencyUnattainable {
		t.Fatalf("want timer_frequency_unattainable, got %v", err)
	}
	if mt.ARR != 0 || mt.Running() {
		t.Fatalf("registers touched on failure: %+v", mt)
	}
}
