package hal

import (
	"testing"

	"mcuhal-go/clocks"
	"mcuhal-go/errcode"
	"mcuhal-go/regio/memregs"
	"mcuhal-go/timing"
)

// Full startup sequence: freeze the tree once, then bring up every peripheral
// class from one registry. Mirrors what a firmware main does before enabling
// interrupts.
func TestStartupSequence(t *testing.T) {
	clk, err := clocks.NewConfig().
		Sysclk(24_000_000).
		AHB(clocks.AHBDiv1).
		APB(clocks.APBDiv1).
		Freeze(clocks.HSI(clocks.Trim24))
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}

	reg := memregs.New(memregs.DefaultPlan())

	uh, err := reg.ClaimUART("console", "usart1")
	if err != nil {
		t.Fatalf("claim usart1: %v", err)
	}
	console, err := NewSerial(clk, SerialConfig{Baud: timing.Target{Hz: 115200}}, uh)
	if err != nil {
		t.Fatalf("console: %v", err)
	}

	th, err := reg.ClaimTimer("tick", "tim1")
	if err != nil {
		t.Fatalf("claim tim1: %v", err)
	}
	tick, err := NewTimer(clk, timing.Target{Hz: 1000}, th)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	tick.Start()

	wh, err := reg.ClaimWatchdog("guard")
	if err != nil {
		t.Fatalf("claim iwdg: %v", err)
	}
	guard, err := NewWatchdog(timing.Timeout{Millis: 2000}, wh)
	if err != nil {
		t.Fatalf("guard: %v", err)
	}

	ph, err := reg.ClaimPin("led", 4)
	if err != nil {
		t.Fatalf("claim pin: %v", err)
	}
	led, err := NewPin(ph).IntoOutput(false)
	if err != nil {
		t.Fatalf("led: %v", err)
	}

	// The peripherals own their timing now; the snapshot is only consulted
	// for reporting.
	if console.Baud().Divisor != 13 {
		t.Fatalf("console divisor %d", console.Baud().Divisor)
	}
	if d := tick.Division(); d.Prescaler*(d.Reload+1) != clk.APBTimer()/1000 {
		t.Fatalf("tick division %+v", d)
	}
	if guard.Timing().AchievedUS != 2_000_000 {
		t.Fatalf("guard window %+v", guard.Timing())
	}
	led.High()
	guard.Feed()

	// The same block cannot be claimed twice.
	if _, err := reg.ClaimUART("rogue", "usart1"); errcode.Of(err) != errcode.PeriphInUse {
		t.Fatalf("double claim: want periph_in_use, got %v", err)
	}
	if _, err := reg.ClaimTimer("rogue", "tim9"); errcode.Of(err) != errcode.UnknownPeriph {
		t.Fatalf("unknown timer: got %v", err)
	}
}
