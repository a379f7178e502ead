package hal

import (
	"testing"

	"mcuhal-go/errcode"
	"mcuhal-go/regio/memregs"
	"mcuhal-go/timing"
)

func TestNewWatchdog2s(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, err := reg.ClaimWatchdog("test")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	mw := h.(*memregs.Watchdog)

	w, err := NewWatchdog(timing.Timeout{Millis: 2000}, h)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if !mw.Started || mw.PR != 2 || mw.RLR != 3999 {
		t.Fatalf("register state: %+v", mw)
	}
	if mw.Feeds != 1 {
		t.Fatalf("feeds = %d, want 1 (initial)", mw.Feeds)
	}
	w.Feed()
	if mw.Feeds != 2 {
		t.Fatalf("feeds = %d after Feed", mw.Feeds)
	}
	if d := w.Timing(); d.Prescaler != 16 || d.AchievedUS != 2_000_000 || d.ErrPPM != 0 {
		t.Fatalf("derived: %+v", d)
	}
}

func TestNewWatchdogOutOfRangeLeavesRegistersAlone(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, _ := reg.ClaimWatchdog("test")
	mw := h.(*memregs.Watchdog)

	_, err := NewWatchdog(timing.Timeout{Millis: 60_000}, h)
	if errcode.Of(err) != errcode.TimeoutOutOfRange {
		t.Fatalf("want timeout_out_of_range, got %v", err)
	}
	if mw.Started || mw.Feeds != 0 {
		t.Fatalf("watchdog touched on failure: %+v", mw)
	}
}

// A register update that never settles must become a timeout, not a hang.
func TestNewWatchdogBoundedSpin(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	h, _ := reg.ClaimWatchdog("test")
	mw := h.(*memregs.Watchdog)
	mw.BusyPolls = readySpinLimit * 4

	_, err := NewWatchdog(timing.Timeout{Millis: 100}, h)
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("want timeout, got %v", err)
	}
}

func TestWatchdogClaimOnce(t *testing.T) {
	reg := memregs.New(memregs.DefaultPlan())
	if _, err := reg.ClaimWatchdog("a"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := reg.ClaimWatchdog("b"); errcode.Of(err) != errcode.PeriphInUse {
		t.Fatalf("second claim: want periph_in_use, got %v", err)
	}
}
