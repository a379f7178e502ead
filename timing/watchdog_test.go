package timing

import (
	"testing"

	"mcuhal-go/errcode"
)

func TestWatchdogTimeout2s(t *testing.T) {
	d, err := WatchdogTimeout(WatchdogRefHz, Timeout{Millis: 2000})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	// Smallest prescaler whose reload fits 12 bits: /16 with 4000 steps.
	if d.Prescaler != 16 || d.PRBits != 2 || d.Reload != 3999 {
		t.Fatalf("psc=%d pr=%d reload=%d, want 16/2/3999", d.Prescaler, d.PRBits, d.Reload)
	}
	if d.AchievedUS != 2_000_000 || d.ErrPPM != 0 {
		t.Fatalf("achieved %d us err %d ppm, want exact 2s", d.AchievedUS, d.ErrPPM)
	}
}

func TestWatchdogTimeoutShortest(t *testing.T) {
	d, err := WatchdogTimeout(WatchdogRefHz, Timeout{Millis: 1})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if d.Prescaler != 4 || d.Reload != 7 {
		t.Fatalf("psc=%d reload=%d, want 4/7", d.Prescaler, d.Reload)
	}
	if d.AchievedUS != 1000 || d.ErrPPM != 0 {
		t.Fatalf("achieved %d us err %d ppm", d.AchievedUS, d.ErrPPM)
	}
}

func TestWatchdogTimeoutLongest(t *testing.T) {
	d, err := WatchdogTimeout(WatchdogRefHz, Timeout{Millis: 32768})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if d.Prescaler != 256 || d.PRBits != 6 || d.Reload != 4095 {
		t.Fatalf("psc=%d pr=%d reload=%d, want 256/6/4095", d.Prescaler, d.PRBits, d.Reload)
	}
	if d.AchievedUS != 32_768_000 {
		t.Fatalf("achieved %d us", d.AchievedUS)
	}
}

func TestWatchdogTimeoutTooLong(t *testing.T) {
	_, err := WatchdogTimeout(WatchdogRefHz, Timeout{Millis: 40_000})
	if errcode.Of(err) != errcode.TimeoutOutOfRange {
		t.Fatalf("want timeout_out_of_range, got %v", err)
	}
}

// An odd window that needs a coarse prescaler rounds to the nearest step and
// reports the deviation.
func TestWatchdogTimeoutRounded(t *testing.T) {
	d, err := WatchdogTimeout(WatchdogRefHz, Timeout{Millis: 4097})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if d.Prescaler != 64 || d.Reload != 2048 {
		t.Fatalf("psc=%d reload=%d, want 64/2048", d.Prescaler, d.Reload)
	}
	if d.AchievedUS != 4_098_000 {
		t.Fatalf("achieved %d us, want 4098000", d.AchievedUS)
	}
	if d.ErrPPM != 244 {
		t.Fatalf("err = %d ppm, want 244", d.ErrPPM)
	}
}

func TestWatchdogTimeoutInvalidParams(t *testing.T) {
	if _, err := WatchdogTimeout(0, Timeout{Millis: 100}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("zero ref: got %v", err)
	}
	if _, err := WatchdogTimeout(WatchdogRefHz, Timeout{}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("zero timeout: got %v", err)
	}
}
