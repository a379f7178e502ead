package plan

import (
	"testing"

	"mcuhal-go/errcode"
)

const fullPlan = `
source: 24MHz
sysclk: 24000000
ahb_div: 1
apb_div: 1
serial:
  - id: usart1
    baud: 115200
timers:
  - id: tim1
    hz: 1000
    bits: 16
watchdog:
  timeout_ms: 2000
`

func TestLoadAndDeriveFullPlan(t *testing.T) {
	p, err := Load([]byte(fullPlan))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Source != 24_000_000 || p.Sysclk != 24_000_000 {
		t.Fatalf("frequency parse: %+v", p)
	}

	rep, err := p.Derive()
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if rep.Clocks.Sysclk() != 24_000_000 || rep.Clocks.APBTimer() != 24_000_000 {
		t.Fatalf("tree: %+v", rep.Clocks)
	}
	if len(rep.Serial) != 1 || rep.Serial[0].Divisor != 13 {
		t.Fatalf("serial: %+v", rep.Serial)
	}
	if len(rep.Timers) != 1 || rep.Timers[0].Prescaler*(rep.Timers[0].Reload+1) != 24000 {
		t.Fatalf("timer: %+v", rep.Timers)
	}
	if rep.Watchdog == nil || rep.Watchdog.Reload != 3999 {
		t.Fatalf("watchdog: %+v", rep.Watchdog)
	}
}

func TestLoadUnitStrings(t *testing.T) {
	p, err := Load([]byte("source: 22.12MHz\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Source != 22_120_000 {
		t.Fatalf("source = %d", p.Source)
	}
}

func TestLoadMissingSource(t *testing.T) {
	if _, err := Load([]byte("serial: []\n")); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("want invalid_params, got %v", err)
	}
}

func TestDeriveRejectsUnknownTrim(t *testing.T) {
	p, err := Load([]byte("source: 12MHz\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Derive(); errcode.Of(err) != errcode.UnsupportedFrequency {
		t.Fatalf("want unsupported_frequency, got %v", err)
	}
}

func TestDeriveRejectsBadPrescaler(t *testing.T) {
	p, err := Load([]byte("source: 24MHz\nahb_div: 3\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Derive(); errcode.Of(err) != errcode.PrescalerOutOfRange {
		t.Fatalf("want prescaler_out_of_range, got %v", err)
	}
}

func TestDeriveAbortsOnUnattainableSerial(t *testing.T) {
	p, err := Load([]byte("source: 24MHz\nserial: [{id: usart1, baud: 4000000}]\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Derive(); errcode.Of(err) != errcode.BaudRateUnattainable {
		t.Fatalf("want baud_rate_unattainable, got %v", err)
	}
}
