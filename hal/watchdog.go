package hal

import (
	"mcuhal-go/regio"
	"mcuhal-go/timing"
)

// Watchdog is the started independent watchdog. Once constructed it cannot be
// stopped; the owner must Feed it within the window or the device resets.
type Watchdog struct {
	h   regio.Watchdog
	wdg timing.WatchdogTiming
}

// NewWatchdog derives and programs the timeout window, then starts the
// watchdog. The reference clock is the fixed low-speed oscillator, so unlike
// the other configurators this one needs no Clocks snapshot.
//
// PR/RLR writes propagate into the watchdog clock domain asynchronously; each
// write waits for the previous one with a bounded spin.
func NewWatchdog(target timing.Timeout, h regio.Watchdog) (*Watchdog, error) {
	d, err := timing.WatchdogTimeout(timing.WatchdogRefHz, target)
	if err != nil {
		return nil, err
	}
	h.Start()
	if err := waitFlag(func() bool { return !h.Updating() }); err != nil {
		return nil, err
	}
	h.SetPrescaler(d.PRBits)
	if err := waitFlag(func() bool { return !h.Updating() }); err != nil {
		return nil, err
	}
	h.SetReload(d.Reload)
	if err := waitFlag(func() bool { return !h.Updating() }); err != nil {
		return nil, err
	}
	h.Feed()
	return &Watchdog{h: h, wdg: d}, nil
}

// Feed resets the countdown so at least one full window passes before the
// next reset opportunity.
func (w *Watchdog) Feed() { w.h.Feed() }

// Timing reports the derived prescaler, reload and achieved window.
func (w *Watchdog) Timing() timing.WatchdogTiming { return w.wdg }
