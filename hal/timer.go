package hal

import (
	"mcuhal-go/clocks"
	"mcuhal-go/regio"
	"mcuhal-go/timing"
)

// Timer is a configured periodic timer. The prescaler and reload are fixed at
// construction; reconfiguring a running timer is deliberately not offered.
type Timer struct {
	h   regio.Timer
	div timing.TimerDivision
}

// NewTimer configures a claimed timer to wrap at the target frequency, fed by
// the timer kernel clock of the frozen tree. The timer is left stopped.
func NewTimer(clk *clocks.Clocks, target timing.Target, h regio.Timer) (*Timer, error) {
	d, err := timing.TimerTick(clk.APBTimer(), target, h.CounterBits())
	if err != nil {
		return nil, err
	}
	h.Stop()
	h.SetPrescaler(d.Prescaler - 1) // PSC register divides by value+1
	h.SetReload(d.Reload)
	return &Timer{h: h, div: d}, nil
}

// Division reports the derived prescaler, reload and deviation.
func (t *Timer) Division() timing.TimerDivision { return t.div }

func (t *Timer) Start() { t.h.Start() }
func (t *Timer) Stop() { t.h.Stop() }

// Running reports the counter's run state.
func (t *Timer) Running() bool { return t.h.Running() }
