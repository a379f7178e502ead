// Package memregs is an in-memory register-access collaborator. It keeps the
// claim-once discipline of the hardware providers while recording every field
// write, which makes it the backend for host-side tests of the configurators.
package memregs

import (
	"sync"

	"mcuhal-go/errcode"
	"mcuhal-go/regio"
)

// Ensure the registry satisfies the contract at compile time.
var _ regio.Registry = (*Registry)(nil)

// Plan lists the peripheral instances the simulated chip exposes.
type Plan struct {
	UARTs  []regio.PeriphID
	Timers map[regio.PeriphID]uint8 // instance -> counter bits
	Pins   int                      // pins 0..Pins-1
}

// DefaultPlan mirrors the family's usual complement: two USARTs, two 16-bit
// timers, one 32-bit timer, 32 pins.
func DefaultPlan() Plan {
	return Plan{
		UARTs: []regio.PeriphID{"usart1", "usart2"},
		Timers: map[regio.PeriphID]uint8{
			"tim1": 16,
			"tim2": 32,
			"tim3": 16,
		},
		Pins: 32,
	}
}

// Registry is the in-memory implementation of regio.Registry.
type Registry struct {
	mu sync.Mutex

	uarts      map[regio.PeriphID]*UART
	uartOwners map[regio.PeriphID]string

	timers      map[regio.PeriphID]*Timer
	timerOwners map[regio.PeriphID]string

	wdg      *Watchdog
	wdgOwner string

	pins      map[int]*Pin
	pinOwners map[int]string
	pinMax    int
}

// New builds a registry from the plan.
func New(plan Plan) *Registry {
	r := &Registry{
		uarts:       make(map[regio.PeriphID]*UART),
		uartOwners:  make(map[regio.PeriphID]string),
		timers:      make(map[regio.PeriphID]*Timer),
		timerOwners: make(map[regio.PeriphID]string),
		pins:        make(map[int]*Pin),
		pinOwners:   make(map[int]string),
		pinMax:      plan.Pins,
		wdg:         &Watchdog{},
	}
	for _, id := range plan.UARTs {
		r.uarts[id] = &UART{}
	}
	for id, bits := range plan.Timers {
		r.timers[id] = &Timer{bits: bits}
	}
	for n := 0; n < plan.Pins; n++ {
		r.pins[n] = &Pin{n: n}
	}
	return r
}

func (r *Registry) ClaimUART(owner string, id regio.PeriphID) (regio.UART, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.uarts[id]
	if u == nil {
		return nil, errcode.UnknownPeriph
	}
	if prev, taken := r.uartOwners[id]; taken && prev != owner {
		return nil, errcode.PeriphInUse
	}
	r.uartOwners[id] = owner
	return u, nil
}

func (r *Registry) ReleaseUART(owner string, id regio.PeriphID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.uartOwners[id]; ok && prev == owner {
		delete(r.uartOwners, id)
	}
}

func (r *Registry) ClaimTimer(owner string, id regio.PeriphID) (regio.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tm := r.timers[id]
	if tm == nil {
		return nil, errcode.UnknownPeriph
	}
	if prev, taken := r.timerOwners[id]; taken && prev != owner {
		return nil, errcode.PeriphInUse
	}
	r.timerOwners[id] = owner
	return tm, nil
}

func (r *Registry) ReleaseTimer(owner string, id regio.PeriphID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.timerOwners[id]; ok && prev == owner {
		delete(r.timerOwners, id)
	}
}

func (r *Registry) ClaimWatchdog(owner string) (regio.Watchdog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.wdgOwner != "" && r.wdgOwner != owner {
		return nil, errcode.PeriphInUse
	}
	r.wdgOwner = owner
	return r.wdg, nil
}

func (r *Registry) ClaimPin(owner string, pin int) (regio.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pins[pin]
	if p == nil {
		return nil, errcode.UnknownPin
	}
	if prev, taken := r.pinOwners[pin]; taken && prev != owner {
		return nil, errcode.PinInUse
	}
	r.pinOwners[pin] = owner
	return p, nil
}

func (r *Registry) ReleasePin(owner string, pin int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.pinOwners[pin]; ok && prev == owner {
		// Back to input, matching what hardware providers do on release.
		if p := r.pins[pin]; p != nil {
			p.mode = pinInput
		}
		delete(r.pinOwners, pin)
	}
}
