//go:build rp2040

// Package rp2 provides a Registry backed by the RP2040 machine layer and the
// uartx serial driver. Only UARTs and pins exist on this port: the timer and
// watchdog blocks have no register collaborator here and claiming them fails
// with errcode.Unsupported.
package rp2

import (
	"context"
	"sync"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"mcuhal-go/errcode"
	"mcuhal-go/regio"
)

var _ regio.Registry = (*Registry)(nil)

// PortPlan wires one UART instance to its pins.
type PortPlan struct {
	ID regio.PeriphID // "uart0" or "uart1"
	TX machine.Pin
	RX machine.Pin
}

// Plan describes the board resources the registry hands out.
type Plan struct {
	// ClockHz is the UART kernel clock, used to turn a baud divisor back
	// into the rate the driver programs.
	ClockHz uint32
	Ports   []PortPlan
	PinMin  int
	PinMax  int
}

// DefaultPlan wires uart0 on the usual Pico pins with the stock 125 MHz
// peripheral clock and the full GPIO range.
func DefaultPlan() Plan {
	return Plan{
		ClockHz: 125_000_000,
		Ports: []PortPlan{
			{ID: "uart0", TX: machine.Pin(0), RX: machine.Pin(1)},
		},
		PinMin: 0,
		PinMax: 29,
	}
}

type Registry struct {
	mu sync.Mutex

	plan Plan

	uarts      map[regio.PeriphID]*rp2UART
	uartOwners map[regio.PeriphID]string

	pins      map[int]*rp2Pin
	pinOwners map[int]string
}

func NewRegistry(plan Plan) *Registry {
	r := &Registry{
		plan:       plan,
		uarts:      make(map[regio.PeriphID]*rp2UART),
		uartOwners: make(map[regio.PeriphID]string),
		pins:       make(map[int]*rp2Pin),
		pinOwners:  make(map[int]string),
	}
	for _, p := range plan.Ports {
		var hw *uartx.UART
		switch p.ID {
		case "uart0":
			hw = uartx.UART0
		case "uart1":
			hw = uartx.UART1
		default:
			continue
		}
		r.uarts[p.ID] = &rp2UART{u: hw, clockHz: plan.ClockHz, tx: p.TX, rx: p.RX}
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
	if cur, taken := r.uartOwners[id]; taken && cur != owner {
		return nil, errcode.PeriphInUse
	}
	r.uartOwners[id] = owner
	return u, nil
}

func (r *Registry) ReleaseUART(owner string, id regio.PeriphID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.uartOwners[id]; ok && cur == owner {
		delete(r.uartOwners, id)
	}
}

func (r *Registry) ClaimTimer(owner string, id regio.PeriphID) (regio.Timer, error) {
	return nil, errcode.Unsupported
}

func (r *Registry) ReleaseTimer(owner string, id regio.PeriphID) {}

func (r *Registry) ClaimWatchdog(owner string) (regio.Watchdog, error) {
	return nil, errcode.Unsupported
}

func (r *Registry) ClaimPin(owner string, pin int) (regio.Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pin < r.plan.PinMin || pin > r.plan.PinMax {
		return nil, errcode.UnknownPin
	}
	if _, taken := r.pinOwners[pin]; taken {
		return nil, errcode.PinInUse
	}
	h := r.pins[pin]
	if h == nil {
		h = &rp2Pin{p: machine.Pin(pin), n: pin}
		r.pins[pin] = h
	}
	r.pinOwners[pin] = owner
	return h, nil
}

func (r *Registry) ReleasePin(owner string, pin int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pinOwners[pin]; ok && cur == owner {
		machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInput})
		delete(r.pinOwners, pin)
	}
}

// ---- rp2UART: adapts uartx to regio.UART ----

var _ regio.UART = (*rp2UART)(nil)

// rxPollTimeout bounds the non-blocking receive probe. The driver has no
// "data ready" query, so RxReady performs a short bounded read and parks
// the byte until ReadData collects it.
const rxPollTimeout = time.Millisecond

type rp2UART struct {
	u       *uartx.UART
	clockHz uint32
	tx, rx  machine.Pin

	pending    byte
	hasPending bool
}

func (h *rp2UART) SetBaudDivisor(brr uint32) {
	if brr == 0 {
		return
	}
	h.u.SetBaudRate(h.clockHz / (16 * brr))
}

func (h *rp2UART) ResetControl() {
	// Configure re-inits the peripheral from a known state.
	_ = h.u.Configure(uartx.UARTConfig{TX: h.tx, RX: h.rx})
	h.hasPending = false
}

func (h *rp2UART) SetFormat(databits, stopbits uint8, parity regio.Parity) error {
	var par uartx.UARTParity
	switch parity {
	case regio.ParityEven:
		par = uartx.ParityEven
	case regio.ParityOdd:
		par = uartx.ParityOdd
	default:
		par = uartx.ParityNone
	}
	return h.u.SetFormat(databits, stopbits, par)
}

func (h *rp2UART) Enable(tx, rx bool) {
	// The driver enables both directions in Configure; there is no
	// per-direction gate to program here.
}

// Write blocks in the driver until the byte is queued, so the transmit
// data register is always ready from this layer's point of view.
func (h *rp2UART) TxEmpty() bool    { return true }
func (h *rp2UART) TxComplete() bool { return true }

func (h *rp2UART) RxReady() bool {
	if h.hasPending {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), rxPollTimeout)
	defer cancel()
	var buf [1]byte
	n, err := h.u.RecvSomeContext(ctx, buf[:])
	if err != nil || n == 0 {
		return false
	}
	h.pending = buf[0]
	h.hasPending = true
	return true
}

func (h *rp2UART) WriteData(b byte) {
	_, _ = h.u.Write([]byte{b})
}

func (h *rp2UART) ReadData() (byte, error) {
	if !h.RxReady() {
		return 0, errcode.NoData
	}
	h.hasPending = false
	return h.pending, nil
}

// ---- rp2Pin: adapts machine.Pin to regio.Pin ----

var _ regio.Pin = (*rp2Pin)(nil)

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull regio.Pull) error {
	var mode machine.PinMode
	switch pull {
	case regio.PullUp:
		mode = machine.PinInputPullup
	case regio.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(b bool) { r.p.Set(b) }
func (r *rp2Pin) Get() bool  { return r.p.Get() }
func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}
