package memregs

import (
	"mcuhal-go/errcode"
	"mcuhal-go/regio"
)

var (
	_ regio.UART     = (*UART)(nil)
	_ regio.Timer    = (*Timer)(nil)
	_ regio.Watchdog = (*Watchdog)(nil)
	_ regio.Pin      = (*Pin)(nil)
)

// UART records field writes and shuttles bytes through in-memory queues.
// Tests preload RX with FeedRx and inspect TX with TxBytes.
type UART struct {
	BRR      uint32
	DataBits uint8
	StopBits uint8
	Parity   regio.Parity

	ControlReset bool
	TxOn, RxOn   bool
	Enabled      bool

	tx    []byte
	rx    []byte
	rxErr error
}

func (u *UART) SetBaudDivisor(brr uint32) { u.BRR = brr }

func (u *UART) ResetControl() { u.ControlReset = true }

func (u *UART) SetFormat(databits, stopbits uint8, parity regio.Parity) error {
	if databits < 7 || databits > 9 || stopbits < 1 || stopbits > 2 {
		return errcode.InvalidParams
	}
	u.DataBits, u.StopBits, u.Parity = databits, stopbits, parity
	return nil
}

func (u *UART) Enable(tx, rx bool) {
	u.TxOn, u.RxOn = tx, rx
	u.Enabled = true
}

func (u *UART) TxEmpty() bool    { return true }
func (u *UART) TxComplete() bool { return true }
func (u *UART) RxReady() bool    { return len(u.rx) > 0 || u.rxErr != nil }

func (u *UART) WriteData(b byte) {
	if u.TxOn {
		u.tx = append(u.tx, b)
	}
}

func (u *UART) ReadData() (byte, error) {
	if u.rxErr != nil {
		err := u.rxErr
		u.rxErr = nil
		return 0, err
	}
	if len(u.rx) == 0 {
		return 0, errcode.NoData
	}
	b := u.rx[0]
	u.rx = u.rx[1:]
	return b, nil
}

// FeedRx queues bytes for the receiver side.
func (u *UART) FeedRx(p []byte) { u.rx = append(u.rx, p...) }

// InjectRxError makes the next ReadData report a line condition.
func (u *UART) InjectRxError(c errcode.Code) { u.rxErr = c }

// TxBytes returns everything written so far.
func (u *UART) TxBytes() []byte { return u.tx }

// Timer records PSC/ARR writes and the run state.
type Timer struct {
	bits    uint8
	PSC     uint32
	ARR     uint32
	running bool
}

func (t *Timer) CounterBits() uint8      { return t.bits }
func (t *Timer) SetPrescaler(psc uint32) { t.PSC = psc }
func (t *Timer) SetReload(arr uint32) { t.ARR = arr }
func (t *Timer) Start() { t.running = true }
func (t *Timer) Stop() { t.running = false }
func (t *Timer) Running() bool           { return t.running }

// Watchdog records the start/feed discipline. BusyPolls simulates the
// cross-domain register update delay: Updating reports true that many times
// before settling.
type Watchdog struct {
	Started   bool
	PR        uint8
	RLR       uint16
	Feeds     int
	BusyPolls int
}

func (w *Watchdog) Start() { w.Started = true }
func (w *Watchdog) Feed() { w.Feeds++ }
func (w *Watchdog) SetPrescaler(pr uint8) { w.PR = pr }
func (w *Watchdog) SetReload(rl uint16) { w.RLR = rl }

func (w *Watchdog) Updating() bool {
	if w.BusyPolls > 0 {
		w.BusyPolls--
		return true
	}
	return false
}

type pinMode uint8

const (
	pinInput pinMode = iota
	pinOutput
)

// Pin is a recorded GPIO pin.
type Pin struct {
	n     int
	mode  pinMode
	pull  regio.Pull
	level bool
}

func (p *Pin) Number() int { return p.n }

func (p *Pin) ConfigureInput(pull regio.Pull) error {
	p.mode, p.pull = pinInput, pull
	return nil
}

func (p *Pin) ConfigureOutput(initial bool) error {
	p.mode, p.level = pinOutput, initial
	return nil
}

func (p *Pin) Set(b bool) { p.level = b }
func (p *Pin) Get() bool   { return p.level }
func (p *Pin) Toggle() { p.level = !p.level }
