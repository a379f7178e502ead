// Package regio is the contract with the register-access collaborator: the
// layer that owns bit-field reads and writes for each peripheral block. The
// HAL derives integer field values and pushes them through these handles; it
// never computes register layouts itself.
//
// A Registry hands out each peripheral exactly once. Claiming an already
// claimed block fails with errcode.PeriphInUse (errcode.PinInUse for pins), so
// two configurators can never race on the same hardware.
package regio

// PeriphID names a peripheral instance, e.g. "usart1", "tim3", "iwdg".
type PeriphID string

// Parity is the serial parity mode.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// Pull is the input pin bias.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// UART is a claimed serial register block.
type UART interface {
	// SetBaudDivisor writes the BRR divisor field.
	SetBaudDivisor(brr uint32)
	// ResetControl clears the advanced-feature control registers so the
	// peripheral starts from a plain 8N1-capable state.
	ResetControl()
	SetFormat(databits, stopbits uint8, parity Parity) error
	// Enable switches the transmitter and/or receiver on and sets the
	// peripheral enable bit.
	Enable(tx, rx bool)

	TxEmpty() bool    // transmit data register accepts a byte
	TxComplete() bool // all queued bytes fully shifted out
	RxReady() bool    // receive data register holds a byte

	WriteData(b byte)
	// ReadData pops the receive data register. Detected line conditions are
	// returned as errcode.Framing, Noise, Overrun or Parity.
	ReadData() (byte, error)
}

// Timer is a claimed timer register block.
type Timer interface {
	// CounterBits reports the counter width of this instance: 16 or 32.
	CounterBits() uint8
	// SetPrescaler writes the raw PSC register value (division factor - 1).
	SetPrescaler(psc uint32)
	// SetReload writes the ARR register value.
	SetReload(arr uint32)
	Start()
	Stop()
	Running() bool
}

// Watchdog is the claimed independent watchdog block. Hardware cannot stop it
// once started, so there is no release path.
type Watchdog interface {
	// Start performs the key sequence that starts the counter and unlocks
	// the PR/RLR registers for writing.
	Start()
	Feed()
	// SetPrescaler writes the PR register field (an index into the
	// enumerated prescaler set, not a division factor).
	SetPrescaler(pr uint8)
	SetReload(rl uint16)
	// Updating reports whether a previous PR/RLR write is still being
	// transferred to the watchdog clock domain.
	Updating() bool
}

// Pin is a claimed GPIO pin.
type Pin interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(bool)
	Get() bool
	Toggle()
}

// Registry hands out peripheral register blocks, each at most once.
type Registry interface {
	ClaimUART(owner string, id PeriphID) (UART, error)
	ReleaseUART(owner string, id PeriphID)

	ClaimTimer(owner string, id PeriphID) (Timer, error)
	ReleaseTimer(owner string, id PeriphID)

	ClaimWatchdog(owner string) (Watchdog, error)

	ClaimPin(owner string, pin int) (Pin, error)
	ReleasePin(owner string, pin int)
}
