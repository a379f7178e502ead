package hal

import (
	"io"

	"tinygo.org/x/drivers"

	"mcuhal-go/clocks"
	"mcuhal-go/errcode"
	"mcuhal-go/regio"
	"mcuhal-go/timing"
)

// SerialConfig describes the requested line settings. Zero framing fields
// select 8N1.
type SerialConfig struct {
	Baud     timing.Target
	DataBits uint8
	StopBits uint8
	Parity   regio.Parity
}

func (c SerialConfig) withDefaults() SerialConfig {
	if c.DataBits == 0 {
		c.DataBits = 8
	}
	if c.StopBits == 0 {
		c.StopBits = 1
	}
	return c
}

// Serial is a configured serial port. It holds the derived divisor as plain
// data; the clock tree is not referenced after construction.
type Serial struct {
	h    regio.UART
	baud timing.BaudDivisor
}

// Conformance with the ecosystem UART contract and io.Writer.
var (
	_ drivers.UART = (*Serial)(nil)
	_ io.Writer    = (*Serial)(nil)
)

// NewSerial configures a claimed USART for both directions.
func NewSerial(clk *clocks.Clocks, cfg SerialConfig, h regio.UART) (*Serial, error) {
	return newSerial(clk, cfg, h, true, true)
}

// NewSerialTx configures a transmit-only port.
func NewSerialTx(clk *clocks.Clocks, cfg SerialConfig, h regio.UART) (*Serial, error) {
	return newSerial(clk, cfg, h, true, false)
}

// NewSerialRx configures a receive-only port.
func NewSerialRx(clk *clocks.Clocks, cfg SerialConfig, h regio.UART) (*Serial, error) {
	return newSerial(clk, cfg, h, false, true)
}

func newSerial(clk *clocks.Clocks, cfg SerialConfig, h regio.UART, tx, rx bool) (*Serial, error) {
	cfg = cfg.withDefaults()
	// Derive first; the registers stay untouched unless the rate is
	// attainable.
	d, err := timing.SerialBaud(clk.APB(), cfg.Baud)
	if err != nil {
		return nil, err
	}
	h.ResetControl()
	h.SetBaudDivisor(d.Divisor)
	if err := h.SetFormat(cfg.DataBits, cfg.StopBits, cfg.Parity); err != nil {
		return nil, err
	}
	h.Enable(tx, rx)
	return &Serial{h: h, baud: d}, nil
}

// Baud reports the derived divisor, achieved rate and deviation.
func (s *Serial) Baud() timing.BaudDivisor { return s.baud }

// WriteByte sends one byte, spinning (bounded) for transmit space.
func (s *Serial) WriteByte(b byte) error {
	if err := waitFlag(s.h.TxEmpty); err != nil {
		return err
	}
	s.h.WriteData(b)
	return nil
}

// Write sends the whole slice.
func (s *Serial) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := s.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Flush blocks (bounded) until every queued byte has been shifted out.
func (s *Serial) Flush() error {
	return waitFlag(s.h.TxComplete)
}

// ReadByte pops one received byte. With nothing pending it returns
// errcode.NoData; line conditions surface as errcode.Framing, Noise, Overrun
// or Parity.
func (s *Serial) ReadByte() (byte, error) {
	if !s.h.RxReady() {
		return 0, errcode.NoData
	}
	return s.h.ReadData()
}

// Buffered reports whether a byte is pending. The data register holds at most
// one.
func (s *Serial) Buffered() int {
	if s.h.RxReady() {
		return 1
	}
	return 0
}
