package clocks

import "mcuhal-go/errcode"

// Rated ceilings for the family. Derived bus frequencies above these are
// rejected at freeze time.
const (
	AHBMaxHz = 48_000_000
	APBMaxHz = 48_000_000
)

// Config accumulates the desired clock tree before it is frozen. The zero
// value selects divide-by-1 on both buses and no explicit system target.
//
// A Config is consumed by a successful Freeze and cannot be frozen again.
type Config struct {
	sysTarget uint32 // 0 = accept whatever the source provides
	ahb       AHBPrescaler
	apb       APBPrescaler
	consumed  bool
}

// NewConfig returns an empty clock configuration.
func NewConfig() *Config { return &Config{} }

// Sysclk requests an exact system frequency. There is no multiplier stage in
// scope, so the request must equal the source's nominal frequency or Freeze
// fails with UnsupportedFrequency.
func (c *Config) Sysclk(hz uint32) *Config {
	c.sysTarget = hz
	return c
}

// AHB selects the AHB (HCLK) prescaler.
func (c *Config) AHB(p AHBPrescaler) *Config {
	c.ahb = p
	return c
}

// APB selects the APB (PCLK) prescaler.
func (c *Config) APB(p APBPrescaler) *Config {
	c.apb = p
	return c
}

// Freeze validates the configuration against src and produces the immutable
// Clocks snapshot. Validation order: AHB ceiling, APB ceiling, system target.
// A prescaler whose division does not come out exact is rejected with
// PrescalerOutOfRange; frozen frequencies are exact integers, never rounded.
func (c *Config) Freeze(src Source) (*Clocks, error) {
	if c.consumed {
		return nil, errcode.ConfigConsumed
	}
	srcHz := src.NominalHz()
	if srcHz == 0 {
		return nil, errcode.InvalidParams
	}

	sysHz := srcHz // no PLL: sysclk is the source itself

	ahbDiv := c.ahb.Divisor()
	if sysHz%ahbDiv != 0 {
		return nil, errcode.PrescalerOutOfRange
	}
	ahbHz := sysHz / ahbDiv
	if ahbHz > AHBMaxHz {
		return nil, errcode.PrescalerOutOfRange
	}

	apbDiv := c.apb.Divisor()
	if ahbHz%apbDiv != 0 {
		return nil, errcode.PrescalerOutOfRange
	}
	apbHz := ahbHz / apbDiv
	if apbHz > APBMaxHz {
		return nil, errcode.PrescalerOutOfRange
	}

	if c.sysTarget != 0 && c.sysTarget != sysHz {
		return nil, errcode.UnsupportedFrequency
	}

	// Timer kernel clock runs at twice PCLK whenever the APB bus is divided.
	apbTimerHz := apbHz
	if apbDiv != 1 {
		apbTimerHz = apbHz * 2
	}

	c.consumed = true
	return &Clocks{
		sys:      sysHz,
		ahb:      ahbHz,
		apb:      apbHz,
		apbTimer: apbTimerHz,
		ahbPsc:   c.ahb,
		apbPsc:   c.apb,
	}, nil
}
