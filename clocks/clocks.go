package clocks

// Clocks holds the frozen clock tree. The existence of this value indicates
// that the clock configuration can no longer be changed; all fields are exact
// integer hertz fixed at freeze time, so it may be read concurrently from
// anywhere, including interrupt handlers.
type Clocks struct {
	sys      uint32
	ahb      uint32
	apb      uint32
	apbTimer uint32
	ahbPsc   AHBPrescaler
	apbPsc   APBPrescaler
}

// Sysclk returns the system (core) frequency.
func (c *Clocks) Sysclk() uint32 { return c.sys }

// AHB returns the AHB bus (HCLK) frequency.
func (c *Clocks) AHB() uint32 { return c.ahb }

// APB returns the APB bus (PCLK) frequency.
func (c *Clocks) APB() uint32 { return c.apb }

// APBTimer returns the timer kernel clock frequency: equal to PCLK when the
// APB prescaler is 1, twice PCLK otherwise.
func (c *Clocks) APBTimer() uint32 { return c.apbTimer }

// AHBPrescaler returns the prescaler the AHB frequency was derived with.
func (c *Clocks) AHBPrescaler() AHBPrescaler { return c.ahbPsc }

// APBPrescaler returns the prescaler the APB frequency was derived with.
func (c *Clocks) APBPrescaler() APBPrescaler { return c.apbPsc }
