package clocks

// AHBPrescaler is one of the hardware-supported AHB (HCLK) dividers.
// Values outside the enumeration are unrepresentable; Divisor and Bits panic
// on anything else, which indicates a corrupted value, not caller input.
type AHBPrescaler uint8

const (
	AHBDiv1 AHBPrescaler = iota
	AHBDiv2
	AHBDiv4
	AHBDiv8
	AHBDiv16
	AHBDiv64
	AHBDiv128
	AHBDiv256
	AHBDiv512
)

var ahbDivisors = [...]uint32{1, 2, 4, 8, 16, 64, 128, 256, 512}

// AHBPrescalers enumerates every supported AHB divider, ascending.
func AHBPrescalers() []AHBPrescaler {
	out := make([]AHBPrescaler, len(ahbDivisors))
	for i := range out {
		out[i] = AHBPrescaler(i)
	}
	return out
}

// Divisor returns the division factor.
func (p AHBPrescaler) Divisor() uint32 {
	if int(p) >= len(ahbDivisors) {
		panic("clocks: invalid AHB prescaler")
	}
	return ahbDivisors[p]
}

// Bits returns the HPRE register field encoding.
func (p AHBPrescaler) Bits() uint8 {
	if int(p) >= len(ahbDivisors) {
		panic("clocks: invalid AHB prescaler")
	}
	return 0b0111 + uint8(p)
}

// APBPrescaler is one of the hardware-supported APB (PCLK) dividers.
type APBPrescaler uint8

const (
	APBDiv1 APBPrescaler = iota
	APBDiv2
	APBDiv4
	APBDiv8
	APBDiv16
)

var apbDivisors = [...]uint32{1, 2, 4, 8, 16}

// APBPrescalers enumerates every supported APB divider, ascending.
func APBPrescalers() []APBPrescaler {
	out := make([]APBPrescaler, len(apbDivisors))
	for i := range out {
		out[i] = APBPrescaler(i)
	}
	return out
}

// Divisor returns the division factor.
func (p APBPrescaler) Divisor() uint32 {
	if int(p) >= len(apbDivisors) {
		panic("clocks: invalid APB prescaler")
	}
	return apbDivisors[p]
}

// Bits returns the PPRE register field encoding.
func (p APBPrescaler) Bits() uint8 {
	if int(p) >= len(apbDivisors) {
		panic("clocks: invalid APB prescaler")
	}
	return 0b011 + uint8(p)
}
