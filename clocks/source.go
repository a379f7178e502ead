// Package clocks derives the bus clock tree for the MCU family from its
// internal oscillator. A Config is built up, validated and frozen exactly once;
// the resulting Clocks snapshot is immutable and safe to share with any number
// of readers.
package clocks

// HSITrim selects one of the factory trim points of the internal oscillator.
// The hardware offers no frequencies in between.
type HSITrim uint8

const (
	Trim4 HSITrim = iota
	Trim8         // power-on default
	Trim16
	Trim22M12
	Trim24
)

// Hz returns the nominal frequency of a trim point.
func (t HSITrim) Hz() uint32 {
	switch t {
	case Trim4:
		return 4_000_000
	case Trim8:
		return 8_000_000
	case Trim16:
		return 16_000_000
	case Trim22M12:
		return 22_120_000
	case Trim24:
		return 24_000_000
	}
	panic("clocks: invalid HSI trim")
}

// Source identifies the system clock source. The family exposes exactly one
// kind in scope: the internal oscillator at an enumerated trim point. A zero
// Source is invalid; obtain one through HSI.
type Source struct {
	hz uint32
}

// HSI returns the internal oscillator as a clock source.
func HSI(trim HSITrim) Source {
	return Source{hz: trim.Hz()}
}

// NominalHz returns the source's nominal output frequency.
func (s Source) NominalHz() uint32 { return s.hz }
