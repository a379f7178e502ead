package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Clock configuration.
	UnsupportedFrequency Code = "unsupported_frequency"
	PrescalerOutOfRange  Code = "prescaler_out_of_range"
	ConfigConsumed       Code = "config_consumed"

	// Timing derivation.
	BaudRateUnattainable       Code = "baud_rate_unattainable"
	TimerFrequencyUnattainable Code = "timer_frequency_unattainable"
	TimeoutOutOfRange          Code = "timeout_out_of_range"

	// Register-access collaborator.
	UnknownPeriph Code = "unknown_periph"
	PeriphInUse   Code = "periph_in_use"
	UnknownPin    Code = "unknown_pin"
	PinInUse      Code = "pin_in_use"
	Timeout       Code = "timeout"
	NoData        Code = "no_data"

	// Serial line conditions.
	Framing Code = "framing"
	Noise   Code = "noise"
	Overrun Code = "overrun"
	Parity  Code = "parity"

	InvalidParams Code = "invalid_params"
	Unsupported   Code = "unsupported"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
