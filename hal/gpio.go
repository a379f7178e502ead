package hal

import (
	"mcuhal-go/errcode"
	"mcuhal-go/regio"
)

// Pin is an unconfigured claimed pin. It is consumed by its Into* transition:
// the first call configures the hardware and returns the typed view, any
// further transition fails. This is the ownership-consuming builder step the
// type system cannot enforce at compile time in Go, checked at run time
// instead.
type Pin struct {
	h     regio.Pin
	moved bool
}

// NewPin wraps a freshly claimed pin handle.
func NewPin(h regio.Pin) *Pin { return &Pin{h: h} }

// IntoOutput consumes the pin and configures it as a push-pull output.
func (p *Pin) IntoOutput(initial bool) (*OutputPin, error) {
	if p.moved {
		return nil, errcode.InvalidParams
	}
	if err := p.h.ConfigureOutput(initial); err != nil {
		return nil, err
	}
	p.moved = true
	return &OutputPin{h: p.h}, nil
}

// IntoInput consumes the pin and configures it as an input with the given
// bias.
func (p *Pin) IntoInput(pull regio.Pull) (*InputPin, error) {
	if p.moved {
		return nil, errcode.InvalidParams
	}
	if err := p.h.ConfigureInput(pull); err != nil {
		return nil, err
	}
	p.moved = true
	return &InputPin{h: p.h}, nil
}

// OutputPin drives a level.
type OutputPin struct {
	h regio.Pin
}

func (p *OutputPin) Number() int { return p.h.Number() }
func (p *OutputPin) Set(b bool) { p.h.Set(b) }
func (p *OutputPin) High() { p.h.Set(true) }
func (p *OutputPin) Low() { p.h.Set(false) }
func (p *OutputPin) Toggle() { p.h.Toggle() }

// InputPin reads a level.
type InputPin struct {
	h regio.Pin
}

func (p *InputPin) Number() int { return p.h.Number() }
func (p *InputPin) Get() bool   { return p.h.Get() }
