// Package plan loads a declarative board timing plan and derives every
// register value in one pass: the clock tree first, then each dependent
// peripheral. It is the host-side counterpart of the firmware startup
// sequence, used to check a configuration before it is burned into source
// constants.
package plan

import (
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"mcuhal-go/clocks"
	"mcuhal-go/errcode"
	"mcuhal-go/timing"
)

// Frequency is integer hertz that unmarshals from either a bare number or a
// unit string such as "24MHz".
type Frequency uint32

func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	var n uint32
	if err := value.Decode(&n); err == nil {
		*f = Frequency(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	var pf physic.Frequency
	if err := pf.Set(s); err != nil {
		return err
	}
	*f = Frequency(pf / physic.Hertz)
	return nil
}

// Plan is the YAML schema.
type Plan struct {
	Source   Frequency     `yaml:"source"` // HSI trim point, e.g. "24MHz"
	Sysclk   Frequency     `yaml:"sysclk,omitempty"`
	AHBDiv   uint32        `yaml:"ahb_div,omitempty"` // 0 = 1
	APBDiv   uint32        `yaml:"apb_div,omitempty"` // 0 = 1
	Serial   []SerialPlan  `yaml:"serial,omitempty"`
	Timers   []TimerPlan   `yaml:"timers,omitempty"`
	Watchdog *WatchdogPlan `yaml:"watchdog,omitempty"`
}

type SerialPlan struct {
	ID           string    `yaml:"id"`
	Baud         Frequency `yaml:"baud"`
	TolerancePPM uint32    `yaml:"tolerance_ppm,omitempty"`
}

type TimerPlan struct {
	ID           string    `yaml:"id"`
	Hz           Frequency `yaml:"hz"`
	Bits         uint8     `yaml:"bits,omitempty"` // 0 = 16
	TolerancePPM uint32    `yaml:"tolerance_ppm,omitempty"`
}

type WatchdogPlan struct {
	TimeoutMS uint32 `yaml:"timeout_ms"`
}

// Load parses a YAML plan.
func Load(b []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "plan.Load", Err: err}
	}
	if p.Source == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "plan.Load", Msg: "missing source"}
	}
	return &p, nil
}

// Report is the fully derived plan.
type Report struct {
	Clocks   *clocks.Clocks
	Serial   []SerialReport
	Timers   []TimerReport
	Watchdog *timing.WatchdogTiming
}

type SerialReport struct {
	ID string
	timing.BaudDivisor
}

type TimerReport struct {
	ID string
	timing.TimerDivision
}

func trimForHz(hz uint32) (clocks.HSITrim, error) {
	trims := []clocks.HSITrim{
		clocks.Trim4, clocks.Trim8, clocks.Trim16, clocks.Trim22M12, clocks.Trim24,
	}
	for _, t := range trims {
		if t.Hz() == hz {
			return t, nil
		}
	}
	return 0, errcode.UnsupportedFrequency
}

func ahbForDiv(div uint32) (clocks.AHBPrescaler, error) {
	for _, p := range clocks.AHBPrescalers() {
		if p.Divisor() == div {
			return p, nil
		}
	}
	return 0, errcode.PrescalerOutOfRange
}

func apbForDiv(div uint32) (clocks.APBPrescaler, error) {
	for _, p := range clocks.APBPrescalers() {
		if p.Divisor() == div {
			return p, nil
		}
	}
	return 0, errcode.PrescalerOutOfRange
}

// Derive freezes the clock tree described by the plan and runs every
// peripheral derivation against it. The first failure aborts; a plan either
// derives completely or not at all.
func (p *Plan) Derive() (*Report, error) {
	trim, err := trimForHz(uint32(p.Source))
	if err != nil {
		return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: "source"}
	}

	cfg := clocks.NewConfig()
	if p.Sysclk != 0 {
		cfg.Sysclk(uint32(p.Sysclk))
	}
	if p.AHBDiv != 0 {
		ahb, err := ahbForDiv(p.AHBDiv)
		if err != nil {
			return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: "ahb_div"}
		}
		cfg.AHB(ahb)
	}
	if p.APBDiv != 0 {
		apb, err := apbForDiv(p.APBDiv)
		if err != nil {
			return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: "apb_div"}
		}
		cfg.APB(apb)
	}

	clk, err := cfg.Freeze(clocks.HSI(trim))
	if err != nil {
		return nil, err
	}

	rep := &Report{Clocks: clk}
	for _, s := range p.Serial {
		d, err := timing.SerialBaud(clk.APB(), timing.Target{
			Hz:           uint32(s.Baud),
			TolerancePPM: s.TolerancePPM,
		})
		if err != nil {
			return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: s.ID}
		}
		rep.Serial = append(rep.Serial, SerialReport{ID: s.ID, BaudDivisor: d})
	}
	for _, tm := range p.Timers {
		bits := tm.Bits
		if bits == 0 {
			bits = 16
		}
		d, err := timing.TimerTick(clk.APBTimer(), timing.Target{
			Hz:           uint32(tm.Hz),
			TolerancePPM: tm.TolerancePPM,
		}, bits)
		if err != nil {
			return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: tm.ID}
		}
		rep.Timers = append(rep.Timers, TimerReport{ID: tm.ID, TimerDivision: d})
	}
	if p.Watchdog != nil {
		d, err := timing.WatchdogTimeout(timing.WatchdogRefHz, timing.Timeout{Millis: p.Watchdog.TimeoutMS})
		if err != nil {
			return nil, &errcode.E{C: errcode.Of(err), Op: "plan.Derive", Msg: "watchdog"}
		}
		rep.Watchdog = &d
	}
	return rep, nil
}
