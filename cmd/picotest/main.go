//go:build rp2040

// On-target smoke test for the serial and pin paths: derives a baud divisor
// from a frozen clock tree, programs uart0 through the rp2 registry, emits a
// probe banner, then echoes received bytes while blinking the board LED.
package main

import (
	"time"

	"machine"

	"mcuhal-go/clocks"
	"mcuhal-go/hal"
	"mcuhal-go/regio/rp2"
	"mcuhal-go/timing"
)

const ledPin = 25

func main() {
	println("[picotest] boot ...")
	time.Sleep(1500 * time.Millisecond)

	clk, err := clocks.NewConfig().Freeze(clocks.HSI(clocks.Trim24))
	if err != nil {
		println("[picotest] FAIL: freeze:", err.Error())
		return
	}
	println("[picotest] sysclk", clk.Sysclk(), "apb", clk.APB())

	reg := rp2.NewRegistry(rp2.Plan{
		// Divisors are converted back to rates against the clock they
		// were derived from.
		ClockHz: clk.APB(),
		Ports: []rp2.PortPlan{
			{ID: "uart0", TX: machine.Pin(0), RX: machine.Pin(1)},
		},
		PinMin: 0,
		PinMax: 29,
	})

	u, err := reg.ClaimUART("picotest", "uart0")
	if err != nil {
		println("[picotest] FAIL: claim uart0:", err.Error())
		return
	}
	ser, err := hal.NewSerial(clk, hal.SerialConfig{
		Baud: timing.Target{Hz: 115200},
	}, u)
	if err != nil {
		println("[picotest] FAIL: serial:", err.Error())
		return
	}
	if _, err := ser.Write([]byte("picotest ready\r\n")); err != nil {
		println("[picotest] FAIL: write:", err.Error())
		return
	}

	ph, err := reg.ClaimPin("picotest", ledPin)
	if err != nil {
		println("[picotest] FAIL: claim led:", err.Error())
		return
	}
	led, err := hal.NewPin(ph).IntoOutput(false)
	if err != nil {
		println("[picotest] FAIL: led output:", err.Error())
		return
	}

	println("[picotest] echoing at", ser.Baud().AchievedHz, "baud")
	last := time.Now()
	for {
		if b, err := ser.ReadByte(); err == nil {
			_ = ser.WriteByte(b)
		}
		if time.Since(last) >= 500*time.Millisecond {
			led.Toggle()
			last = time.Now()
		}
	}
}
