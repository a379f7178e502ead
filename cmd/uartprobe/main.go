// Command uartprobe derives a USART baud divisor for a given kernel clock and
// reports what rate the hardware will actually run at. With -port it opens a
// host serial adapter at the achieved rate and writes a short probe string, a
// quick way to check a link against the rounded-divisor rate rather than the
// nominal one.
package main

import (
	"flag"
	"fmt"
	"log"

	"go.bug.st/serial"
	"periph.io/x/conn/v3/physic"

	"mcuhal-go/timing"
)

func main() {
	log.SetFlags(0)
	clk := 24 * physic.MegaHertz
	flag.Var(&clk, "clock", "USART kernel clock")
	baud := flag.Uint("baud", 115200, "requested baud rate")
	tol := flag.Uint("tol", timing.DefaultBaudTolerancePPM, "acceptable error in ppm")
	port := flag.String("port", "", "host serial port to open at the achieved rate")
	list := flag.Bool("list", false, "list host serial ports and exit")
	flag.Parse()

	if *list {
		ports, err := serial.GetPortsList()
		if err != nil {
			log.Fatalf("uartprobe: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	clockHz := uint32(clk / physic.Hertz)
	d, err := timing.SerialBaud(clockHz, timing.Target{
		Hz:           uint32(*baud),
		TolerancePPM: uint32(*tol),
	})
	if err != nil {
		log.Fatalf("uartprobe: %d baud from %v: %v", *baud, clk, err)
	}
	fmt.Printf("BRR=%d  achieved %d baud  (%+d ppm)\n", d.Divisor, d.AchievedHz, d.ErrPPM)

	if *port == "" {
		return
	}
	p, err := serial.Open(*port, &serial.Mode{BaudRate: int(d.AchievedHz)})
	if err != nil {
		log.Fatalf("uartprobe: %s: %v", *port, err)
	}
	defer p.Close()
	if _, err := p.Write([]byte("uartprobe\r\n")); err != nil {
		log.Fatalf("uartprobe: write %s: %v", *port, err)
	}
	fmt.Printf("wrote probe to %s at %d baud\n", *port, d.AchievedHz)
}
