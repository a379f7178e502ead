// Command clockplan derives clock-tree and peripheral register values from a
// YAML board timing plan and prints them, so a configuration can be reviewed
// before it is committed to firmware constants.
//
//	clockplan -f board.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"periph.io/x/conn/v3/physic"

	"mcuhal-go/plan"
)

func hz(v uint32) physic.Frequency {
	return physic.Frequency(v) * physic.Hertz
}

func main() {
	log.SetFlags(0)
	file := flag.String("f", "board.yaml", "timing plan to derive")
	flag.Parse()

	b, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("clockplan: %v", err)
	}
	p, err := plan.Load(b)
	if err != nil {
		log.Fatalf("clockplan: %s: %v", *file, err)
	}
	rep, err := p.Derive()
	if err != nil {
		log.Fatalf("clockplan: %s: %v", *file, err)
	}

	clk := rep.Clocks
	fmt.Printf("sysclk     %v\n", hz(clk.Sysclk()))
	fmt.Printf("ahb        %v  (HPRE %#04b)\n", hz(clk.AHB()), clk.AHBPrescaler().Bits())
	fmt.Printf("apb        %v  (PPRE %#03b)\n", hz(clk.APB()), clk.APBPrescaler().Bits())
	fmt.Printf("apb timer  %v\n", hz(clk.APBTimer()))

	for _, s := range rep.Serial {
		fmt.Printf("%-10s BRR=%d  achieved %v  (%+d ppm)\n",
			s.ID, s.Divisor, hz(s.AchievedHz), s.ErrPPM)
	}
	for _, tm := range rep.Timers {
		fmt.Printf("%-10s PSC=%d ARR=%d  achieved %v  (%+d ppm)\n",
			tm.ID, tm.Prescaler-1, tm.Reload, hz(tm.AchievedHz), tm.ErrPPM)
	}
	if w := rep.Watchdog; w != nil {
		fmt.Printf("iwdg       PR=%d RLR=%d  window %d.%03d ms  (%+d ppm)\n",
			w.PRBits, w.Reload, w.AchievedUS/1000, w.AchievedUS%1000, w.ErrPPM)
	}
}
