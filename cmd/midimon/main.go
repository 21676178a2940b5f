// command midimon checks that midi is working, printing every message along
// with what it would do to the synth's controls.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/pfcm/crazysynth/control"
	"github.com/pfcm/crazysynth/midi"
)

var (
	portFlag = flag.String("port", "0", "MIDI input port, index or name")
	ccFlag   = flag.String("cc", "70,71,72,73,74,75", "controller numbers for a-f")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("midimon: ")
	flag.Parse()

	ccs, err := control.ParseCCMap(*ccFlag)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, "Ports:")
	for i, p := range midi.Ports() {
		fmt.Fprintf(os.Stderr, "\t%d: %q\n", i, p)
	}

	ctx := interruptContext()
	d := midi.Listen(ctx, midi.PortListener(*portFlag))
	for m := range d.Subscribe() {
		if p, ok := ccs.Lookup(m.Note); ok && m.CV1Type == midi.CV1ControlChange {
			fmt.Printf("%v\t%v = %+.3f\n", m, p, control.CCValue(m.Velocity))
			continue
		}
		fmt.Println(m)
	}
	if err := d.Wait(); err != nil {
		log.Fatal(err)
	}
	if n := d.Dropped(); n > 0 {
		log.Printf("dropped %d messages", n)
	}
	log.Println("all done")
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
