// command crazysynth plays the synth live, controlled from the keyboard and
// optionally a MIDI controller.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"

	"github.com/pfcm/crazysynth"
	"github.com/pfcm/crazysynth/audio"
	"github.com/pfcm/crazysynth/control"
	"github.com/pfcm/crazysynth/internal/cli"
	"github.com/pfcm/crazysynth/midi"
	"github.com/pfcm/crazysynth/param"
)

var (
	backendFlag  = flag.String("backend", "malgo", "audio backend, one of "+strings.Join(audio.Backends(), ", "))
	channelsFlag = flag.Int("channels", 2, "output channels, each gets the same signal")
	midiFlag     = flag.String("midi", "", "MIDI input port (index or name) to take control changes from")
	ccFlag       = flag.String("cc", "70,71,72,73,74,75", "controller numbers for a-f")
	keysFlag     = flag.Bool("keys", true, "read key presses from the terminal")
	listFlag     = flag.Bool("list", false, "list MIDI input ports and exit")
	profileFlag  = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
)

const usage = `keys: q/a w/s e/d r/f t/g y/h raise/lower a-f (shift for bigger steps), 0 resets, x quits`

func main() {
	log.SetFlags(0)
	log.SetPrefix("crazysynth: ")
	ef := cli.RegisterEngineFlags(flag.CommandLine)
	flag.Parse()

	if *listFlag {
		for i, p := range midi.Ports() {
			fmt.Printf("%d\t%s\n", i, p)
		}
		return
	}
	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}
	if err := run(ef); err != nil {
		log.Fatal(err)
	}
}

func run(ef *cli.EngineFlags) error {
	opts, err := ef.Options()
	if err != nil {
		return err
	}
	mapping, err := ef.Mapping()
	if err != nil {
		return err
	}
	ccs, err := control.ParseCCMap(*ccFlag)
	if err != nil {
		return err
	}

	eng, ctl := crazysynth.New(ef.Params(), opts...)
	panel := control.NewPanel(ctl, ef.Params())
	fmt.Fprintf(os.Stderr, "%v, %v\n", eng, mapping)

	ctx, cancel := context.WithCancel(interruptContext())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return audio.Play(ctx, *backendFlag, eng, *channelsFlag)
	})

	if *midiFlag != "" {
		d := midi.Listen(ctx, midi.PortListener(*midiFlag))
		msgs := d.Subscribe(ccs.Filter()...)
		g.Go(func() error {
			return control.FollowCC(ctx, panel, ccs, msgs)
		})
		g.Go(d.Wait)
	}

	restore := func() error { return nil }
	if *keysFlag {
		r, err := control.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not reading keys: %v\n", err)
		} else {
			restore = r
			fmt.Fprintf(os.Stderr, "%s\r\n", usage)
			// Reading stdin can't be interrupted, so this stays out of
			// the group and just ends everything when it returns.
			go func() {
				kb := &control.Keyboard{Panel: panel}
				if err := kb.Run(ctx, os.Stdin); err != nil && !errors.Is(err, control.ErrQuit) && !errors.Is(err, context.Canceled) {
					fmt.Fprintf(os.Stderr, "\r\nReading keys: %v\r\n", err)
				}
				cancel()
			}()
		}
	}

	g.Go(func() error {
		return printStatus(ctx, panel, mapping)
	})

	err = g.Wait()
	if rerr := restore(); rerr != nil && err == nil {
		err = fmt.Errorf("restoring terminal: %w", rerr)
	}
	fmt.Fprintln(os.Stderr)
	return err
}

// printStatus rewrites the status line whenever the panel changes, and retries
// any update the engine was too busy to take.
func printStatus(ctx context.Context, panel *control.Panel, mapping param.Mapping) error {
	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()
	last := ^uint64(0)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			panel.Flush()
			if n := panel.Changes(); n != last {
				last = n
				fmt.Fprintf(os.Stderr, "\r\x1b[K%s", cli.Status(panel.Params(), mapping))
			}
		}
	}
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
