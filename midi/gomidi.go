package midi

import (
	"context"
	"fmt"
	"strconv"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Ports lists the names of the available input ports. A driver must have been
// registered, usually with a blank import of one of the gomidi drivers.
func Ports() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

func openPort(port string) (drivers.In, error) {
	if n, err := strconv.Atoi(port); err == nil {
		return gomidi.InPort(n)
	}
	return gomidi.FindInPort(port)
}

// PortListener returns a Listener reading classic MIDI from an input port,
// named either by its index or by (part of) its name. Messages are passed on
// as UMP words in group 0.
func PortListener(port string) Listener {
	return func(ctx context.Context, f func([]uint32)) error {
		in, err := openPort(port)
		if err != nil {
			return fmt.Errorf("opening midi port %q: %w", port, err)
		}
		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
			words, err := FromBytes(0, msg.Bytes())
			if err != nil || len(words) == 0 {
				return
			}
			f(words)
		})
		if err != nil {
			return fmt.Errorf("listening to %v: %w", in, err)
		}
		defer stop()
		<-ctx.Done()
		return nil
	}
}

// SliceListener replays a fixed sequence of UMP messages and then returns.
func SliceListener(batches ...[]uint32) Listener {
	return func(ctx context.Context, f func([]uint32)) error {
		for _, b := range batches {
			if err := ctx.Err(); err != nil {
				return err
			}
			f(b)
		}
		return nil
	}
}
