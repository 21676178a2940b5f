package audio

import (
	"context"
	"time"

	"github.com/pfcm/crazysynth/param"
)

// nullFrames is the buffer size PlayNull uses.
const nullFrames = 512

// PlayNull runs p in real time without a sound device, throwing the output
// away. Useful on headless machines.
func PlayNull(ctx context.Context, p Processor, channels int) error {
	if err := checkChannels("null", channels); err != nil {
		return err
	}
	buf := make([]float32, nullFrames)
	t := time.NewTicker(time.Second * nullFrames / param.SampleRate)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			p.Process(buf)
		}
	}
}
