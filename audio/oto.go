package audio

import (
	"context"
	"fmt"

	"github.com/ebitengine/oto/v3"

	"github.com/pfcm/crazysynth/param"
)

// PlayOto plays p with oto, which pulls samples through an io.Reader. oto only
// allows one context per process, so PlayOto can only be called once.
func PlayOto(ctx context.Context, p Processor, channels int) error {
	const name = "oto"
	if err := checkChannels(name, channels); err != nil {
		return err
	}
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   param.SampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return &InitError{Backend: name, Stage: "context", Err: fmt.Errorf("%w: %w", ErrNoDevice, err)}
	}
	<-ready

	player := octx.NewPlayer(newPullReader(p, channels))
	player.Play()
	<-ctx.Done()
	return player.Close()
}

// pullReader adapts a Processor to the io.Reader oto wants.
type pullReader struct {
	p        Processor
	channels int
	mono     []float32
}

func newPullReader(p Processor, channels int) *pullReader {
	return &pullReader{
		p:        p,
		channels: channels,
		mono:     make([]float32, 4096),
	}
}

func (r *pullReader) Read(b []byte) (int, error) {
	frameSize := 4 * r.channels
	n := len(b) / frameSize
	if n == 0 {
		return 0, nil
	}
	if len(r.mono) < n {
		r.mono = make([]float32, n)
	}
	r.p.Process(r.mono[:n])
	return putFloat32s(b, r.mono[:n], r.channels), nil
}
