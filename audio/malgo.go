package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/gen2brain/malgo"

	"github.com/pfcm/crazysynth/param"
)

// PlayMalgo plays p on the default output device using miniaudio. It blocks
// until ctx is cancelled.
func PlayMalgo(ctx context.Context, p Processor, channels int) error {
	const name = "malgo"
	if err := checkChannels(name, channels); err != nil {
		return err
	}
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return &InitError{Backend: name, Stage: "context", Err: err}
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(channels)
	cfg.SampleRate = param.SampleRate

	// Grown if the device ever asks for more, which it shouldn't after
	// the first callback.
	mono := make([]float32, 4096)
	recv := func(out, _ []byte, framecount uint32) {
		n := int(framecount)
		if n == 0 {
			return
		}
		if len(mono) < n {
			mono = make([]float32, n)
		}
		p.Process(mono[:n])
		putFloat32s(out, mono[:n], channels)
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return &InitError{Backend: name, Stage: "device", Err: fmt.Errorf("%w: %w", ErrNoDevice, err)}
	}
	defer device.Uninit()
	if err := device.Start(); err != nil {
		return &InitError{Backend: name, Stage: "start", Err: err}
	}

	<-ctx.Done()
	return device.Stop()
}
