package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pfcm/crazysynth/param"
)

// renderFrames is how many frames Render asks for at a time.
const renderFrames = 1024

// Render writes frames frames of p to w as a 16 bit PCM wav file.
func Render(w io.WriteSeeker, p Processor, frames, channels int) error {
	if err := checkChannels("wav", channels); err != nil {
		return err
	}
	enc := wav.NewEncoder(w, param.SampleRate, 16, channels, 1)
	mono := make([]float32, renderFrames)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  param.SampleRate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, 0, renderFrames*channels),
	}
	for done := 0; done < frames; {
		n := min(renderFrames, frames-done)
		p.Process(mono[:n])
		buf.Data = buf.Data[:0]
		for _, s := range mono[:n] {
			v := int(math.Round(float64(s) * math.MaxInt16))
			for c := 0; c < channels; c++ {
				buf.Data = append(buf.Data, v)
			}
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav: %w", err)
		}
		done += n
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}
