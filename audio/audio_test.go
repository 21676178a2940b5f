package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
)

// ramp produces -1, then steps up by step, wrapping at 1.
type ramp struct {
	v, step float32
	calls   atomic.Int32
}

func (r *ramp) Process(out []float32) {
	r.calls.Add(1)
	for i := range out {
		out[i] = r.v
		r.v += r.step
		if r.v > 1 {
			r.v = -1
		}
	}
}

func TestPutFloat32s(t *testing.T) {
	mono := []float32{0, 0.5, -1}
	for _, channels := range []int{1, 2, 3} {
		b := make([]byte, len(mono)*channels*4)
		if n := putFloat32s(b, mono, channels); n != len(b) {
			t.Fatalf("%d channels: wrote %d bytes, want: %d", channels, n, len(b))
		}
		var got []float32
		for i := 0; i < len(b); i += 4 {
			got = append(got, math.Float32frombits(binary.LittleEndian.Uint32(b[i:])))
		}
		var want []float32
		for _, s := range mono {
			for c := 0; c < channels; c++ {
				want = append(want, s)
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%d channels (-want +got):\n%s", channels, diff)
		}
	}
}

func TestPullReader(t *testing.T) {
	r := newPullReader(&ramp{v: -1, step: 0.25}, 2)
	b := make([]byte, 2*4*3+5) // three whole frames and some slack
	n, err := r.Read(b)
	if err != nil || n != 24 {
		t.Fatalf("Read() = %d, %v; want: 24, nil", n, err)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[16:])); got != -0.5 {
		t.Errorf("third frame = %v, want: -0.5", got)
	}
	if n, _ := r.Read(make([]byte, 7)); n != 0 {
		t.Errorf("Read of less than a frame = %d, want: 0", n)
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	const frames = 3000
	if err := Render(f, &ramp{v: -1, step: 0.001}, frames, 2); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	f, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("rendered file is not a valid wav")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if d.SampleRate != 44100 || d.NumChans != 2 || d.BitDepth != 16 {
		t.Errorf("format = %dHz x%d @%d bits, want 44100Hz x2 @16 bits", d.SampleRate, d.NumChans, d.BitDepth)
	}
	if len(buf.Data) != frames*2 {
		t.Fatalf("got %d samples, want: %d", len(buf.Data), frames*2)
	}
	if buf.Data[0] != -math.MaxInt16 || buf.Data[0] != buf.Data[1] {
		t.Errorf("first frame = %v, want both channels at %d", buf.Data[:2], -math.MaxInt16)
	}
}

func TestPlayNull(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r := &ramp{v: -1, step: 0.01}
	if err := Play(ctx, "null", r, 1); err != nil {
		t.Fatalf("Play(null) = %v", err)
	}
	if r.calls.Load() == 0 {
		t.Error("null backend never called Process")
	}
}

func TestInitErrors(t *testing.T) {
	err := Play(context.Background(), "bogus", &ramp{}, 1)
	var ie *InitError
	if !errors.As(err, &ie) || ie.Backend != "bogus" {
		t.Errorf("Play(bogus) = %v, want an *InitError", err)
	}
	for _, channels := range []int{0, MaxChannels + 1} {
		err := PlayNull(context.Background(), &ramp{}, channels)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("PlayNull with %d channels = %v, want ErrUnsupportedFormat", channels, err)
		}
		if !errors.As(err, &ie) {
			t.Errorf("PlayNull with %d channels = %T, want *InitError", channels, err)
		}
	}
}

func TestBackends(t *testing.T) {
	if diff := cmp.Diff([]string{"malgo", "null", "oto"}, Backends()); diff != "" {
		t.Errorf("Backends() (-want +got):\n%s", diff)
	}
}
