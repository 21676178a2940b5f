// package audio connects a Processor to the outside world: sound devices and
// wav files. Processors always produce mono; it is copied to every output
// channel here.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Processor fills a buffer of mono samples in [-1, 1]. It is called from the
// backend's audio thread.
type Processor interface {
	Process(out []float32)
}

// MaxChannels is the most output channels any backend will be asked for.
const MaxChannels = 8

var (
	// ErrNoDevice means there was no usable output device.
	ErrNoDevice = errors.New("no output device")
	// ErrUnsupportedFormat means the requested output format can't be
	// provided.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// InitError is returned when a backend can't be brought up. There is no
// fallback: the caller gets this and gives up.
type InitError struct {
	Backend string
	Stage   string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Stage, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// PlayFunc runs p on a backend until ctx is cancelled.
type PlayFunc func(ctx context.Context, p Processor, channels int) error

var backends = map[string]PlayFunc{
	"malgo": PlayMalgo,
	"oto":   PlayOto,
	"null":  PlayNull,
}

// Backends lists the names Play accepts.
func Backends() []string {
	var names []string
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Play runs p on the named backend until ctx is cancelled. Initialisation
// failures are returned as *InitError.
func Play(ctx context.Context, backend string, p Processor, channels int) error {
	play, ok := backends[backend]
	if !ok {
		return &InitError{Backend: backend, Stage: "lookup", Err: fmt.Errorf("unknown backend (want one of %v)", Backends())}
	}
	return play(ctx, p, channels)
}

func checkChannels(backend string, channels int) error {
	if channels < 1 || channels > MaxChannels {
		return &InitError{
			Backend: backend,
			Stage:   "config",
			Err:     fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels),
		}
	}
	return nil
}

// putFloat32s interleaves mono into dst as little-endian float32s, repeating
// each sample for every channel. dst must have room for
// len(mono)*channels*4 bytes. Returns the number of bytes written.
func putFloat32s(dst []byte, mono []float32, channels int) int {
	i := 0
	for _, s := range mono {
		bits := math.Float32bits(s)
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint32(dst[i:], bits)
			i += 4
		}
	}
	return i
}
