// package osc provides a frequency-modulated sine oscillator.
package osc

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/pfcm/crazysynth/param"
)

const (
	twoPi = 2 * math.Pi
	// w is radians per sample per Hz.
	w       = twoPi / param.SampleRate
	nyquist = param.SampleRate / 2
)

// FM is a sine carrier whose instantaneous frequency is swung around its base
// frequency by a second, sinusoidal phase accumulator:
//
//	f = carrier + sin(fmPhase) * depth * carrier
//
// f is clamped to ±nyquist, which keeps every phase step within ±π so a
// single conditional wrap is always enough.
type FM struct {
	phase   float64
	fmPhase float64

	carrier float64
	rate    float64
	depth   float64
}

func NewFM(carrier, rate, depth float32) *FM {
	o := &FM{}
	o.Set(carrier, rate, depth)
	return o
}

func (o *FM) String() string {
	return fmt.Sprintf("FM(%.1fHz, %.2fHz, x%.2f)", o.carrier, o.rate, o.depth)
}

// Set changes the frequencies without touching either phase.
func (o *FM) Set(carrier, rate, depth float32) {
	o.carrier = float64(carrier)
	o.rate = float64(rate)
	o.depth = float64(depth)
}

// Phases returns the carrier and modulator phases, both in [0, 2π).
func (o *FM) Phases() (carrier, modulator float64) {
	return o.phase, o.fmPhase
}

// Instant is the carrier frequency the next call to Next will use.
func (o *FM) Instant() float64 {
	f := o.carrier + math.Sin(wrap(o.fmPhase+w*o.rate))*o.depth*o.carrier
	return min(nyquist, max(-nyquist, f))
}

// Next advances both phases by one sample and returns sin of the carrier
// phase.
func (o *FM) Next() float32 {
	o.fmPhase = wrap(o.fmPhase + w*o.rate)
	f := o.carrier + math.Sin(o.fmPhase)*o.depth*o.carrier
	f = min(nyquist, max(-nyquist, f))
	o.phase = wrap(o.phase + w*f)
	return float32(math.Sin(o.phase))
}

// wrap brings p back into [0, 2π), assuming it left by less than 2π.
func wrap[T constraints.Float](p T) T {
	if p >= twoPi {
		return p - twoPi
	}
	if p < 0 {
		return p + twoPi
	}
	return p
}
