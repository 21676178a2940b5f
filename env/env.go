// package env provides gates that shape a signal's amplitude over time.
package env

import (
	"fmt"
	"math"

	"github.com/pfcm/crazysynth/param"
)

const twoPi = 2 * math.Pi

// Gate is a binary envelope driven by a phase accumulator that runs once per
// period. It is open (1) for the first duty fraction of every period and
// closed (0) for the rest.
type Gate struct {
	phase     float64
	inc       float64
	threshold float64
}

// NewGate makes a Gate with the given period in seconds and duty cycle in
// [0, 1]. The phase starts at zero.
func NewGate(period, duty float32) *Gate {
	g := &Gate{}
	g.Set(period, duty)
	return g
}

func (g *Gate) String() string {
	return fmt.Sprintf("Gate(%.3fs, %.2f)", twoPi/g.inc/param.SampleRate, g.threshold/twoPi)
}

// Set changes the period and duty cycle without moving the phase.
func (g *Gate) Set(period, duty float32) {
	g.inc = twoPi / param.SampleRate / float64(period)
	g.threshold = twoPi * float64(duty)
}

// Phase is the current phase, always in [0, 2π).
func (g *Gate) Phase() float64 { return g.phase }

// Next advances the phase by one sample and returns the gate value. A duty
// cycle of 0 never opens and a duty cycle of 1 never closes.
func (g *Gate) Next() float32 {
	g.phase += g.inc
	if g.phase >= twoPi {
		g.phase -= twoPi
	}
	if g.phase < g.threshold {
		return 1
	}
	return 0
}

// Pulse is the counter-driven gate: open while sample n falls within the
// first duty fraction of its period of periodSamples samples. periodSamples
// must not be zero.
func Pulse(n, periodSamples uint64, duty float32) bool {
	return float64(n%periodSamples) < float64(duty)*float64(periodSamples)
}
