package crazysynth

import (
	"fmt"

	"github.com/pfcm/crazysynth/delay"
	"github.com/pfcm/crazysynth/env"
	"github.com/pfcm/crazysynth/noise"
	"github.com/pfcm/crazysynth/osc"
	"github.com/pfcm/crazysynth/param"
)

// Path turns the current derived parameters into samples. Paths are owned by
// whatever goroutine calls Engine.Process and are never shared.
type Path interface {
	// Configure is called with fresh values whenever the parameters
	// change, and once before the first sample.
	Configure(param.Derived)
	// Next produces the sample at index n.
	Next(n uint64) float32

	fmt.Stringer
}

// PathKind selects one of the built-in paths.
type PathKind byte

const (
	NoiseFeedback PathKind = iota
	OscillatorFM
)

func (k PathKind) String() string {
	switch k {
	case NoiseFeedback:
		return "noise"
	case OscillatorFM:
		return "fm"
	}
	return fmt.Sprintf("PathKind(%d)", byte(k))
}

// ParsePathKind parses "noise" or "fm".
func ParsePathKind(s string) (PathKind, error) {
	switch s {
	case "noise":
		return NoiseFeedback, nil
	case "fm":
		return OscillatorFM, nil
	}
	return 0, fmt.Errorf("unknown path %q", s)
}

// NoiseFeedbackPath feeds noise through a feedback comb filter and chops the
// result into bursts with an envelope gate:
//
//	x[n] = depth*noise[n] + feedback*x[n-L]
//	y[n] = gain * gate[n] * x[n]
type NoiseFeedbackPath struct {
	noise noise.Source
	line  *delay.Line
	gate  *env.Gate

	depth, feedback, gain float32
}

var _ Path = &NoiseFeedbackPath{}

// NewNoiseFeedbackPath makes a path with room for delays of up to maxDelay
// samples before it has to allocate.
func NewNoiseFeedbackPath(src noise.Source, maxDelay int) *NoiseFeedbackPath {
	return &NoiseFeedbackPath{
		noise: src,
		line:  delay.WithCapacity(1, maxDelay),
		gate:  env.NewGate(param.Period(0), 0),
	}
}

func (p *NoiseFeedbackPath) String() string {
	return fmt.Sprintf("NoiseFeedback(%v, %v)", p.line, p.gate)
}

func (p *NoiseFeedbackPath) Configure(d param.Derived) {
	if d.DelayLength != p.line.Len() {
		p.line.Resize(d.DelayLength)
	}
	p.gate.Set(d.Period, d.DutyCycle)
	p.depth, p.feedback, p.gain = d.NoiseDepth, d.Feedback, d.Gain
}

func (p *NoiseFeedbackPath) Next(uint64) float32 {
	// The feedback term is read before the line is ticked, so it is the
	// sample that Tick is about to hand back.
	x := p.depth*p.noise.Next() + p.feedback*p.line.Peek()
	p.line.Tick(x)
	return p.gain * p.gate.Next() * x
}

// OscillatorFMPath is a frequency-modulated sine, switched on for the first
// duty fraction of every period.
type OscillatorFMPath struct {
	fm *osc.FM

	periodSamples uint64
	duty, gain    float32
}

var _ Path = &OscillatorFMPath{}

func NewOscillatorFMPath() *OscillatorFMPath {
	return &OscillatorFMPath{
		fm:            osc.NewFM(0, 0, 0),
		periodSamples: 1,
	}
}

func (p *OscillatorFMPath) String() string {
	return fmt.Sprintf("OscillatorFM(%v, %d, %.2f)", p.fm, p.periodSamples, p.duty)
}

func (p *OscillatorFMPath) Configure(d param.Derived) {
	p.fm.Set(d.Carrier, d.FMRate, d.FMDepth)
	p.periodSamples = d.PeriodSamples
	p.duty, p.gain = d.DutyCycle, d.Gain
}

func (p *OscillatorFMPath) Next(n uint64) float32 {
	s := p.fm.Next()
	if !env.Pulse(n, p.periodSamples, p.duty) {
		return 0
	}
	return p.gain * s
}
