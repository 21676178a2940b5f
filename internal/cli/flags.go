// package cli holds the flags and status output shared by the commands.
package cli

import (
	"flag"
	"fmt"

	"github.com/pfcm/crazysynth"
	"github.com/pfcm/crazysynth/noise"
	"github.com/pfcm/crazysynth/param"
)

// EngineFlags are the flags that configure a crazysynth.Engine.
type EngineFlags struct {
	path, noise            string
	fmRate, fmDepth, delay string
	maxDelay               int
	seed                   int64
	queue                  int
	vals                   [6]float64
}

// RegisterEngineFlags adds the engine flags to fs.
func RegisterEngineFlags(fs *flag.FlagSet) *EngineFlags {
	f := &EngineFlags{}
	fs.StringVar(&f.path, "path", crazysynth.NoiseFeedback.String(), "signal path, noise or fm")
	fs.StringVar(&f.noise, "noise", noise.KindRand.String(), "noise source for the noise path, rand or lfsr")
	fs.StringVar(&f.fmRate, "fm-rate", param.FMRateExp.String(), "fm rate curve, exp or linear")
	fs.StringVar(&f.fmDepth, "fm-depth", param.FMDepthRelative.String(), "fm depth curve, relative or exp")
	fs.StringVar(&f.delay, "delay", param.DelayExp.String(), "delay length curve, exp or linear")
	fs.IntVar(&f.maxDelay, "max-delay", param.DefaultMaxDelay, "longest delay in samples")
	fs.Int64Var(&f.seed, "seed", 0, "noise seed, 0 picks one from the clock")
	fs.IntVar(&f.queue, "queue", crazysynth.DefaultQueueCapacity, "pending parameter snapshots before updates are dropped")
	for i := range f.vals {
		name := string(rune('a' + i))
		fs.Float64Var(&f.vals[i], name, 0, fmt.Sprintf("initial value of control %s, in [-1, 1]", name))
	}
	return f
}

// Params is the initial snapshot.
func (f *EngineFlags) Params() param.InstrumentParams {
	v := f.vals
	return param.InstrumentParams{
		A: float32(v[0]), B: float32(v[1]), C: float32(v[2]),
		D: float32(v[3]), E: float32(v[4]), F: float32(v[5]),
	}
}

// Mapping parses the curve flags.
func (f *EngineFlags) Mapping() (param.Mapping, error) {
	m := param.Mapping{MaxDelay: f.maxDelay}
	var err error
	if m.FMRate, err = param.ParseFMRateCurve(f.fmRate); err != nil {
		return m, err
	}
	if m.FMDepth, err = param.ParseFMDepthCurve(f.fmDepth); err != nil {
		return m, err
	}
	if m.Delay, err = param.ParseDelayCurve(f.delay); err != nil {
		return m, err
	}
	if m.MaxDelay < 1 {
		return m, fmt.Errorf("-max-delay must be at least 1, got %d", m.MaxDelay)
	}
	return m, nil
}

// Options turns the flags into engine options.
func (f *EngineFlags) Options() ([]crazysynth.Option, error) {
	path, err := crazysynth.ParsePathKind(f.path)
	if err != nil {
		return nil, err
	}
	kind, err := noise.ParseKind(f.noise)
	if err != nil {
		return nil, err
	}
	m, err := f.Mapping()
	if err != nil {
		return nil, err
	}
	if f.queue < 1 {
		return nil, fmt.Errorf("-queue must be at least 1, got %d", f.queue)
	}
	opts := []crazysynth.Option{
		crazysynth.WithPath(path),
		crazysynth.WithNoise(kind),
		crazysynth.WithMapping(m),
		crazysynth.WithQueueCapacity(f.queue),
	}
	if f.seed != 0 {
		opts = append(opts, crazysynth.WithSeed(f.seed))
	}
	return opts, nil
}
