package param

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FMRateCurve selects how the FM rate is derived from C.
type FMRateCurve byte

const (
	// FMRateExp is 2^(c*8) Hz.
	FMRateExp FMRateCurve = iota
	// FMRateLinear is 2c Hz.
	FMRateLinear
)

// FMDepthCurve selects how the FM depth is derived from D. Either way the
// result is a multiplier on the carrier frequency.
type FMDepthCurve byte

const (
	// FMDepthRelative is d*2.
	FMDepthRelative FMDepthCurve = iota
	// FMDepthExp is 2^(5+d*9).
	FMDepthExp
)

// DelayCurve selects how the delay length is derived from E.
type DelayCurve byte

const (
	// DelayExp is MaxDelay^e, which is 2^(4e) for a bound of 16.
	DelayExp DelayCurve = iota
	// DelayLinear is e*MaxDelay.
	DelayLinear
)

var (
	fmRateNames  = map[string]FMRateCurve{"exp": FMRateExp, "linear": FMRateLinear}
	fmDepthNames = map[string]FMDepthCurve{"relative": FMDepthRelative, "exp": FMDepthExp}
	delayNames   = map[string]DelayCurve{"exp": DelayExp, "linear": DelayLinear}
)

func (c FMRateCurve) String() string  { return nameOf(fmRateNames, c) }
func (c FMDepthCurve) String() string { return nameOf(fmDepthNames, c) }
func (c DelayCurve) String() string   { return nameOf(delayNames, c) }

// ParseFMRateCurve parses "exp" or "linear".
func ParseFMRateCurve(s string) (FMRateCurve, error) { return parse(fmRateNames, "fm rate", s) }

// ParseFMDepthCurve parses "relative" or "exp".
func ParseFMDepthCurve(s string) (FMDepthCurve, error) { return parse(fmDepthNames, "fm depth", s) }

// ParseDelayCurve parses "exp" or "linear".
func ParseDelayCurve(s string) (DelayCurve, error) { return parse(delayNames, "delay", s) }

func nameOf[T comparable](names map[string]T, v T) string {
	for k, n := range names {
		if n == v {
			return k
		}
	}
	return fmt.Sprintf("%T(%v)", v, any(v))
}

func parse[T any](names map[string]T, what, s string) (T, error) {
	if v, ok := names[strings.ToLower(s)]; ok {
		return v, nil
	}
	var (
		zero  T
		known []string
	)
	for k := range names {
		known = append(known, k)
	}
	sort.Strings(known)
	return zero, fmt.Errorf("unknown %s curve %q (want one of %s)", what, s, strings.Join(known, ", "))
}

// Mapping turns InstrumentParams into Derived values. The zero Mapping uses
// the exponential curves with a delay bound of 1.
type Mapping struct {
	FMRate  FMRateCurve
	FMDepth FMDepthCurve
	Delay   DelayCurve
	// MaxDelay bounds the delay length in samples.
	MaxDelay int
}

// DefaultMaxDelay is the bound used by DefaultMapping.
const DefaultMaxDelay = 16

// DefaultMapping is the mapping used when nothing else is asked for.
func DefaultMapping() Mapping {
	return Mapping{
		FMRate:   FMRateExp,
		FMDepth:  FMDepthRelative,
		Delay:    DelayExp,
		MaxDelay: DefaultMaxDelay,
	}
}

func (m Mapping) String() string {
	return fmt.Sprintf("Mapping(rate=%v, depth=%v, delay=%v/%d)", m.FMRate, m.FMDepth, m.Delay, m.MaxDelay)
}

// Derived holds everything the DSP units need for one parameter snapshot.
type Derived struct {
	Period        float32 // seconds
	PeriodSamples uint64
	DutyCycle     float32
	Carrier       float32 // Hz
	FMRate        float32 // Hz
	FMDepth       float32 // multiple of Carrier
	NoiseDepth    float32
	DelayLength   int // samples
	Feedback      float32
	Gain          float32
}

// Derive computes all derived values for p.
func (m Mapping) Derive(p InstrumentParams) Derived {
	u := p.Unit()
	period := Period(u.A)
	return Derived{
		Period:        period,
		PeriodSamples: PeriodSamples(period),
		DutyCycle:     u.B,
		Carrier:       Carrier(u.E),
		FMRate:        m.fmRate(u.C),
		FMDepth:       m.fmDepth(u.D),
		NoiseDepth:    u.D,
		DelayLength:   m.DelayLength(u.E),
		Feedback:      u.C,
		Gain:          u.F,
	}
}

// Period is a*2 + 0.1 seconds.
func Period(a float32) float32 {
	return a*2 + 0.1
}

// PeriodSamples is the number of whole samples in period, never less than 1.
func PeriodSamples(period float32) uint64 {
	return max(1, uint64(period*SampleRate))
}

// Carrier is 2^(5 + e*9) Hz.
func Carrier(e float32) float32 {
	return exp2(5 + e*9)
}

func (m Mapping) fmRate(c float32) float32 {
	if m.FMRate == FMRateLinear {
		return 2 * c
	}
	return exp2(c * 8)
}

func (m Mapping) fmDepth(d float32) float32 {
	if m.FMDepth == FMDepthExp {
		return exp2(5 + d*9)
	}
	return d * 2
}

// DelayLength is the delay line length for e, which must be in [0, 1]. It is
// never less than 1.
func (m Mapping) DelayLength(e float32) int {
	bound := float64(max(1, m.MaxDelay))
	var n float64
	switch m.Delay {
	case DelayLinear:
		n = float64(e) * bound
	default:
		n = math.Pow(bound, float64(e))
	}
	return max(1, int(math.Round(n)))
}

func exp2(x float32) float32 {
	return float32(math.Exp2(float64(x)))
}
