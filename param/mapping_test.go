package param

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestUnipolar(t *testing.T) {
	for _, c := range []struct {
		in, out float32
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{-0.5, 0.25},
	} {
		if got := Unipolar(c.in); got != c.out {
			t.Errorf("Unipolar(%v) = %v, want: %v", c.in, got, c.out)
		}
		if got := Bipolar(c.out); got != c.in {
			t.Errorf("Bipolar(%v) = %v, want: %v", c.out, got, c.in)
		}
	}
}

func TestDeriveDefaults(t *testing.T) {
	got := DefaultMapping().Derive(InstrumentParams{})
	want := Derived{
		Period:        1.1,
		PeriodSamples: 48510,
		DutyCycle:     0.5,
		Carrier:       float32(math.Exp2(9.5)),
		FMRate:        16,
		FMDepth:       1,
		NoiseDepth:    0.5,
		DelayLength:   4,
		Feedback:      0.5,
		Gain:          0.5,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("Derive(zero) mismatch (-want +got):\n%s", diff)
	}
}

func TestRanges(t *testing.T) {
	if got := Period(0); got != 0.1 {
		t.Errorf("Period(0) = %v, want: 0.1", got)
	}
	if got := Period(1); got != 2.1 {
		t.Errorf("Period(1) = %v, want: 2.1", got)
	}
	if got := Carrier(0); got != 32 {
		t.Errorf("Carrier(0) = %v, want: 32", got)
	}
	if got := Carrier(1); got != 16384 {
		t.Errorf("Carrier(1) = %v, want: 16384", got)
	}
}

func TestFMCurves(t *testing.T) {
	for _, c := range []struct {
		m           Mapping
		c, d        float32
		rate, depth float32
	}{
		{Mapping{FMRate: FMRateExp}, 1, 1, 256, 2},
		{Mapping{FMRate: FMRateLinear}, 1, 0.5, 2, 1},
		{Mapping{FMRate: FMRateLinear}, 0.25, 0, 0.5, 0},
		{Mapping{FMDepth: FMDepthExp}, 0, 0, 1, 32},
		{Mapping{FMDepth: FMDepthExp}, 0, 1, 1, 16384},
	} {
		if got := c.m.fmRate(c.c); got != c.rate {
			t.Errorf("%v.fmRate(%v) = %v, want: %v", c.m, c.c, got, c.rate)
		}
		if got := c.m.fmDepth(c.d); got != c.depth {
			t.Errorf("%v.fmDepth(%v) = %v, want: %v", c.m, c.d, got, c.depth)
		}
	}
}

func TestDelayLength(t *testing.T) {
	exp := DefaultMapping()
	lin := Mapping{Delay: DelayLinear, MaxDelay: SampleRate}
	for _, c := range []struct {
		m    Mapping
		e    float32
		want int
	}{
		{exp, 0, 1},
		{exp, 0.25, 2},
		{exp, 0.5, 4},
		{exp, 1, 16},
		{lin, 0, 1},
		{lin, 0.5, 22050},
		{lin, 1, 44100},
		{Mapping{}, 1, 1},
		{Mapping{Delay: DelayLinear, MaxDelay: -3}, 1, 1},
	} {
		if got := c.m.DelayLength(c.e); got != c.want {
			t.Errorf("%v.DelayLength(%v) = %d, want: %d", c.m, c.e, got, c.want)
		}
	}
}

func TestMinimalDelay(t *testing.T) {
	d := DefaultMapping().Derive(InstrumentParams{E: -1, F: 1})
	if d.DelayLength != 1 {
		t.Errorf("DelayLength for e=-1 = %d, want: 1", d.DelayLength)
	}
	if d.Gain != 1 {
		t.Errorf("Gain for f=1 = %v, want: 1", d.Gain)
	}
}

func TestParseCurves(t *testing.T) {
	if c, err := ParseFMRateCurve("Linear"); err != nil || c != FMRateLinear {
		t.Errorf("ParseFMRateCurve(Linear) = %v, %v", c, err)
	}
	if c, err := ParseFMDepthCurve("exp"); err != nil || c != FMDepthExp {
		t.Errorf("ParseFMDepthCurve(exp) = %v, %v", c, err)
	}
	if c, err := ParseDelayCurve("linear"); err != nil || c != DelayLinear {
		t.Errorf("ParseDelayCurve(linear) = %v, %v", c, err)
	}
	if _, err := ParseDelayCurve("cubic"); err == nil {
		t.Error("ParseDelayCurve(cubic): expected an error")
	}
	if got := DelayExp.String(); got != "exp" {
		t.Errorf("DelayExp.String() = %q", got)
	}
}
