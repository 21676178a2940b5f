// package param holds the instrument's control values and maps them onto the
// quantities the individual DSP units need.
package param

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// SampleRate is the fixed rate everything runs at, in Hz.
const SampleRate = 44100

// InstrumentParams is a snapshot of the six control values. Each is expected
// to be in [-1, 1]; nothing downstream checks.
type InstrumentParams struct {
	A, B, C, D, E, F float32
}

func (p InstrumentParams) String() string {
	return fmt.Sprintf("%.1f %.1f|%.3f %.3f|%.1f %.1f", p.A, p.B, p.C, p.D, p.E, p.F)
}

// Unit is an InstrumentParams remapped into [0, 1].
type Unit struct {
	A, B, C, D, E, F float32
}

// Unit remaps every field with Unipolar.
func (p InstrumentParams) Unit() Unit {
	return Unit{
		A: Unipolar(p.A),
		B: Unipolar(p.B),
		C: Unipolar(p.C),
		D: Unipolar(p.D),
		E: Unipolar(p.E),
		F: Unipolar(p.F),
	}
}

// Unipolar maps [-1, 1] onto [0, 1].
func Unipolar[T constraints.Float](x T) T {
	return x/2 + 0.5
}

// Bipolar is the inverse of Unipolar.
func Bipolar[T constraints.Float](u T) T {
	return u*2 - 1
}
