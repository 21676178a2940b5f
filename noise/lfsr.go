package noise

import "fmt"

// LFSR makes noise with a 16 bit Galois linear-feedback shift register. It is
// cheaper and much lumpier than Rand; it repeats every 65535 samples.
type LFSR struct {
	state uint16
	taps  uint16
}

var _ Source = &LFSR{}

const defaultTaps uint16 = 0xd008

// NewLFSR folds seed into the initial register state. A state of zero would
// lock up the register, so it is replaced with all ones.
func NewLFSR(seed int64) *LFSR {
	s := uint16(seed) ^ uint16(seed>>16) ^ uint16(seed>>32) ^ uint16(seed>>48)
	if s == 0 {
		s = 0xffff
	}
	return &LFSR{
		state: s,
		taps:  defaultTaps,
	}
}

func (l *LFSR) String() string { return fmt.Sprintf("LFSR(%2x)", l.taps) }

func (l *LFSR) Next() float32 {
	fb := l.state & 1
	l.state >>= 1
	if fb == 1 {
		l.state ^= l.taps
	}
	return float32(l.state)/(1<<15) - 1
}
