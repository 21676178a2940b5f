// package delay provides a sample-exact delay line for comb filtering.
package delay

import "fmt"

// Line is a FIFO of samples. Tick reads the oldest sample before writing the
// new one, so a Line of length n delays its input by exactly n samples.
type Line struct {
	buf []float32
	pos int
}

// New allocates a zeroed Line of length n, clamped to at least 1.
func New(n int) *Line {
	return WithCapacity(n, n)
}

// WithCapacity allocates a Line of length n with room to Resize up to capacity
// samples without allocating.
func WithCapacity(n, capacity int) *Line {
	n = max(1, n)
	return &Line{buf: make([]float32, n, max(n, capacity))}
}

func (l *Line) Len() int       { return len(l.buf) }
func (l *Line) String() string { return fmt.Sprintf("Delay(%d)", len(l.buf)) }

// Peek returns the value the next Tick will return.
func (l *Line) Peek() float32 { return l.buf[l.pos] }

// Tick returns the sample pushed Len() calls ago (or zero, if there weren't
// that many) and pushes x.
func (l *Line) Tick(x float32) float32 {
	y := l.buf[l.pos]
	l.buf[l.pos] = x
	l.pos++
	if l.pos == len(l.buf) {
		l.pos = 0
	}
	return y
}

// Resize throws away the contents and sets the length to n, clamped to at
// least 1. The next n calls to Tick return zero.
func (l *Line) Resize(n int) {
	n = max(1, n)
	if n > cap(l.buf) {
		l.buf = make([]float32, n)
	} else {
		l.buf = l.buf[:n]
		clear(l.buf)
	}
	l.pos = 0
}
