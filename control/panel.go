// package control is the controlling side of the synth: it owns the six
// user-facing values and pushes a new snapshot to the engine whenever one
// changes.
package control

import (
	"fmt"
	"sync"

	"github.com/pfcm/crazysynth/param"
)

// Param names one of the six controls.
type Param int

const (
	A Param = iota
	B
	C
	D
	E
	F
	NumParams
)

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return string(rune('a' + p))
}

// Pusher accepts parameter snapshots, possibly refusing them.
type Pusher interface {
	Push(param.InstrumentParams) bool
}

// Panel holds the current control values. It is safe for concurrent use, and
// serialises calls to the underlying Pusher so a single-producer queue can be
// shared between several input sources.
type Panel struct {
	mu      sync.Mutex
	vals    [NumParams]float32
	out     Pusher
	pending bool
	dropped int
	changes uint64
}

func NewPanel(out Pusher, initial param.InstrumentParams) *Panel {
	p := &Panel{out: out}
	for i, v := range [...]float32{initial.A, initial.B, initial.C, initial.D, initial.E, initial.F} {
		p.vals[i] = clamp(v)
	}
	return p
}

func clamp(v float32) float32 {
	return max(-1, min(1, v))
}

func (p *Panel) params() param.InstrumentParams {
	return param.InstrumentParams{
		A: p.vals[A], B: p.vals[B], C: p.vals[C],
		D: p.vals[D], E: p.vals[E], F: p.vals[F],
	}
}

// Params returns the current values.
func (p *Panel) Params() param.InstrumentParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params()
}

// Changes counts the updates made so far, so pollers can tell when
// something moved.
func (p *Panel) Changes() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changes
}

// Dropped counts snapshots the Pusher refused.
func (p *Panel) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Set sets a single value, clamped to [-1, 1], and pushes the result.
func (p *Panel) Set(which Param, v float32) param.InstrumentParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vals[which] = clamp(v)
	p.changes++
	p.push()
	return p.params()
}

// Nudge moves a single value by delta.
func (p *Panel) Nudge(which Param, delta float32) param.InstrumentParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vals[which] = clamp(p.vals[which] + delta)
	p.changes++
	p.push()
	return p.params()
}

// Flush retries a push that was previously refused. It reports whether the
// receiver is up to date.
func (p *Panel) Flush() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		p.push()
	}
	return !p.pending
}

func (p *Panel) push() {
	if p.out.Push(p.params()) {
		p.pending = false
		return
	}
	p.pending = true
	p.dropped++
}
