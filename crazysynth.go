// package crazysynth is a tiny real-time synthesizer. A controlling goroutine
// pushes parameter snapshots through a Controller; the audio goroutine calls
// Engine.Process once per output buffer.
package crazysynth

import (
	"fmt"

	"github.com/pfcm/crazysynth/noise"
	"github.com/pfcm/crazysynth/param"
	"github.com/pfcm/crazysynth/spsc"
)

// DefaultQueueCapacity is how many pending snapshots a Controller holds
// before it starts dropping them.
const DefaultQueueCapacity = 200

type config struct {
	path     PathKind
	mapping  param.Mapping
	noise    noise.Kind
	seed     int64
	seeded   bool
	capacity int
}

// Option configures New.
type Option func(*config)

// WithPath picks the signal path. The default is NoiseFeedback.
func WithPath(k PathKind) Option {
	return func(c *config) { c.path = k }
}

// WithMapping replaces param.DefaultMapping.
func WithMapping(m param.Mapping) Option {
	return func(c *config) { c.mapping = m }
}

// WithNoise picks the noise source for NoiseFeedback.
func WithNoise(k noise.Kind) Option {
	return func(c *config) { c.noise = k }
}

// WithSeed fixes the noise seed. Without it the seed comes from
// noise.EntropySeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed, c.seeded = seed, true }
}

// WithQueueCapacity sets the Controller's capacity.
func WithQueueCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// Engine produces audio. All of its methods must be called from the same
// goroutine (normally the audio callback) except where noted.
type Engine struct {
	q       *spsc.Queue[param.InstrumentParams]
	mapping param.Mapping

	params  param.InstrumentParams
	derived param.Derived
	path    Path
	n       uint64
}

// Controller is the controlling goroutine's end of an Engine.
type Controller struct {
	q *spsc.Queue[param.InstrumentParams]
}

// Push hands p to the engine, which will pick it up before its next buffer.
// If too many snapshots are already pending it returns false and p is
// dropped; the next successful Push supersedes it anyway. Push must only be
// called from one goroutine at a time.
func (c *Controller) Push(p param.InstrumentParams) bool {
	return c.q.Push(p)
}

// New builds an Engine starting from initial, and the Controller that feeds
// it.
func New(initial param.InstrumentParams, opts ...Option) (*Engine, *Controller) {
	cfg := config{
		mapping:  param.DefaultMapping(),
		capacity: DefaultQueueCapacity,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = noise.EntropySeed()
	}

	var path Path
	switch cfg.path {
	case OscillatorFM:
		path = NewOscillatorFMPath()
	default:
		// Preallocate for the longest delay in-range controls can ask
		// for.
		maxDelay := cfg.mapping.DelayLength(1)
		path = NewNoiseFeedbackPath(noise.New(cfg.noise, cfg.seed), maxDelay)
	}

	q := spsc.New[param.InstrumentParams](cfg.capacity)
	e := &Engine{
		q:       q,
		mapping: cfg.mapping,
		path:    path,
	}
	e.apply(initial)
	return e, &Controller{q: q}
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine(%v, %v)", e.path, e.mapping)
}

// Params is the snapshot currently in effect.
func (e *Engine) Params() param.InstrumentParams { return e.params }

// Derived is what Params currently maps to.
func (e *Engine) Derived() param.Derived { return e.derived }

// Samples is the number of samples produced so far, modulo 2^64.
func (e *Engine) Samples() uint64 { return e.n }

// Process picks up the newest pushed snapshot, if any, then fills out with
// mono samples in [-1, 1]. It does not block or allocate while the delay
// length stays within range.
func (e *Engine) Process(out []float32) {
	if p, ok := e.q.DrainLatest(); ok && p != e.params {
		e.apply(p)
	}
	for i := range out {
		out[i] = min(1, max(-1, e.path.Next(e.n)))
		e.n++
	}
}

func (e *Engine) apply(p param.InstrumentParams) {
	e.params = p
	e.derived = e.mapping.Derive(p)
	e.path.Configure(e.derived)
}
