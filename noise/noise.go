// package noise provides seeded noise sources. Every source yields values in
// [-1, 1) and produces the same sequence given the same seed.
package noise

import (
	"fmt"
	"math/rand"
	"time"
)

// Source produces one noise value per call.
type Source interface {
	Next() float32
}

// Kind picks a Source implementation.
type Kind byte

const (
	KindRand Kind = iota
	KindLFSR
)

func (k Kind) String() string {
	switch k {
	case KindRand:
		return "rand"
	case KindLFSR:
		return "lfsr"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// ParseKind parses "rand" or "lfsr".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "rand":
		return KindRand, nil
	case "lfsr":
		return KindLFSR, nil
	}
	return 0, fmt.Errorf("unknown noise kind %q", s)
}

// New makes a Source of the given kind.
func New(k Kind, seed int64) Source {
	if k == KindLFSR {
		return NewLFSR(seed)
	}
	return NewRand(seed)
}

// EntropySeed returns a seed that differs between runs.
func EntropySeed() int64 {
	return time.Now().UnixNano()
}

// Rand is white noise from math/rand.
type Rand struct {
	r *rand.Rand
}

var _ Source = &Rand{}

func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (n *Rand) Next() float32 {
	return n.r.Float32()*2 - 1
}
