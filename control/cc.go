package control

import (
	"context"
	"fmt"

	"github.com/pfcm/crazysynth/midi"
)

// CCMap assigns a MIDI controller number to each Param.
type CCMap [NumParams]byte

// DefaultCCs are the general purpose sound controllers 70-75.
var DefaultCCs = CCMap{70, 71, 72, 73, 74, 75}

// ParseCCMap parses six comma separated controller numbers.
func ParseCCMap(s string) (CCMap, error) {
	var m CCMap
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d,%d,%d", &m[A], &m[B], &m[C], &m[D], &m[E], &m[F])
	if err != nil {
		return CCMap{}, fmt.Errorf("parsing %q: want six comma separated controllers, got %d: %w", s, n, err)
	}
	for _, cc := range m {
		if cc > 127 {
			return CCMap{}, fmt.Errorf("controller %d out of range", cc)
		}
	}
	return m, nil
}

// Lookup finds the Param assigned to controller cc.
func (m CCMap) Lookup(cc byte) (Param, bool) {
	for i, x := range m {
		if x == cc {
			return Param(i), true
		}
	}
	return 0, false
}

// Filter subscribes to just the mapped controllers.
func (m CCMap) Filter() []midi.SubscriptionFilter {
	return []midi.SubscriptionFilter{
		midi.OnlyCV1Types(midi.CV1ControlChange),
		midi.WithControllers(m[:]...),
	}
}

// CCValue maps a 7 bit controller value onto [-1, 1].
func CCValue(v byte) float32 {
	return float32(v&0x7F)/63.5 - 1
}

// FollowCC sets panel values from control changes on msgs until msgs is
// closed or ctx is done.
func FollowCC(ctx context.Context, panel *Panel, m CCMap, msgs <-chan midi.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if msg.CV1Type != midi.CV1ControlChange {
				continue
			}
			if p, ok := m.Lookup(msg.Note); ok {
				panel.Set(p, CCValue(msg.Velocity))
			}
		}
	}
}
