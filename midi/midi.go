// package midi receives MIDI messages and routes them to subscribers.
package midi

import (
	"context"
	"log"
	"sync"
)

type ChannelMask uint16

// AllChannels matches every one of the 16 channels.
const AllChannels ChannelMask = 0xFFFF

// Listener is function that blocks until its context is cancelled, calling a
// provided callback with UMP midi messages.
type Listener func(context.Context, func([]uint32)) error

type sub struct {
	f filter
	c chan Message
}

// Dispatcher routes MIDI messages to a set of channels.
type Dispatcher struct {
	mu      sync.Mutex
	subs    []sub
	dropped int
	done    chan struct{}
	err     error
}

// Listen starts listening for MIDI messages in the background with the provided
// Listener. Messages that fail to parse are logged and skipped. When the
// Listener returns, every subscription channel is closed.
func Listen(ctx context.Context, l Listener) *Dispatcher {
	d := &Dispatcher{done: make(chan struct{})}

	go func() {
		err := l(ctx, func(raw []uint32) {
			msgs, err := ParseMessages(raw)
			if err != nil {
				log.Printf("midi: %v", err)
				return
			}
			for _, m := range msgs {
				d.dispatch(m)
			}
		})
		d.close(err)
	}()

	return d
}

func (d *Dispatcher) dispatch(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		if !s.f.match(msg) {
			continue
		}
		// Slow subscribers lose messages rather than holding up
		// everyone else.
		select {
		case s.c <- msg:
		default:
			d.dropped++
		}
	}
}

func (d *Dispatcher) close(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		close(s.c)
	}
	d.subs = nil
	d.err = err
	close(d.done)
}

// Wait blocks until the Listener has returned, and returns its error.
func (d *Dispatcher) Wait() error {
	<-d.done
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Dropped is the number of messages that didn't fit in a subscriber's
// buffer.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Subscribe returns a channel of every message matching opts. Subscribing
// after the Listener has returned yields a closed channel.
func (d *Dispatcher) Subscribe(opts ...SubscriptionFilter) <-chan Message {
	f := defaultFilter()
	for _, o := range opts {
		o(&f)
	}

	c := make(chan Message, 100)
	d.mu.Lock()
	defer d.mu.Unlock()
	select {
	case <-d.done:
		close(c)
	default:
		d.subs = append(d.subs, sub{f: f, c: c})
	}
	return c
}

type filter struct {
	channels ChannelMask
	cv1Types [7]bool
	// controllers, if non-nil, limits control changes to these numbers.
	controllers *[128]bool
}

func defaultFilter() filter {
	f := filter{
		channels: AllChannels,
	}
	for i := range f.cv1Types {
		f.cv1Types[i] = true
	}
	return f
}

func (f *filter) match(msg Message) bool {
	if msg.Type != MTChannelVoice1 {
		return false
	}
	if f.channels&(1<<msg.Channel) == 0 {
		return false
	}
	if !f.cv1Types[int(msg.CV1Type&0x7)] {
		return false
	}
	if msg.CV1Type == CV1ControlChange && f.controllers != nil {
		return f.controllers[msg.Note&0x7F]
	}
	return true
}

type SubscriptionFilter func(f *filter)

// WithChannelMask only matches channels whose bit is set in cm.
func WithChannelMask(cm ChannelMask) SubscriptionFilter {
	return func(f *filter) { f.channels = cm }
}

// WithChannel only matches a single channel, 0-15.
func WithChannel(ch byte) SubscriptionFilter {
	return WithChannelMask(1 << (ch & 0xF))
}

func WithoutCV1Type(t CV1MessageType) SubscriptionFilter {
	return func(f *filter) {
		f.cv1Types[int(t&0x7)] = false
	}
}

// OnlyCV1Types matches only the given channel voice types.
func OnlyCV1Types(ts ...CV1MessageType) SubscriptionFilter {
	return func(f *filter) {
		f.cv1Types = [7]bool{}
		for _, t := range ts {
			f.cv1Types[int(t&0x7)] = true
		}
	}
}

// WithControllers limits control changes to the given controller numbers.
func WithControllers(ccs ...byte) SubscriptionFilter {
	return func(f *filter) {
		var set [128]bool
		for _, cc := range ccs {
			set[cc&0x7F] = true
		}
		f.controllers = &set
	}
}
