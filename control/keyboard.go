package control

import (
	"bufio"
	"context"
	"errors"
	"io"

	"golang.org/x/term"
)

// ErrQuit is returned by Keyboard.Run when the user asks to stop.
var ErrQuit = errors.New("quit")

// DefaultStep is how far one key press moves a value.
const DefaultStep = 0.05

type binding struct {
	p    Param
	sign float32
}

// The top letter row raises a value, the one below lowers it.
var bindings = map[byte]binding{
	'q': {A, 1}, 'a': {A, -1},
	'w': {B, 1}, 's': {B, -1},
	'e': {C, 1}, 'd': {C, -1},
	'r': {D, 1}, 'f': {D, -1},
	't': {E, 1}, 'g': {E, -1},
	'y': {F, 1}, 'h': {F, -1},
}

// Keyboard drives a Panel from single key presses.
type Keyboard struct {
	Panel *Panel
	// Step is the amount a single press moves a value. Upper case keys move
	// ten times as far.
	Step float32
}

// Run reads keys from r until it sees x, ctrl-c or ctrl-d (returning
// ErrQuit), r is exhausted (returning nil) or ctx is done. A blocked read is
// not interrupted by ctx.
func (k *Keyboard) Run(ctx context.Context, r io.Reader) error {
	step := k.Step
	if step == 0 {
		step = DefaultStep
	}
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch c {
		case 'x', 'X', 0x03, 0x04:
			return ErrQuit
		case '0':
			for p := A; p < NumParams; p++ {
				k.Panel.Set(p, 0)
			}
			continue
		}
		s := step
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
			s *= 10
		}
		if b, ok := bindings[c]; ok {
			k.Panel.Nudge(b.p, b.sign*s)
		}
	}
}

// MakeRaw puts the terminal on fd into raw mode so keys arrive one at a time.
// The returned function restores the previous state.
func MakeRaw(fd int) (func() error, error) {
	if !term.IsTerminal(fd) {
		return nil, errors.New("not a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, old) }, nil
}
