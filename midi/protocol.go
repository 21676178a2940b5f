package midi

import (
	"errors"
	"fmt"
)

// MessageType is a UMP message type, a group of types of message.
type MessageType byte

const (
	MTUtility       MessageType = 0x0
	MTSystem        MessageType = 0x1
	MTChannelVoice1 MessageType = 0x2
	MTData          MessageType = 0x3
	MTChannelVoice2 MessageType = 0x4
	MTLongData      MessageType = 0x5
	// several reserved.
	MTFlexData MessageType = 0xD
	// 0xE is reserved
	MTUMPStream MessageType = 0xF
)

// messageTypeSizes is size in uint32s of each type of message. Reserved types
// are zero.
var messageTypeSizes = [16]int{
	MTUtility:       1,
	MTSystem:        1,
	MTChannelVoice1: 1,
	MTData:          2,
	MTChannelVoice2: 2,
	MTLongData:      4,
	MTFlexData:      4,
	MTUMPStream:     4,
}

// Message is a parsed message. Only MIDI 1.0 channel voice messages are
// parsed in any detail.
type Message struct {
	Type    MessageType
	Group   byte
	CV1Type CV1MessageType
	Channel byte
	// MIDI note for note on/note off/poly pressure, but also
	// index for control change and program for program change.
	Note      byte
	Velocity  byte // also the value of a control change.
	PitchBend uint16
}

func (m Message) String() string {
	switch m.CV1Type {
	case CV1ControlChange:
		return fmt.Sprintf("ch%d CC%d=%d", m.Channel, m.Note, m.Velocity)
	case CV1PitchBend:
		return fmt.Sprintf("ch%d bend=%d", m.Channel, m.PitchBend)
	}
	return fmt.Sprintf("ch%d %v %d/%d", m.Channel, m.CV1Type, m.Note, m.Velocity)
}

// CV1MessageType is the type of a 1.0 Channel Voice message. Also the high 4
// bits of the classic status byte.
type CV1MessageType byte

const (
	CV1NoteOff = CV1MessageType(0x8 | byte(iota))
	CV1NoteOn
	CV1PolyPressure
	CV1ControlChange
	CV1ProgramChange
	CV1ChannelPressure
	CV1PitchBend
)

func (t CV1MessageType) String() string {
	names := [...]string{"NoteOff", "NoteOn", "PolyPressure", "ControlChange", "ProgramChange", "ChannelPressure", "PitchBend"}
	if i := int(t) - int(CV1NoteOff); i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("CV1MessageType(%#x)", byte(t))
}

// dataBytes is the number of data bytes following each classic status.
func (t CV1MessageType) dataBytes() int {
	if t == CV1ProgramChange || t == CV1ChannelPressure {
		return 1
	}
	return 2
}

func parseChannelVoice1(raw []uint32) (Message, []uint32, error) {
	p, raw := raw[0], raw[1:]
	// The remaining 3 bytes are more or less the traditional bytes from the
	// old format.
	msg := Message{
		Type:    MTChannelVoice1,
		Group:   byte(p>>24) & 0xF,
		CV1Type: CV1MessageType((p >> 20) & 0xF),
		Channel: byte((p >> 16) & 0xF),
	}
	switch msg.CV1Type {
	case CV1NoteOff, CV1NoteOn, CV1PolyPressure, CV1ControlChange:
		msg.Note = byte(p>>8) & 0x7F
		msg.Velocity = byte(p) & 0x7F
	case CV1ProgramChange:
		msg.Note = byte(p>>8) & 0x7F
	case CV1ChannelPressure:
		msg.Velocity = byte(p>>8) & 0x7F
	case CV1PitchBend:
		low := uint16(p>>8) & 0x7F
		high := uint16(p) & 0x7F
		msg.PitchBend = (high << 7) | low
	default:
		return msg, nil, fmt.Errorf("invalid 1.0 Channel Voice message type: %d", msg.CV1Type)
	}
	return msg, raw, nil
}

// ParseMessage parses a single (possibly variable-length) UMP message from a
// slice of raw data. Returns the original slice, advanced to the start of the
// next message (or the end). Messages other than MIDI 1.0 channel voice are
// skipped over and returned with only Type and Group set.
func ParseMessage(raw []uint32) (Message, []uint32, error) {
	if len(raw) == 0 {
		return Message{}, nil, errors.New("no input")
	}
	// The type is always the most significant 4 bits.
	t := MessageType(raw[0] >> 28)
	if t == MTChannelVoice1 {
		return parseChannelVoice1(raw)
	}
	size := messageTypeSizes[t]
	if size == 0 {
		return Message{}, nil, fmt.Errorf("reserved message type %#x", byte(t))
	}
	if len(raw) < size {
		return Message{}, nil, fmt.Errorf("message type %#x needs %d words, have %d", byte(t), size, len(raw))
	}
	return Message{Type: t, Group: byte(raw[0]>>24) & 0xF}, raw[size:], nil
}

// ParseMessages calls ParseMessage until the input is exhausted.
func ParseMessages(raw []uint32) ([]Message, error) {
	var messages []Message
	for len(raw) > 0 {
		msg, next, err := ParseMessage(raw)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
		raw = next
	}
	return messages, nil
}

// FromBytes packs classic MIDI 1.0 channel voice messages into UMP words in
// the given group. Running status is supported; system messages (status 0xF0
// and up) are dropped.
func FromBytes(group byte, b []byte) ([]uint32, error) {
	var (
		words  []uint32
		status byte
	)
	for len(b) > 0 {
		if b[0]&0x80 != 0 {
			status, b = b[0], b[1:]
			if status >= 0xF0 {
				// Skip up to the next status byte.
				for len(b) > 0 && b[0]&0x80 == 0 {
					b = b[1:]
				}
				status = 0
				continue
			}
		}
		if status == 0 {
			return nil, errors.New("data byte without status")
		}
		n := CV1MessageType(status >> 4).dataBytes()
		if len(b) < n {
			return nil, fmt.Errorf("status %#x needs %d data bytes, have %d", status, n, len(b))
		}
		w := uint32(MTChannelVoice1)<<28 | uint32(group&0xF)<<24 | uint32(status)<<16 | uint32(b[0]&0x7F)<<8
		if n == 2 {
			w |= uint32(b[1] & 0x7F)
		}
		words = append(words, w)
		b = b[n:]
	}
	return words, nil
}
