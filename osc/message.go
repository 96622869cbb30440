package osc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// NewMessageFromData returns a new OSC message created from the parsed data.
func NewMessageFromData(data []byte) (msg *Message, err error) {
	msg = &Message{}
	if err = msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Append appends the given arguments to the arguments list. Nothing is
// appended if any of them has an unsupported type.
func (m *Message) Append(args ...interface{}) error {
	if _, err := GetTypeTag(args...); err != nil {
		return err
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// TypeTags returns the type tag string, including the leading ','.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", errors.New("TypeTags: message is nil")
	}

	tags, err := GetTypeTag(m.Arguments...)
	if err != nil {
		return "", err
	}
	return "," + tags, nil
}

// encodable returns the type tags of m without the ',' and the arguments
// that carry data, as WriteMessage takes them.
func (m *Message) encodable() (string, []interface{}, error) {
	tags, err := GetTypeTag(m.Arguments...)
	if err != nil {
		return "", nil, err
	}

	args := m.Arguments
	for _, arg := range m.Arguments {
		if !ToTypeTag(arg).hasPayload() {
			args = make([]interface{}, 0, len(m.Arguments))
			for _, arg := range m.Arguments {
				if ToTypeTag(arg).hasPayload() {
					args = append(args, arg)
				}
			}
			break
		}
	}
	return tags, args, nil
}

// Size returns the encoded size of the message.
func (m *Message) Size() (int, error) {
	tags, args, err := m.encodable()
	if err != nil {
		return 0, err
	}
	return MessageSize(m.Address, tags, args...)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	tags, _ := m.TypeTags()

	var sb strings.Builder
	sb.WriteString(m.Address)
	if len(tags) == 0 {
		return sb.String()
	}

	sb.WriteByte(' ')
	sb.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(&sb, " %v", arg)

		case nil:
			sb.WriteString(" Nil")

		case []byte:
			sb.WriteString(" blob")

		case Timetag:
			fmt.Fprintf(&sb, " %d", arg.TimeTag())

		case MIDI:
			fmt.Fprintf(&sb, " %02X %02X %02X %02X", arg[0], arg[1], arg[2], arg[3])

		case Impulse:
			sb.WriteString(" Impulse")
		}
	}

	return sb.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Message) MarshalBinary() ([]byte, error) {
	n, err := m.Size()
	if err != nil {
		return nil, errors.WithMessage(err, "Message.MarshalBinary")
	}
	if n > MaxPacketSize {
		return nil, errors.Wrapf(ErrBufferOverrun, "Message.MarshalBinary: packet too large: %d", n)
	}

	data := make([]byte, n)
	if _, err = m.AppendTo(data); err != nil {
		return nil, err
	}
	return data, nil
}

// AppendTo writes the message into data and returns the number of bytes
// written. It's the allocation free version of MarshalBinary.
func (m *Message) AppendTo(data []byte) (int, error) {
	tags, args, err := m.encodable()
	if err != nil {
		return 0, errors.WithMessage(err, "Message.AppendTo")
	}
	return WriteMessage(data, m.Address, tags, args...)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// data is copied; blob arguments don't alias it.
func (m *Message) UnmarshalBinary(d []byte) error {
	data := make([]byte, len(d))
	copy(data, d)

	return m.unmarshalBinary(data)
}

func (m *Message) unmarshalBinary(data []byte) error {
	var r MessageReader
	if err := r.Parse(data); err != nil {
		return errors.WithMessage(err, "Message.UnmarshalBinary")
	}

	args, err := r.Arguments()
	if err != nil {
		return errors.WithMessage(err, "Message.UnmarshalBinary")
	}

	m.Address = r.Address()
	m.Arguments = args
	return nil
}
