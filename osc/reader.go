package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MessageReader is a read view over an encoded OSC message. It doesn't copy
// the data: blobs returned by it alias the parsed buffer, which must not be
// modified while the reader is in use.
//
// Arguments are read in order with the Next* methods. Each method checks
// that the next type tag matches and that the argument lies within the
// message; on error the read head doesn't move.
type MessageReader struct {
	buf     []byte
	address int // length of the address
	format  int // offset of the first type tag, after ','
	tags    int // number of type tags
	args    int // offset of the first argument
	marker  int // read head
	tag     int // index of the next unread type tag
}

// ParseMessage parses the OSC message in b.
func ParseMessage(b []byte) (*MessageReader, error) {
	m := new(MessageReader)
	if err := m.Parse(b); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse points m at the OSC message in b and resets the read head to the
// first argument. On error m is cleared.
func (m *MessageReader) Parse(b []byte) error {
	*m = MessageReader{}

	if len(b) < 2*bit32Size {
		return errors.Wrapf(ErrMalformedHeader, "Parse: message too short: %d bytes", len(b))
	}
	if len(b)%bit32Size != 0 {
		return errors.Wrapf(ErrMalformedHeader, "Parse: length %d isn't a multiple of 4", len(b))
	}
	if b[0] != '/' {
		return errors.Wrap(ErrMalformedHeader, "Parse: address doesn't start with '/'")
	}

	addrLen := bytes.IndexByte(b, 0)
	if addrLen == -1 {
		return errors.Wrap(ErrMalformedHeader, "Parse: address isn't null terminated")
	}
	pos := addrLen + 1 + padBytesNeeded(addrLen+1)
	if pos >= len(b) || b[pos] != ',' {
		return errors.Wrap(ErrMalformedHeader, "Parse: type tag string doesn't start with ','")
	}

	tagsLen := bytes.IndexByte(b[pos:], 0)
	if tagsLen == -1 {
		return errors.Wrap(ErrMalformedHeader, "Parse: type tag string isn't null terminated")
	}
	args := pos + tagsLen + 1 + padBytesNeeded(tagsLen+1)
	if args > len(b) {
		return errors.Wrap(ErrMalformedHeader, "Parse: type tag string padding missing")
	}

	*m = MessageReader{
		buf:     b,
		address: addrLen,
		format:  pos + 1,
		tags:    tagsLen - 1,
		args:    args,
		marker:  args,
	}
	return nil
}

// Address returns the OSC address of the message.
func (m *MessageReader) Address() string {
	return string(m.buf[:m.address])
}

// Format returns the type tags of the message, without the leading ','.
func (m *MessageReader) Format() string {
	return string(m.formatBytes())
}

func (m *MessageReader) formatBytes() []byte {
	return m.buf[m.format : m.format+m.tags]
}

// Len returns the length in bytes of the message.
func (m *MessageReader) Len() int {
	return len(m.buf)
}

// Bytes returns the underlying message data.
func (m *MessageReader) Bytes() []byte {
	return m.buf
}

// Remaining returns the number of arguments that haven't been read.
func (m *MessageReader) Remaining() int {
	return m.tags - m.tag
}

// NextTag returns the type tag of the next argument without reading it.
// It returns TypeInvalid if all arguments have been read.
func (m *MessageReader) NextTag() TypeTag {
	if m.tag >= m.tags {
		return TypeInvalid
	}
	return TypeTag(m.buf[m.format+m.tag])
}

// Reset rewinds the read head to the first argument.
func (m *MessageReader) Reset() *MessageReader {
	m.marker = m.args
	m.tag = 0
	return m
}

// field checks that the next argument has type t and that size bytes are
// available at the read head. It returns the field data without advancing.
func (m *MessageReader) field(t TypeTag, size int) ([]byte, error) {
	next := m.NextTag()
	if next == TypeInvalid {
		return nil, ErrNoMoreArguments
	}
	if next != t {
		return nil, errors.Wrapf(ErrTypeMismatch, "next argument is '%c', not '%c'", next, t)
	}
	if size > len(m.buf)-m.marker {
		return nil, errors.Wrapf(ErrBufferUnderrun, "'%c' needs %d bytes, %d left", t, size, len(m.buf)-m.marker)
	}
	return m.buf[m.marker : m.marker+size], nil
}

// advance moves the read head past an argument of n bytes.
func (m *MessageReader) advance(n int) {
	m.marker += n
	m.tag++
}

// NextInt32 reads the next argument as an int32 ('i').
func (m *MessageReader) NextInt32() (int32, error) {
	b, err := m.field(TypeInt32, bit32Size)
	if err != nil {
		return 0, errors.WithMessage(err, "NextInt32")
	}
	m.advance(bit32Size)
	return int32(binary.BigEndian.Uint32(b)), nil
}

// NextInt64 reads the next argument as an int64 ('h').
func (m *MessageReader) NextInt64() (int64, error) {
	b, err := m.field(TypeInt64, bit64Size)
	if err != nil {
		return 0, errors.WithMessage(err, "NextInt64")
	}
	m.advance(bit64Size)
	return int64(binary.BigEndian.Uint64(b)), nil
}

// NextTimetag reads the next argument as a Timetag ('t').
func (m *MessageReader) NextTimetag() (Timetag, error) {
	b, err := m.field(TypeTimeTag, bit64Size)
	if err != nil {
		return 0, errors.WithMessage(err, "NextTimetag")
	}
	m.advance(bit64Size)
	return Timetag(binary.BigEndian.Uint64(b)), nil
}

// NextFloat32 reads the next argument as a float32 ('f').
func (m *MessageReader) NextFloat32() (float32, error) {
	b, err := m.field(TypeFloat32, bit32Size)
	if err != nil {
		return 0, errors.WithMessage(err, "NextFloat32")
	}
	m.advance(bit32Size)
	return getFloat32(b), nil
}

// NextFloat64 reads the next argument as a float64 ('d').
func (m *MessageReader) NextFloat64() (float64, error) {
	b, err := m.field(TypeFloat64, bit64Size)
	if err != nil {
		return 0, errors.WithMessage(err, "NextFloat64")
	}
	m.advance(bit64Size)
	return getFloat64(b), nil
}

// NextMIDI reads the next argument as a MIDI message ('m').
func (m *MessageReader) NextMIDI() (MIDI, error) {
	var midi MIDI
	b, err := m.field(TypeMIDI, bit32Size)
	if err != nil {
		return midi, errors.WithMessage(err, "NextMIDI")
	}
	m.advance(bit32Size)
	copy(midi[:], b)
	return midi, nil
}

// NextString reads the next argument as a string ('s').
func (m *MessageReader) NextString() (string, error) {
	if _, err := m.field(TypeString, 0); err != nil {
		return "", errors.WithMessage(err, "NextString")
	}
	s, n, err := parsePaddedString(m.buf[m.marker:])
	if err != nil {
		return "", errors.WithMessage(err, "NextString")
	}
	m.advance(n)
	return s, nil
}

// NextBlob reads the next argument as a blob ('b'). The returned slice
// aliases the message data.
func (m *MessageReader) NextBlob() ([]byte, error) {
	if _, err := m.field(TypeBlob, 0); err != nil {
		return nil, errors.WithMessage(err, "NextBlob")
	}
	b, n, err := parseBlob(m.buf[m.marker:])
	if err != nil {
		return nil, errors.WithMessage(err, "NextBlob")
	}
	m.advance(n)
	return b, nil
}

// NextBool reads the next argument as a boolean ('T' or 'F').
func (m *MessageReader) NextBool() (bool, error) {
	switch m.NextTag() {
	case TypeTrue:
		m.advance(0)
		return true, nil
	case TypeFalse:
		m.advance(0)
		return false, nil
	case TypeInvalid:
		return false, errors.WithMessage(ErrNoMoreArguments, "NextBool")
	}
	return false, errors.Wrapf(ErrTypeMismatch, "NextBool: next argument is '%c'", m.NextTag())
}

// NextNil reads the next argument, which must be 'N'.
func (m *MessageReader) NextNil() error {
	if _, err := m.field(TypeNil, 0); err != nil {
		return errors.WithMessage(err, "NextNil")
	}
	m.advance(0)
	return nil
}

// NextImpulse reads the next argument, which must be 'I'.
func (m *MessageReader) NextImpulse() error {
	if _, err := m.field(TypeImpulse, 0); err != nil {
		return errors.WithMessage(err, "NextImpulse")
	}
	m.advance(0)
	return nil
}

// Next reads the next argument, whatever its type, and returns it as the Go
// type listed for its tag in ToTypeTag.
func (m *MessageReader) Next() (interface{}, error) {
	switch t := m.NextTag(); t {
	case TypeInvalid:
		return nil, errors.WithMessage(ErrNoMoreArguments, "Next")
	case TypeInt32:
		return m.NextInt32()
	case TypeFloat32:
		return m.NextFloat32()
	case TypeString:
		return m.NextString()
	case TypeBlob:
		return m.NextBlob()
	case TypeInt64:
		return m.NextInt64()
	case TypeFloat64:
		return m.NextFloat64()
	case TypeTimeTag:
		return m.NextTimetag()
	case TypeMIDI:
		return m.NextMIDI()
	case TypeTrue, TypeFalse:
		return m.NextBool()
	case TypeNil:
		return nil, m.NextNil()
	case TypeImpulse:
		return Impulse{}, m.NextImpulse()
	default:
		return nil, errors.Wrapf(ErrUnknownTypeTag, "Next: %q at position %d", byte(t), m.tag)
	}
}

// Arguments rewinds the read head and reads all arguments.
func (m *MessageReader) Arguments() ([]interface{}, error) {
	m.Reset()
	args := make([]interface{}, 0, m.tags)
	for m.Remaining() > 0 {
		arg, err := m.Next()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// String implements the fmt.Stringer interface. It prints the length, the
// address, the type tags and every argument, without moving the read head.
func (m *MessageReader) String() string {
	if m == nil || m.buf == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d bytes] %s ,%s", len(m.buf), m.Address(), m.formatBytes())

	r := *m
	r.Reset()
	for r.Remaining() > 0 {
		t := r.NextTag()
		arg, err := r.Next()
		if err != nil {
			fmt.Fprintf(&sb, " <%v>", err)
			break
		}
		switch arg := arg.(type) {
		case nil:
			sb.WriteString(" Nil")
		case string:
			fmt.Fprintf(&sb, " %s", arg)
		case []byte:
			fmt.Fprintf(&sb, " [%d]%x", len(arg), arg)
		case MIDI:
			fmt.Fprintf(&sb, " %02X %02X %02X %02X", arg[0], arg[1], arg[2], arg[3])
		case Timetag:
			fmt.Fprintf(&sb, " %d", arg.TimeTag())
		case Impulse:
			sb.WriteString(" Impulse")
		default:
			if t == TypeTrue || t == TypeFalse {
				fmt.Fprintf(&sb, " %c", t)
				continue
			}
			fmt.Fprintf(&sb, " %v", arg)
		}
	}

	return sb.String()
}

// Dump returns a printable form of the OSC packet in b, which may be a
// message or a bundle. It's meant for debugging received data.
func Dump(b []byte) string {
	if IsBundle(b) {
		var br BundleReader
		if err := br.Parse(b); err != nil {
			return fmt.Sprintf("[%d bytes] invalid bundle: %v", len(b), err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d bytes] #bundle %d", len(b), br.Timetag().TimeTag())
		var m MessageReader
		for {
			ok, err := br.NextMessage(&m)
			if err != nil {
				fmt.Fprintf(&sb, "\n\t<%v>", err)
				break
			}
			if !ok {
				break
			}
			fmt.Fprintf(&sb, "\n\t%s", &m)
		}
		return sb.String()
	}

	var m MessageReader
	if err := m.Parse(b); err != nil {
		return fmt.Sprintf("[%d bytes] invalid message: %v", len(b), err)
	}
	return m.String()
}
