package osc

import "github.com/pkg/errors"

type TypeTag rune

const (
	TypeString  TypeTag = 's'
	TypeInt32   TypeTag = 'i'
	TypeInt64   TypeTag = 'h'
	TypeFloat32 TypeTag = 'f'
	TypeFloat64 TypeTag = 'd'
	TypeBlob    TypeTag = 'b'
	TypeTimeTag TypeTag = 't'
	TypeMIDI    TypeTag = 'm'
	TypeNil     TypeTag = 'N'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeImpulse TypeTag = 'I'
	TypeInvalid TypeTag = 0
)

// MIDI is a four byte MIDI message. From MSB to LSB the bytes are:
// port id, status byte, data1, data2.
type MIDI [4]byte

// Port returns the port id.
func (m MIDI) Port() byte { return m[0] }

// Status returns the status byte.
func (m MIDI) Status() byte { return m[1] }

// Data returns both data bytes.
func (m MIDI) Data() (byte, byte) { return m[2], m[3] }

// Impulse is the argument for the 'I' type tag. It carries no data.
type Impulse struct{}

// ToTypeTag returns the OSC TypeTag for the given argument.
// Returns TypeInvalid if the argument type is unsupported.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case Timetag:
		return TypeTimeTag
	case MIDI:
		return TypeMIDI
	case Impulse:
		return TypeImpulse
	default:
		return TypeInvalid
	}
}

// GetTypeTag returns the OSC type tag string for the given arguments,
// without the leading ','.
func GetTypeTag(args ...interface{}) (string, error) {
	tt := make([]byte, len(args))
	for i, arg := range args {
		s := ToTypeTag(arg)
		if s == TypeInvalid {
			return "", errors.Wrapf(ErrUnknownTypeTag, "GetTypeTag: unsupported type: %T", arg)
		}
		tt[i] = byte(s)
	}
	return string(tt), nil
}

// hasPayload reports whether arguments of this type carry an argument value
// and bytes on the wire. T, F, N and I are encoded in the type tag alone.
func (t TypeTag) hasPayload() bool {
	switch t {
	case TypeTrue, TypeFalse, TypeNil, TypeImpulse:
		return false
	}
	return true
}

// fixedSize returns the wire size of fixed size types. ok is false for
// variable length types and unknown tags.
func (t TypeTag) fixedSize() (n int, ok bool) {
	switch t {
	case TypeInt32, TypeFloat32, TypeMIDI:
		return bit32Size, true
	case TypeInt64, TypeFloat64, TypeTimeTag:
		return bit64Size, true
	case TypeTrue, TypeFalse, TypeNil, TypeImpulse:
		return 0, true
	}
	return 0, false
}

// known reports whether the codec has an encoding for t.
func (t TypeTag) known() bool {
	if _, ok := t.fixedSize(); ok {
		return true
	}
	return t == TypeString || t == TypeBlob
}
