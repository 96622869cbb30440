package osc

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// WriteMessage encodes an OSC message into b and returns the number of
// bytes written. The capacity of the destination is len(b).
//
// format is the type tag string, with or without the leading ','. Every tag
// that carries data consumes one argument of the matching Go type (see
// ToTypeTag); 'T', 'F', 'N' and 'I' consume none. The arguments are checked
// against format before anything is written, and ErrBufferOverrun is
// returned, with b untouched, if the message doesn't fit.
func WriteMessage(b []byte, address, format string, args ...interface{}) (int, error) {
	format = strings.TrimPrefix(format, ",")
	n, err := messageSize(address, format, args)
	if err != nil {
		return 0, errors.WithMessage(err, "WriteMessage")
	}
	if n > len(b) {
		return 0, errors.Wrapf(ErrBufferOverrun, "WriteMessage: message needs %d bytes, buffer holds %d", n, len(b))
	}

	return writeMessage(b[:n], address, format, args), nil
}

// MessageSize returns the number of bytes WriteMessage needs to encode the
// message, after validating it the same way.
func MessageSize(address, format string, args ...interface{}) (int, error) {
	n, err := messageSize(address, strings.TrimPrefix(format, ","), args)
	if err != nil {
		return 0, errors.WithMessage(err, "MessageSize")
	}
	return n, nil
}

func messageSize(address, format string, args []interface{}) (int, error) {
	if len(address) == 0 || address[0] != '/' {
		return 0, errors.Wrapf(ErrInvalidAddress, "address %q must start with '/'", address)
	}
	if strings.IndexByte(address, 0) != -1 {
		return 0, errors.Wrapf(ErrInvalidAddress, "address %q contains a null byte", address)
	}

	n := paddedStringSize(address) + typeTagsSize(format)

	i := 0
	for pos := 0; pos < len(format); pos++ {
		t := TypeTag(format[pos])
		if !t.known() {
			return 0, errors.Wrapf(ErrUnknownTypeTag, "%q at position %d", format[pos], pos)
		}
		if !t.hasPayload() {
			continue
		}
		if i >= len(args) {
			return 0, errors.Wrapf(ErrArgumentCount, "type tags %q need more than %d arguments", format, len(args))
		}

		arg := args[i]
		if got := ToTypeTag(arg); got != t {
			return 0, errors.Wrapf(ErrTypeMismatch, "argument %d: %T can't be encoded as '%c'", i, arg, t)
		}
		i++

		switch t {
		case TypeString:
			s := arg.(string)
			if strings.IndexByte(s, 0) != -1 {
				return 0, errors.Wrapf(ErrTypeMismatch, "argument %d: string contains a null byte", i-1)
			}
			n += paddedStringSize(s)
		case TypeBlob:
			n += blobSize(arg.([]byte))
		default:
			size, _ := t.fixedSize()
			n += size
		}
	}

	if i != len(args) {
		return 0, errors.Wrapf(ErrArgumentCount, "type tags %q take %d arguments, got %d", format, i, len(args))
	}

	return n, nil
}

// writeMessage does the actual encoding. b is exactly as long as the message
// and the arguments have been validated by messageSize.
func writeMessage(b []byte, address, format string, args []interface{}) int {
	clear(b)

	n := writePaddedString(address, b)

	// The type tag string is the ',' followed by format.
	b[n] = ','
	copy(b[n+1:], format)
	n += typeTagsSize(format)

	i := 0
	for pos := 0; pos < len(format); pos++ {
		t := TypeTag(format[pos])
		if !t.hasPayload() {
			continue
		}
		arg := args[i]
		i++

		switch t {
		case TypeInt32:
			binary.BigEndian.PutUint32(b[n:], uint32(arg.(int32)))
			n += bit32Size
		case TypeFloat32:
			putFloat32(b[n:], arg.(float32))
			n += bit32Size
		case TypeString:
			n += writePaddedString(arg.(string), b[n:])
		case TypeBlob:
			n += writeBlob(arg.([]byte), b[n:])
		case TypeInt64:
			binary.BigEndian.PutUint64(b[n:], uint64(arg.(int64)))
			n += bit64Size
		case TypeFloat64:
			putFloat64(b[n:], arg.(float64))
			n += bit64Size
		case TypeTimeTag:
			binary.BigEndian.PutUint64(b[n:], uint64(arg.(Timetag)))
			n += bit64Size
		case TypeMIDI:
			m := arg.(MIDI)
			n += copy(b[n:], m[:])
		}
	}

	return n
}

// typeTagsSize returns the encoded size of the type tag string for format:
// the ',', the tags, the null terminator and padding.
func typeTagsSize(format string) int {
	n := len(format) + 2
	return n + padBytesNeeded(n)
}
