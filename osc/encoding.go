package osc

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

const (
	bit32Size = 4
	bit64Size = 8
)

////
// De/Encoding functions
////

// parseBlob parses an OSC blob from data. The returned slice aliases data;
// n includes the size prefix and the padding bytes.
func parseBlob(data []byte) (blob []byte, n int, err error) {
	if len(data) < bit32Size {
		return nil, 0, errors.Wrap(ErrBufferUnderrun, "parseBlob: missing blob length")
	}
	// A length that doesn't fit into an int is rejected by the check below.
	blobLen := int64(binary.BigEndian.Uint32(data[:bit32Size]))
	if blobLen > int64(len(data)-bit32Size) {
		return nil, 0, errors.Wrapf(ErrBufferUnderrun, "parseBlob: invalid blob length %d", blobLen)
	}

	n = bit32Size + int(blobLen)
	n += padBytesNeeded(n)
	if n > len(data) {
		return nil, 0, errors.Wrap(ErrBufferUnderrun, "parseBlob: blob padding missing")
	}

	return data[bit32Size : bit32Size+int(blobLen)], n, nil
}

// writeBlob writes data as an OSC blob into b. b must be at least
// blobSize(data) bytes long and zeroed.
func writeBlob(data []byte, b []byte) int {
	binary.BigEndian.PutUint32(b[:bit32Size], uint32(len(data)))
	n := bit32Size
	n += copy(b[n:], data)

	return n + padBytesNeeded(n)
}

// blobSize returns the encoded size of a blob.
func blobSize(data []byte) int {
	n := bit32Size + len(data)
	return n + padBytesNeeded(n)
}

// parsePaddedString reads a padded string from the given slice and returns
// the string and the number of bytes read, padding included.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, errors.Wrap(ErrBufferUnderrun, "parsePaddedString: missing null terminator")
	}

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		return "", 0, errors.Wrap(ErrBufferUnderrun, "parsePaddedString: string padding missing")
	}

	return string(data[:pos]), n, nil
}

// writePaddedString writes a string with padding bytes into b. b must be at
// least paddedStringSize(str) bytes long and zeroed. Returns the number of
// written bytes.
func writePaddedString(str string, b []byte) int {
	n := copy(b, str)
	n++

	return n + padBytesNeeded(n)
}

// paddedStringSize returns the encoded size of str, null terminator and
// padding included.
func paddedStringSize(str string) int {
	n := len(str) + 1
	return n + padBytesNeeded(n)
}

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}

func putFloat32(b []byte, f float32) {
	binary.BigEndian.PutUint32(b, math.Float32bits(f))
}

func putFloat64(b []byte, f float64) {
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
}

func getFloat32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

func getFloat64(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}
