package osc

import (
	"encoding"

	"github.com/pkg/errors"
)

// MaxPacketSize is the largest payload of a UDP datagram over IPv4.
const MaxPacketSize = 65507

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses an OSC message or bundle. The data is copied.
func ParsePacket(data []byte) (Packet, error) {
	b := make([]byte, len(data))
	copy(b, data)

	return parsePacket(b)
}

// parsePacket parses data without copying it.
func parsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrMalformedHeader, "ParsePacket: empty packet")
	}

	switch {
	case data[0] == '/':
		m := &Message{}
		if err := m.unmarshalBinary(data); err != nil {
			return nil, err
		}
		return m, nil

	case IsBundle(data):
		b := &Bundle{}
		if err := b.unmarshalBinary(data); err != nil {
			return nil, err
		}
		return b, nil

	default:
		return nil, errors.Wrapf(ErrMalformedHeader, "ParsePacket: invalid packet start %q", data[0])
	}
}
