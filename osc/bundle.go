package osc

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
)

const (
	bundleTagString = "#bundle"

	// bundleHeaderSize is the size of the "#bundle" tag plus the timetag.
	bundleHeaderSize = 16
)

var bundleTag = []byte(bundleTagString + "\x00")

// IsBundle returns true if b starts with the OSC bundle tag "#bundle\0".
func IsBundle(b []byte) bool {
	if len(b) < len(bundleTag) {
		return false
	}
	return string(b[:len(bundleTag)]) == string(bundleTag)
}

////
// Bundle views
////

// BundleReader is a read view over an encoded OSC bundle. Like
// MessageReader it doesn't copy the data.
type BundleReader struct {
	buf     []byte
	timetag Timetag
	marker  int
}

// ParseBundle parses the header of the OSC bundle in b.
func ParseBundle(b []byte) (*BundleReader, error) {
	r := new(BundleReader)
	if err := r.Parse(b); err != nil {
		return nil, err
	}
	return r, nil
}

// Parse points r at the OSC bundle in b and positions it at the first
// element.
func (r *BundleReader) Parse(b []byte) error {
	*r = BundleReader{}

	if !IsBundle(b) {
		return errors.Wrap(ErrMalformedHeader, "ParseBundle: missing bundle tag")
	}
	if len(b) < bundleHeaderSize {
		return errors.Wrapf(ErrMalformedHeader, "ParseBundle: bundle too short: %d bytes", len(b))
	}
	if len(b)%bit32Size != 0 {
		return errors.Wrapf(ErrMalformedHeader, "ParseBundle: length %d isn't a multiple of 4", len(b))
	}

	*r = BundleReader{
		buf:     b,
		timetag: Timetag(binary.BigEndian.Uint64(b[len(bundleTag):bundleHeaderSize])),
		marker:  bundleHeaderSize,
	}
	return nil
}

// Timetag returns the timetag of the bundle.
func (r *BundleReader) Timetag() Timetag {
	return r.timetag
}

// Len returns the length in bytes of the bundle.
func (r *BundleReader) Len() int {
	return len(r.buf)
}

// Reset rewinds r to the first element.
func (r *BundleReader) Reset() {
	r.marker = bundleHeaderSize
}

// NextElement returns the next bundle element, without its size prefix.
// It returns io.EOF when all elements have been read. The returned slice
// aliases the bundle data.
func (r *BundleReader) NextElement() ([]byte, error) {
	if r.marker >= len(r.buf) {
		return nil, io.EOF
	}
	if len(r.buf)-r.marker < bit32Size {
		return nil, errors.Wrap(ErrBufferUnderrun, "NextElement: missing element size")
	}

	size := int64(binary.BigEndian.Uint32(r.buf[r.marker:]))
	start := r.marker + bit32Size
	if size > int64(len(r.buf)-start) {
		return nil, errors.Wrapf(ErrBufferUnderrun, "NextElement: element size %d exceeds bundle", size)
	}
	if size%bit32Size != 0 {
		return nil, errors.Wrapf(ErrMalformedHeader, "NextElement: element size %d isn't a multiple of 4", size)
	}

	r.marker = start + int(size)
	return r.buf[start:r.marker], nil
}

// NextMessage parses the next bundle element into m. It returns false when
// no elements remain. Bundles nested in r are reported as ErrNestedBundle.
func (r *BundleReader) NextMessage(m *MessageReader) (bool, error) {
	elem, err := r.NextElement()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if IsBundle(elem) {
		return false, errors.WithMessage(ErrNestedBundle, "NextMessage")
	}
	if err = m.Parse(elem); err != nil {
		return false, errors.WithMessage(err, "NextMessage")
	}
	return true, nil
}

// BundleWriter writes an OSC bundle into a caller supplied buffer. The
// capacity of the bundle is the length of that buffer.
type BundleWriter struct {
	buf    []byte
	marker int
}

// NewBundleWriter starts a bundle with timetag tt in b.
func NewBundleWriter(b []byte, tt Timetag) (*BundleWriter, error) {
	w := new(BundleWriter)
	if err := w.Reset(b, tt); err != nil {
		return nil, err
	}
	return w, nil
}

// Reset discards any written messages and starts a new bundle in b.
func (w *BundleWriter) Reset(b []byte, tt Timetag) error {
	*w = BundleWriter{}
	if len(b) < bundleHeaderSize {
		return errors.Wrapf(ErrBufferOverrun, "NewBundleWriter: bundle header needs %d bytes, buffer holds %d", bundleHeaderSize, len(b))
	}

	copy(b, bundleTag)
	binary.BigEndian.PutUint64(b[len(bundleTag):], uint64(tt))
	*w = BundleWriter{buf: b, marker: bundleHeaderSize}
	return nil
}

// WriteMessage appends an OSC message to the bundle, see the WriteMessage
// function for the arguments. It returns the number of bytes added, which
// includes the 4 byte element size. If the message doesn't fit, nothing is
// written and ErrBufferOverrun is returned.
func (w *BundleWriter) WriteMessage(address, format string, args ...interface{}) (int, error) {
	if w.buf == nil {
		return 0, errors.Wrap(ErrBufferOverrun, "BundleWriter.WriteMessage: bundle not started")
	}
	if len(w.buf)-w.marker < bit32Size {
		return 0, errors.Wrapf(ErrBufferOverrun, "BundleWriter.WriteMessage: bundle full at %d bytes", w.marker)
	}

	start := w.marker + bit32Size
	n, err := WriteMessage(w.buf[start:], address, format, args...)
	if err != nil {
		return 0, errors.WithMessage(err, "BundleWriter")
	}

	binary.BigEndian.PutUint32(w.buf[w.marker:start], uint32(n))
	w.marker = start + n
	return bit32Size + n, nil
}

// Len returns the number of bytes in the bundle so far.
func (w *BundleWriter) Len() int {
	return w.marker
}

// Bytes returns the encoded bundle.
func (w *BundleWriter) Bytes() []byte {
	return w.buf[:w.marker]
}

////
// Bundle values
////

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC messages. The
// OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Messages []*Message
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle to be processed immediately.
func NewBundle(msgs ...*Message) *Bundle {
	return &Bundle{Timetag: NewImmediateTimetag(), Messages: msgs}
}

// NewBundleWithTime returns an OSC Bundle for the given time.
func NewBundleWithTime(t time.Time, msgs ...*Message) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t), Messages: msgs}
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Append appends messages to the bundle.
func (b *Bundle) Append(msgs ...*Message) {
	b.Messages = append(b.Messages, msgs...)
}

// Size returns the encoded size of the bundle.
func (b *Bundle) Size() (int, error) {
	n := bundleHeaderSize
	for _, m := range b.Messages {
		size, err := m.Size()
		if err != nil {
			return 0, err
		}
		n += bit32Size + size
	}
	return n, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	n, err := b.Size()
	if err != nil {
		return nil, errors.WithMessage(err, "Bundle.MarshalBinary")
	}
	if n > MaxPacketSize {
		return nil, errors.Wrapf(ErrBufferOverrun, "Bundle.MarshalBinary: packet too large: %d", n)
	}

	data := make([]byte, n)
	if _, err = b.AppendTo(data); err != nil {
		return nil, err
	}
	return data, nil
}

// AppendTo writes the bundle into data and returns the number of bytes
// written.
func (b *Bundle) AppendTo(data []byte) (int, error) {
	w, err := NewBundleWriter(data, b.Timetag)
	if err != nil {
		return 0, err
	}

	for _, m := range b.Messages {
		tags, args, err := m.encodable()
		if err != nil {
			return 0, errors.WithMessage(err, "Bundle.AppendTo")
		}
		if _, err = w.WriteMessage(m.Address, tags, args...); err != nil {
			return 0, err
		}
	}
	return w.Len(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. The
// data is copied; blob arguments don't alias it.
func (b *Bundle) UnmarshalBinary(d []byte) error {
	data := make([]byte, len(d))
	copy(data, d)

	return b.unmarshalBinary(data)
}

// unmarshalBinary is the actual implementation, it doesn't copy, so we can
// use a single copy for ParsePacket.
func (b *Bundle) unmarshalBinary(data []byte) error {
	var r BundleReader
	if err := r.Parse(data); err != nil {
		return err
	}

	b.Timetag = r.Timetag()
	b.Messages = b.Messages[:0]

	var mr MessageReader
	for {
		ok, err := r.NextMessage(&mr)
		if err != nil {
			return errors.WithMessage(err, "Bundle.UnmarshalBinary")
		}
		if !ok {
			return nil
		}

		m := &Message{Address: mr.Address()}
		if m.Arguments, err = mr.Arguments(); err != nil {
			return errors.WithMessage(err, "Bundle.UnmarshalBinary")
		}
		b.Messages = append(b.Messages, m)
	}
}
