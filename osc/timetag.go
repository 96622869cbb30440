package osc

import (
	"encoding/binary"
	"time"
)

const (
	// ImmediateValue is the value of the time tag meaning "immediately".
	ImmediateValue = uint64(1)

	secondsFrom1900To1970 = 2208988800
)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
type Timetag uint64

// NewTimetag returns a time tag from its seconds and fraction parts.
func NewTimetag(seconds, fraction uint32) Timetag {
	return Timetag(uint64(seconds)<<32 | uint64(fraction))
}

// NewImmediateTimetag returns the time tag meaning "immediately".
func NewImmediateTimetag() Timetag {
	return Timetag(ImmediateValue)
}

// NewTimetagFromTime returns a new OSC time tag object from a time.Time.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	return Timetag(timeToTimetag(timeStamp))
}

// Now returns the time tag for the current time.
func Now() Timetag {
	return NewTimetagFromTime(time.Now())
}

// Time returns the time.
func (t Timetag) Time() time.Time {
	return timetagToTime(t)
}

// FractionalSecond returns the last 32 bits of the OSC time tag. Specifies the
// fractional part of a second.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// SecondsSinceEpoch returns the first 32 bits (the number of seconds since the
// midnight 1900) from the OSC time tag.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// TimeTag returns the time tag value
func (t Timetag) TimeTag() uint64 {
	return uint64(t)
}

// IsImmediate reports whether t means "immediately".
func (t Timetag) IsImmediate() bool {
	return uint64(t) == ImmediateValue
}

// MarshalBinary converts the OSC time tag to a byte array.
func (t Timetag) MarshalBinary() (b []byte, err error) {
	b = make([]byte, bit64Size)
	binary.BigEndian.PutUint64(b, uint64(t))
	return
}

// SetTime sets the value of the OSC time tag.
func (t *Timetag) SetTime(time time.Time) {
	*t = Timetag(timeToTimetag(time))
}

// ExpiresIn calculates the number of seconds until the current time is the
// same as the value of the time tag. It returns zero if the value of the
// time tag is in the past.
func (t Timetag) ExpiresIn() time.Duration {
	if t <= 1 {
		return 0
	}

	seconds := time.Until(timetagToTime(t))
	if seconds <= 0 {
		return 0
	}

	return seconds
}

// timeToTimetag converts the given time to an OSC time tag.
//
// The time tag value consisting of 63 zero bits followed by a one in the least
// significant bit is a special case meaning "immediately."
func timeToTimetag(t time.Time) uint64 {
	seconds := uint64(t.Unix()+secondsFrom1900To1970) << 32
	fraction := (uint64(t.Nanosecond()) << 32) / uint64(time.Second)
	return seconds | fraction
}

// timetagToTime converts the given timetag to a time object.
func timetagToTime(timetag Timetag) time.Time {
	seconds := int64(timetag>>32) - secondsFrom1900To1970
	nanos := (uint64(timetag&0xffffffff) * uint64(time.Second)) >> 32
	return time.Unix(seconds, int64(nanos))
}
