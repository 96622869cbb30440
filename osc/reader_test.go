package osc

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestMessageReader_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format string
		arg    interface{}
		read   func(m *MessageReader) (interface{}, error)
	}{
		{"int32", "i", int32(-123456), func(m *MessageReader) (interface{}, error) { return m.NextInt32() }},
		{"int32_max", "i", int32(math.MaxInt32), func(m *MessageReader) (interface{}, error) { return m.NextInt32() }},
		{"float32", "f", float32(3.25), func(m *MessageReader) (interface{}, error) { return m.NextFloat32() }},
		{"float32_inf", "f", float32(math.Inf(-1)), func(m *MessageReader) (interface{}, error) { return m.NextFloat32() }},
		{"string", "s", "hello world", func(m *MessageReader) (interface{}, error) { return m.NextString() }},
		{"empty_string", "s", "", func(m *MessageReader) (interface{}, error) { return m.NextString() }},
		{"blob", "b", []byte{0, 1, 2, 3, 4}, func(m *MessageReader) (interface{}, error) { return m.NextBlob() }},
		{"empty_blob", "b", []byte{}, func(m *MessageReader) (interface{}, error) { return m.NextBlob() }},
		{"int64", "h", int64(math.MinInt64), func(m *MessageReader) (interface{}, error) { return m.NextInt64() }},
		{"float64", "d", math.Pi, func(m *MessageReader) (interface{}, error) { return m.NextFloat64() }},
		{"timetag", "t", NewTimetag(3912345678, 0x80000000), func(m *MessageReader) (interface{}, error) { return m.NextTimetag() }},
		{"midi", "m", MIDI{1, 0x90, 64, 100}, func(m *MessageReader) (interface{}, error) { return m.NextMIDI() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 128)
			n, err := WriteMessage(buf, "/round/trip", tt.format, tt.arg)
			if err != nil {
				t.Fatalf("WriteMessage() error = %v", err)
			}

			m, err := ParseMessage(buf[:n])
			if err != nil {
				t.Fatalf("ParseMessage() error = %v", err)
			}
			if m.Address() != "/round/trip" {
				t.Errorf("Address() = %q", m.Address())
			}
			if m.Format() != tt.format {
				t.Errorf("Format() = %q, want %q", m.Format(), tt.format)
			}

			got, err := tt.read(m)
			if err != nil {
				t.Fatalf("read error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.arg) {
				t.Errorf("read got = %#v, want %#v", got, tt.arg)
			}
			if m.marker != n {
				t.Errorf("read head at %d, want %d", m.marker, n)
			}

			m.Reset()
			got, err = m.Next()
			if err != nil || !reflect.DeepEqual(got, tt.arg) {
				t.Errorf("Next() = %#v, %v, want %#v", got, err, tt.arg)
			}
		})
	}
}

func TestMessageReader_NoPayloadTags(t *testing.T) {
	buf := make([]byte, 64)
	n, err := WriteMessage(buf, "/flags", "TiFNI", int32(5))
	if err != nil {
		t.Fatal(err)
	}
	m, err := ParseMessage(buf[:n])
	if err != nil {
		t.Fatal(err)
	}

	if v, err := m.NextBool(); err != nil || !v {
		t.Errorf("NextBool() = %v, %v, want true", v, err)
	}
	if v, err := m.NextInt32(); err != nil || v != 5 {
		t.Errorf("NextInt32() = %v, %v, want 5", v, err)
	}
	if v, err := m.NextBool(); err != nil || v {
		t.Errorf("NextBool() = %v, %v, want false", v, err)
	}
	if err := m.NextNil(); err != nil {
		t.Errorf("NextNil() error = %v", err)
	}
	if err := m.NextImpulse(); err != nil {
		t.Errorf("NextImpulse() error = %v", err)
	}
	if _, err := m.NextBool(); !errors.Is(err, ErrNoMoreArguments) {
		t.Errorf("NextBool() past the end error = %v", err)
	}
}

func TestMessageReader_Reset(t *testing.T) {
	buf := make([]byte, 128)
	n, err := WriteMessage(buf, "/reset", "isfbT", int32(1), "two", float32(3), []byte{4})
	if err != nil {
		t.Fatal(err)
	}
	m, err := ParseMessage(buf[:n])
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.Arguments()
	if err != nil {
		t.Fatal(err)
	}
	if m.Remaining() != 0 {
		t.Errorf("Remaining() = %d after reading everything", m.Remaining())
	}

	for i := 0; i < 3; i++ {
		m.Reset()
		if m.Remaining() != 5 {
			t.Errorf("Remaining() = %d after Reset, want 5", m.Remaining())
		}
		var again []interface{}
		for m.Remaining() > 0 {
			arg, err := m.Next()
			if err != nil {
				t.Fatal(err)
			}
			again = append(again, arg)
		}
		if !reflect.DeepEqual(first, again) {
			t.Errorf("pass %d got = %v, want %v", i, again, first)
		}
	}
}

func TestMessageReader_TypeMismatch(t *testing.T) {
	buf := make([]byte, 64)
	n, _ := WriteMessage(buf, "/a", "fi", float32(1), int32(2))
	m, err := ParseMessage(buf[:n])
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.NextInt32(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NextInt32() on 'f' error = %v, want ErrTypeMismatch", err)
	}
	if _, err := m.NextBool(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NextBool() on 'f' error = %v, want ErrTypeMismatch", err)
	}
	if m.NextTag() != TypeFloat32 || m.Remaining() != 2 {
		t.Errorf("failed read moved the read head")
	}
	if v, err := m.NextFloat32(); err != nil || v != 1 {
		t.Errorf("NextFloat32() = %v, %v", v, err)
	}
	if v, err := m.NextInt32(); err != nil || v != 2 {
		t.Errorf("NextInt32() = %v, %v", v, err)
	}
	if _, err := m.NextInt32(); !errors.Is(err, ErrNoMoreArguments) {
		t.Errorf("NextInt32() past the end error = %v, want ErrNoMoreArguments", err)
	}
	if _, err := m.Next(); !errors.Is(err, ErrNoMoreArguments) {
		t.Errorf("Next() past the end error = %v, want ErrNoMoreArguments", err)
	}
	if m.NextTag() != TypeInvalid {
		t.Errorf("NextTag() = %c past the end", m.NextTag())
	}
}

func TestMessageReader_Underrun(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		read func(m *MessageReader) error
	}{
		{"int32", raw("/a", nulls(2), ",i", nulls(2)), func(m *MessageReader) error { _, err := m.NextInt32(); return err }},
		{"float32", raw("/a", nulls(2), ",f", nulls(2)), func(m *MessageReader) error { _, err := m.NextFloat32(); return err }},
		{"midi", raw("/a", nulls(2), ",m", nulls(2)), func(m *MessageReader) error { _, err := m.NextMIDI(); return err }},
		{"int64", raw("/a", nulls(2), ",h", nulls(2), "\x00\x00\x00\x01"), func(m *MessageReader) error { _, err := m.NextInt64(); return err }},
		{"float64", raw("/a", nulls(2), ",d", nulls(2), "\x00\x00\x00\x01"), func(m *MessageReader) error { _, err := m.NextFloat64(); return err }},
		{"timetag", raw("/a", nulls(2), ",t", nulls(2), "\x00\x00\x00\x01"), func(m *MessageReader) error { _, err := m.NextTimetag(); return err }},
		{"string", raw("/a", nulls(2), ",s", nulls(2), "abcd"), func(m *MessageReader) error { _, err := m.NextString(); return err }},
		{"string_missing", raw("/a", nulls(2), ",s", nulls(2)), func(m *MessageReader) error { _, err := m.NextString(); return err }},
		{"blob_length", raw("/a", nulls(2), ",b", nulls(2), "\x00\x00\x00\x08abcd"), func(m *MessageReader) error { _, err := m.NextBlob(); return err }},
		{"blob_missing", raw("/a", nulls(2), ",b", nulls(2)), func(m *MessageReader) error { _, err := m.NextBlob(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMessage(tt.buf)
			if err != nil {
				t.Fatalf("ParseMessage() error = %v", err)
			}
			if err := tt.read(m); !errors.Is(err, ErrBufferUnderrun) {
				t.Errorf("read error = %v, want ErrBufferUnderrun", err)
			}
			if m.marker != m.args || m.Remaining() != 1 {
				t.Errorf("failed read moved the read head")
			}
			if _, err := m.Arguments(); !errors.Is(err, ErrBufferUnderrun) {
				t.Errorf("Arguments() error = %v, want ErrBufferUnderrun", err)
			}
		})
	}
}

func TestMessageReader_UnknownTag(t *testing.T) {
	m, err := ParseMessage(raw("/a", nulls(2), ",ix", nulls(1), "\x00\x00\x00\x01"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := m.Next(); !errors.Is(err, ErrUnknownTypeTag) {
		t.Errorf("Next() error = %v, want ErrUnknownTypeTag", err)
	}
	if _, err := m.Arguments(); !errors.Is(err, ErrUnknownTypeTag) {
		t.Errorf("Arguments() error = %v, want ErrUnknownTypeTag", err)
	}
}

func TestParseMessage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"nil", nil},
		{"too_short", []byte("/a\x00\x00")},
		{"not_aligned", raw("/a", nulls(2), ",", nulls(3), "x")},
		{"no_slash", raw("a", nulls(3), ",", nulls(3))},
		{"no_comma", raw("/a", nulls(2), "i", nulls(3))},
		{"address_not_terminated", []byte("/abcdefg")},
		{"type_tags_not_terminated", raw("/a", nulls(2), ",iii")},
		{"type_tags_missing", raw("/abc", nulls(4))},
		{"bundle", raw("#bundle", zero, nulls(8))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMessage(tt.buf)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("ParseMessage() error = %v, want ErrMalformedHeader", err)
			}
			if m != nil {
				t.Errorf("ParseMessage() returned a reader on error")
			}

			var r MessageReader
			if err := r.Parse(tt.buf); err == nil || r.buf != nil {
				t.Errorf("Parse() left the reader usable")
			}
		})
	}
}

func TestMessageReader_String(t *testing.T) {
	buf := make([]byte, 128)
	n, _ := WriteMessage(buf, "/s", "isbmTN", int32(7), "x", []byte{0xab}, MIDI{0, 0x90, 1, 2})
	m, err := ParseMessage(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	m.NextInt32()

	want := "[32 bytes] /s ,isbmTN 7 x [1]ab 00 90 01 02 T Nil"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if m.Remaining() != 5 {
		t.Errorf("String() moved the read head")
	}
}

func TestDump(t *testing.T) {
	if got := Dump(messageTestCases[0].raw); got != "[16 bytes] /pot_1 ,i 42" {
		t.Errorf("Dump(message) = %q", got)
	}

	got := Dump(bundleTestCases[1].raw)
	for _, want := range []string{"#bundle", "/pot_1 ,i 42", "/pot_2 ,i 7"} {
		if !strings.Contains(got, want) {
			t.Errorf("Dump(bundle) = %q, missing %q", got, want)
		}
	}

	if got := Dump([]byte("junk")); !strings.Contains(got, "invalid message") {
		t.Errorf("Dump(junk) = %q", got)
	}
}

func BenchmarkMessageReader(b *testing.B) {
	buf := make([]byte, 128)
	n, _ := WriteMessage(buf, "/composition/layers/1/clips/1/transport/position", "ds", 0.123456789, "hello world")
	var m MessageReader
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Parse(buf[:n]); err != nil {
			b.Fatal(err)
		}
		_, _ = m.NextFloat64()
		_, _ = m.NextString()
	}
}
