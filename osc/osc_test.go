package osc

import "strings"

const zero = string(byte(0))

// nulls returns a string of `i` nulls.
func nulls(i int) string {
	return strings.Repeat(zero, i)
}

// raw concatenates wire fragments.
func raw(parts ...string) []byte {
	return []byte(strings.Join(parts, ""))
}

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		"pot",
		NewMessage("/pot_1", int32(42)),
		raw("/pot_1", nulls(2), ",i", nulls(2), "\x00\x00\x00\x2a"),
		false,
	},
	{
		"no_arguments",
		&Message{Address: "/ping", Arguments: []interface{}{}},
		raw("/ping", nulls(3), ",", nulls(3)),
		false,
	},
	{
		"strings",
		NewMessage("/address/test", "teststring", "abc"),
		raw("/address/test", nulls(3), ",ss", nulls(1), "teststring", nulls(2), "abc", nulls(1)),
		false,
	},
	{
		"all_types",
		NewMessage("/a",
			int32(-1),
			float32(1.5),
			"hello",
			[]byte{1, 2, 3},
			int64(1<<40),
			float64(0.25),
			NewImmediateTimetag(),
			MIDI{0, 0x90, 60, 127},
			true,
			false,
			nil,
			Impulse{},
		),
		raw(
			"/a", nulls(2),
			",ifsbhdtmTFNI", nulls(3),
			"\xff\xff\xff\xff",
			"\x3f\xc0\x00\x00",
			"hello", nulls(3),
			"\x00\x00\x00\x03\x01\x02\x03\x00",
			"\x00\x00\x01\x00\x00\x00\x00\x00",
			"\x3f\xd0\x00\x00\x00\x00\x00\x00",
			"\x00\x00\x00\x00\x00\x00\x00\x01",
			"\x00\x90\x3c\x7f",
		),
		false,
	},
}

var bundleTestCases = []testCase{
	{
		"empty",
		&Bundle{Timetag: NewImmediateTimetag()},
		raw("#bundle", zero, "\x00\x00\x00\x00\x00\x00\x00\x01"),
		false,
	},
	{
		"two_messages",
		&Bundle{
			Timetag: NewTimetag(1, 2),
			Messages: []*Message{
				NewMessage("/pot_1", int32(42)),
				NewMessage("/pot_2", int32(7)),
			},
		},
		raw(
			"#bundle", zero, "\x00\x00\x00\x01\x00\x00\x00\x02",
			"\x00\x00\x00\x10", "/pot_1", nulls(2), ",i", nulls(2), "\x00\x00\x00\x2a",
			"\x00\x00\x00\x10", "/pot_2", nulls(2), ",i", nulls(2), "\x00\x00\x00\x07",
		),
		false,
	},
}
