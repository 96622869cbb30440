// Package sensor provides the values sent by the OSC programs in examples/.
package sensor

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Source produces an integer value on demand.
type Source interface {
	Read() (int32, error)
}

// Func adapts a function to the Source interface.
type Func func() (int32, error)

// Read calls f.
func (f Func) Read() (int32, error) {
	return f()
}

// IIOChannel reads raw samples of a Linux Industrial I/O ADC channel from
// sysfs, e.g. /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type IIOChannel struct {
	Path string
}

// NewIIOChannel returns the IIOChannel for voltage channel ch of device dev.
func NewIIOChannel(dev, ch int) *IIOChannel {
	return &IIOChannel{
		Path: "/sys/bus/iio/devices/iio:device" + strconv.Itoa(dev) + "/in_voltage" + strconv.Itoa(ch) + "_raw",
	}
}

// Read returns the current raw sample.
func (c *IIOChannel) Read() (int32, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		return 0, errors.Wrap(err, "iio")
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "iio: %s", c.Path)
	}
	return int32(v), nil
}

// AdcBits is the resolution of the ADCs a Pot reads.
const AdcBits = 12

// Pot is a potentiometer wired to an ADC with AdcBits of resolution.
// Read scales the reading to a 7 bit MIDI value.
type Pot struct {
	ADC Source
}

// NewPot returns a Pot reading from adc.
func NewPot(adc Source) *Pot {
	return &Pot{ADC: adc}
}

// RawValue returns the unscaled ADC reading, clamped to the ADC range.
func (p *Pot) RawValue() (int32, error) {
	v, err := p.ADC.Read()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, nil
	}
	if top := int32(1)<<AdcBits - 1; v > top {
		return top, nil
	}
	return v, nil
}

// Read returns the reading as a MIDI value in the range 0 to 127.
func (p *Pot) Read() (int32, error) {
	v, err := p.RawValue()
	if err != nil {
		return 0, err
	}
	return v >> (AdcBits - 7), nil
}
