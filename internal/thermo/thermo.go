// Package thermo reads the oven cavity temperature from a MAX6675
// thermocouple converter on SPI. The real implementation uses periph.io;
// the fake returns scripted readings.
package thermo

import (
	"errors"
	"time"
)

// MinRefresh is the minimum interval between bus reads. The MAX6675 needs
// around 220ms between conversions; sampling faster returns garbage.
const MinRefresh = 220 * time.Millisecond

// ErrOpenCircuit is returned when the converter reports a detached
// thermocouple.
var ErrOpenCircuit = errors.New("thermo: thermocouple open circuit")

// Sampler yields the current temperature in Celsius.
type Sampler interface {
	// Sample returns the temperature at now. Implementations may be
	// rate-limited internally; a rate-limited call silently returns the
	// last known value.
	Sample(now time.Time) (float64, error)

	// Close releases bus resources.
	Close() error
}

// Decode converts a raw 16-bit MAX6675 frame to Celsius.
// Bit 2 is the open-thermocouple flag; bits 14..3 are the reading in
// 0.25 degree steps.
func Decode(raw uint16) (float64, error) {
	if raw&0x4 != 0 {
		return 0, ErrOpenCircuit
	}
	return float64(raw>>3) * 0.25, nil
}
