package thermo

import (
	"errors"
	"time"
)

// FakeSampler is a test double that returns scripted temperatures.
type FakeSampler struct {
	// Readings contains scripted Celsius values to return.
	// Each call to Sample() consumes the next reading.
	Readings []float64

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// SampleError, if set, will be returned by Sample()
	SampleError error
}

// NewFakeSampler creates a FakeSampler with the given readings.
func NewFakeSampler(readings []float64) *FakeSampler {
	return &FakeSampler{Readings: readings}
}

// Sample returns the next scripted reading.
// If readings are exhausted, returns the last reading repeatedly.
func (f *FakeSampler) Sample(now time.Time) (float64, error) {
	if f.SampleError != nil {
		return 0, f.SampleError
	}

	if len(f.Readings) == 0 {
		return 0, errors.New("no readings configured")
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}

	return r, nil
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the sampler to the beginning of readings.
func (f *FakeSampler) Reset() {
	f.index = 0
	f.Closed = false
}
