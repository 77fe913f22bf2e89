package gpio

import (
	"errors"
	"sync"
)

// FakeButtons is a test double that returns scripted button states.
type FakeButtons struct {
	// Samples contains scripted states to return.
	// Each call to Read() consumes the next sample.
	Samples []ButtonStates

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []ButtonStates) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButtons) Read() (ButtonStates, error) {
	if f.ReadError != nil {
		return ButtonStates{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return ButtonStates{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOutput records every Set call for test assertions. Safe for concurrent
// use: the buzzer's one-shot off callback runs on another goroutine.
type FakeOutput struct {
	mu sync.Mutex

	// Sets contains every value passed to Set, in order.
	Sets []bool

	// SetError, if set, will be returned by Set()
	SetError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeOutput creates a FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the value.
func (f *FakeOutput) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Sets = append(f.Sets, on)
	return nil
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Level returns the last value set, or false if Set was never called.
func (f *FakeOutput) Level() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sets) == 0 {
		return false
	}
	return f.Sets[len(f.Sets)-1]
}

// History returns a copy of all recorded Set values.
func (f *FakeOutput) History() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.Sets))
	copy(out, f.Sets)
	return out
}
