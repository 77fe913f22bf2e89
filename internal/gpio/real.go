//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButtons reads the front-panel buttons from actual hardware using the
// Linux GPIO character device.
type RealButtons struct {
	chip  *gpiocdev.Chip
	mode  *gpiocdev.Line
	up    *gpiocdev.Line
	down  *gpiocdev.Line
	start *gpiocdev.Line
}

// NewRealButtons requests the four button lines as pulled-up inputs.
// The buttons switch to ground, so the raw value is inverted on read.
func NewRealButtons(chipName string, pins ButtonPins) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip}
	for _, req := range []struct {
		name string
		pin  int
		dst  **gpiocdev.Line
	}{
		{"mode", pins.Mode, &b.mode},
		{"up", pins.Up, &b.up},
		{"down", pins.Down, &b.down},
		{"start", pins.Start, &b.start},
	} {
		line, err := chip.RequestLine(req.pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s button pin %d: %w", req.name, req.pin, err)
		}
		*req.dst = line
	}

	return b, nil
}

// Read returns the logical pressed state of each button.
// Inverts raw values: pulled-up lines read 0 when the button is pressed.
func (b *RealButtons) Read() (ButtonStates, error) {
	var st ButtonStates
	for _, l := range []struct {
		name string
		line *gpiocdev.Line
		dst  *bool
	}{
		{"mode", b.mode, &st.Mode},
		{"up", b.up, &st.Up},
		{"down", b.down, &st.Down},
		{"start", b.start, &st.Start},
	} {
		raw, err := l.line.Value()
		if err != nil {
			return ButtonStates{}, fmt.Errorf("read %s button: %w", l.name, err)
		}
		*l.dst = raw == 0
	}
	return st, nil
}

// Close releases the button lines and the chip handle.
func (b *RealButtons) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{b.mode, b.up, b.down, b.start} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close buttons: %v", errs)
	}
	return nil
}

// RealOutput drives a single output line (relay or buzzer).
type RealOutput struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealOutput requests the given pin as an output, initially low.
// The relay and buzzer must both start de-energized on power-up.
func NewRealOutput(chipName string, pin int) (*RealOutput, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}

	return &RealOutput{chip: chip, line: line}, nil
}

// Set drives the line.
func (o *RealOutput) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := o.line.SetValue(v); err != nil {
		return fmt.Errorf("set output: %w", err)
	}
	return nil
}

// Close drives the line low before releasing it, so the heater cannot be
// left energized across a daemon restart.
func (o *RealOutput) Close() error {
	var errs []error
	if o.line != nil {
		if err := o.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear output: %w", err))
		}
		if err := o.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close output: %v", errs)
	}
	return nil
}
