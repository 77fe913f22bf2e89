package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// HD44780 command set, as driven through the PCF8574 backpack.
const (
	lcdClearDisplay   = 0x01
	lcdEntryModeSet   = 0x04
	lcdDisplayControl = 0x08
	lcdFunctionSet    = 0x20

	lcdEntryLeft = 0x02
	lcdDisplayOn = 0x04
	lcd2Line     = 0x08

	lcdBacklightBit = 0x08
	lcdEnableBit    = 0x04
	lcdRegCharacter = 0x01
	lcdRegCommand   = 0x00
)

// The controller needs settle time around each enable pulse.
const enableDelay = 600 * time.Microsecond

// RealRenderer drives an HD44780 in 4-bit mode over a PCF8574 I2C expander.
type RealRenderer struct {
	bus       i2c.BusCloser
	dev       *i2c.Dev
	backlight bool
}

// NewRealRenderer opens the given I2C bus (empty string selects the first
// registered bus) and initializes the panel. periph's host drivers must
// already be initialized.
func NewRealRenderer(busName string, addr uint16) (*RealRenderer, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	r := &RealRenderer{
		bus:       bus,
		dev:       &i2c.Dev{Bus: bus, Addr: addr},
		backlight: true,
	}

	if err := r.init(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("init lcd: %w", err)
	}
	return r, nil
}

// init runs the 4-bit mode reset dance and configures the panel.
func (r *RealRenderer) init() error {
	for _, b := range []byte{0x03, 0x03, 0x03, 0x02} {
		if err := r.sendByte(b, lcdRegCommand); err != nil {
			return err
		}
	}
	for _, b := range []byte{
		lcdEntryModeSet | lcdEntryLeft,
		lcdFunctionSet | lcd2Line,
		lcdDisplayControl | lcdDisplayOn,
		lcdClearDisplay,
	} {
		if err := r.sendByte(b, lcdRegCommand); err != nil {
			return err
		}
	}
	return nil
}

// Render writes both lines, padded to the full panel width.
func (r *RealRenderer) Render(line0, line1 string) error {
	for row, line := range []string{padLine(line0), padLine(line1)} {
		if err := r.setCursor(row, 0); err != nil {
			return err
		}
		for i := 0; i < len(line); i++ {
			if err := r.sendByte(line[i], lcdRegCharacter); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetBacklight switches the backlight and the display driver together.
// The backlight bit rides along on every subsequent expander write.
func (r *RealRenderer) SetBacklight(on bool) error {
	r.backlight = on
	cmd := byte(lcdDisplayControl)
	if on {
		cmd |= lcdDisplayOn
	}
	return r.sendByte(cmd, lcdRegCommand)
}

// Close blanks the display and releases the bus.
func (r *RealRenderer) Close() error {
	if err := r.sendByte(lcdClearDisplay, lcdRegCommand); err != nil {
		r.bus.Close()
		return err
	}
	return r.bus.Close()
}

func (r *RealRenderer) setCursor(row, col int) error {
	addr := byte(0x80 + col)
	if row == 1 {
		addr = byte(0xC0 + col)
	}
	return r.sendByte(addr, lcdRegCommand)
}

// sendByte delivers one byte as two backlit nibbles, pulsing enable for each.
func (r *RealRenderer) sendByte(val byte, reg byte) error {
	bl := byte(0)
	if r.backlight {
		bl = lcdBacklightBit
	}
	high := reg | (val & 0xF0) | bl
	low := reg | ((val << 4) & 0xF0) | bl

	for _, nib := range []byte{high, low} {
		if err := r.writeExpander(nib); err != nil {
			return err
		}
		if err := r.pulseEnable(nib); err != nil {
			return err
		}
	}
	return nil
}

func (r *RealRenderer) pulseEnable(val byte) error {
	time.Sleep(enableDelay)
	if err := r.writeExpander(val | lcdEnableBit); err != nil {
		return err
	}
	time.Sleep(enableDelay)
	if err := r.writeExpander(val &^ lcdEnableBit); err != nil {
		return err
	}
	time.Sleep(enableDelay)
	return nil
}

func (r *RealRenderer) writeExpander(b byte) error {
	if err := r.dev.Tx([]byte{b}, nil); err != nil {
		return fmt.Errorf("i2c write: %w", err)
	}
	return nil
}
