// Package display drives the 16x2 character LCD behind a PCF8574 I2C
// backpack. The core hands it pre-formatted fixed-width lines; this package
// owns only the wire protocol.
package display

// Renderer is the display surface the control loop draws to.
type Renderer interface {
	// Render writes both lines. Lines longer than 16 columns are truncated;
	// shorter lines are padded with spaces so stale characters are cleared.
	Render(line0, line1 string) error

	// SetBacklight switches the backlight (and display) on or off.
	SetBacklight(on bool) error

	// Close releases bus resources.
	Close() error
}

// DefaultAddr is the usual PCF8574 backpack address.
const DefaultAddr = 0x27

const (
	cols = 16
	rows = 2
)

// padLine truncates or space-pads s to exactly the panel width.
func padLine(s string) string {
	if len(s) >= cols {
		return s[:cols]
	}
	b := make([]byte, cols)
	copy(b, s)
	for i := len(s); i < cols; i++ {
		b[i] = ' '
	}
	return string(b)
}
