// Package gpio provides button input reading and relay/buzzer output driving
// with hardware abstraction. The real implementations use the Linux GPIO
// character device; the fakes allow testing without hardware.
package gpio

// ButtonStates holds one tick's active-level reads for all four buttons.
// The raw pins are pulled up and active-low; Read implementations return
// the already-inverted logical value (true = pressed).
type ButtonStates struct {
	Mode  bool
	Up    bool
	Down  bool
	Start bool
}

// ButtonReader reads the four front-panel buttons.
type ButtonReader interface {
	// Read returns the logical (pressed) state of each button.
	Read() (ButtonStates, error)

	// Close releases GPIO resources.
	Close() error
}

// Output drives a single output line (heater relay, buzzer).
type Output interface {
	// Set drives the line high (true) or low (false). Idempotent.
	Set(on bool) error

	// Close drives the line low and releases it.
	Close() error
}

// Pin definitions (BCM numbering), matching the controller board layout.
const (
	DefaultPinBtnMode  = 16
	DefaultPinBtnUp    = 17
	DefaultPinBtnDown  = 18
	DefaultPinBtnStart = 19

	DefaultPinRelay  = 7
	DefaultPinBuzzer = 20
)

// DefaultChip is the GPIO character device the lines live on.
const DefaultChip = "gpiochip0"

// ButtonPins maps each logical button to its BCM pin number.
type ButtonPins struct {
	Mode  int
	Up    int
	Down  int
	Start int
}

// DefaultButtonPins returns the board's button wiring.
func DefaultButtonPins() ButtonPins {
	return ButtonPins{
		Mode:  DefaultPinBtnMode,
		Up:    DefaultPinBtnUp,
		Down:  DefaultPinBtnDown,
		Start: DefaultPinBtnStart,
	}
}
