package logic

import (
	"fmt"
	"math"
	"time"
)

// DisplayCols and DisplayRows describe the character LCD the controller
// formats for. Lines returned by the formatting helpers are always exactly
// DisplayCols wide so stale characters never survive a redraw.
const (
	DisplayCols = 16
	DisplayRows = 2
)

// secondsNone is the DisplayCache sentinel for "not running".
const secondsNone = -1

// secondsLeft converts the countdown to the integer value shown on screen.
func secondsLeft(remaining time.Duration) int {
	s := int(math.Round(float64(remaining.Milliseconds()) / 1000.0))
	if s < 0 {
		return 0
	}
	return s
}

var modeNames = map[Mode]string{
	ModeToast:    "     Toast      ",
	ModeBake:     "      Bake      ",
	ModePassthru: "    Passthru    ",
}

// idleLines formats the selection screen: mode name plus the active setting.
func idleLines(mode Mode, s Settings) (string, string) {
	line0 := modeNames[mode]
	var line1 string
	switch mode {
	case ModeToast:
		line1 = fmt.Sprintf("  Time: %02d:%02d   ", s.ToastTime/60, s.ToastTime%60)
	case ModeBake:
		if s.Option == OptionTemp {
			line1 = fmt.Sprintf("   Temp: %3dF   ", s.BakeTemp)
		} else {
			line1 = fmt.Sprintf("   Time: %02d:%02d  ", s.BakeTime/60, s.BakeTime%60)
		}
	default:
		line1 = "                "
	}
	return line0, line1
}

// runningLines formats the in-cycle screen. Bake shows the live temperature
// and countdown together; toast shows the countdown; passthru is static.
func runningLines(mode Mode, stage Stage, tempC float64, secs int) (string, string) {
	var line0, line1 string
	switch mode {
	case ModeToast:
		line0 = "  Toasting...   "
		line1 = fmt.Sprintf("Time Left: %02d:%02d", secs/60, secs%60)
	case ModeBake:
		switch stage {
		case StagePreheating:
			line0 = " Preheating...  "
		case StageReady:
			line0 = "Ready:Press MODE"
		default:
			line0 = "   Baking...    "
		}
		line1 = fmt.Sprintf("%6.2fF    %02d:%02d", CelsiusToFahrenheit(tempC), secs/60, secs%60)
	default:
		line0 = "    Passthru    "
		line1 = "   Running...   "
	}
	return line0, line1
}
