package logic

// Adjustment bounds and step sizes. Settings clamp at their bounds rather
// than wrapping or rejecting.
const (
	ToastTimeMin  = 30  // seconds
	ToastTimeMax  = 600 // seconds
	ToastTimeStep = 15

	BakeTimeMin  = 30   // seconds
	BakeTimeMax  = 1200 // seconds
	BakeTimeStep = 30

	BakeTempMin  = 50  // Fahrenheit
	BakeTempMax  = 500 // Fahrenheit
	BakeTempStep = 25
)

// Settings holds the user-adjustable cook parameters. All fields stay within
// their declared bounds; mutation happens only through Adjust and
// ToggleOption while no cycle is running.
type Settings struct {
	ToastTime int // seconds
	BakeTime  int // seconds
	BakeTemp  int // Fahrenheit
	Option    SettingOption
}

// DefaultSettings returns power-on settings. Nothing is persisted across
// power loss.
func DefaultSettings() Settings {
	return Settings{
		ToastTime: 30,
		BakeTime:  300,
		BakeTemp:  350,
		Option:    OptionTemp,
	}
}

// Adjust moves the bound field for the given mode by one step in the given
// direction (+1 or -1), clamped to its bounds. Passthru has no adjustable
// settings.
func (s *Settings) Adjust(mode Mode, dir int) {
	switch mode {
	case ModeToast:
		s.ToastTime = clamp(s.ToastTime+dir*ToastTimeStep, ToastTimeMin, ToastTimeMax)
	case ModeBake:
		if s.Option == OptionTemp {
			s.BakeTemp = clamp(s.BakeTemp+dir*BakeTempStep, BakeTempMin, BakeTempMax)
		} else {
			s.BakeTime = clamp(s.BakeTime+dir*BakeTimeStep, BakeTimeMin, BakeTimeMax)
		}
	}
}

// ToggleOption flips the bake adjustment target between temperature and time.
func (s *Settings) ToggleOption() {
	if s.Option == OptionTemp {
		s.Option = OptionTime
	} else {
		s.Option = OptionTemp
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
