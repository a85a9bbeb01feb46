package director

import (
	"errors"
	"fmt"
	"sort"
)

// Scenario is a scripted session on the watch display: the forecast shown
// and the button presses replayed against it.
type Scenario struct {
	Version   string  `yaml:"version"`
	Page      string  `yaml:"page"`     // "forecast" или "wind"
	Duration  float64 `yaml:"duration"` // Total duration in seconds
	StartHour int     `yaml:"start_hour"`
	Display   Display `yaml:"display"`
	Vane      *Vane   `yaml:"vane,omitempty"`
	Slots     []Slot  `yaml:"slots"`
	Steps     []Step  `yaml:"steps"`
}

// Display describes the screen the scenario runs on
type Display struct {
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Round   bool `yaml:"round"`
	Animate bool `yaml:"animate"`
	Offsets bool `yaml:"offsets"` // сдвиги аксессуаров
}

// Slot is one forecast hour
type Slot struct {
	Label     string `yaml:"label"`
	Text      string `yaml:"text,omitempty"`
	Icon      string `yaml:"icon"` // путь к .pdc или .yaml относительно сценария
	Accessory int    `yaml:"accessory,omitempty"`
}

// Vane describes the wind page
type Vane struct {
	Cardinal string `yaml:"cardinal"` // стрелка на восток
	Diagonal string `yaml:"diagonal"` // стрелка на юго-восток
	Origin   bool   `yaml:"origin"`
	Hours    []Wind `yaml:"hours"`
}

type Wind struct {
	Label   string `yaml:"label"`
	Degrees int    `yaml:"degrees"`
	Speed   int    `yaml:"speed"`
}

// Step is a button press at a given time
type Step struct {
	Time   float64 `yaml:"time"`   // Time offset in seconds
	Action string  `yaml:"action"` // up, down, stop, animate, static
}

const (
	PageForecast = "forecast"
	PageWind     = "wind"

	ActionUp      = "up"
	ActionDown    = "down"
	ActionStop    = "stop"
	ActionAnimate = "animate"
	ActionStatic  = "static"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Validate checks the scenario and sorts its steps by time
func (s *Scenario) Validate() error {
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalidScenario, s.Display.Width, s.Display.Height)
	}
	switch s.Page {
	case "", PageForecast:
		if len(s.Slots) == 0 {
			return fmt.Errorf("%w: no slots", ErrInvalidScenario)
		}
	case PageWind:
		if s.Vane == nil || len(s.Vane.Hours) == 0 {
			return fmt.Errorf("%w: wind page without vane hours", ErrInvalidScenario)
		}
	default:
		return fmt.Errorf("%w: unknown page %q", ErrInvalidScenario, s.Page)
	}
	for i, st := range s.Steps {
		if st.Time < 0 {
			return fmt.Errorf("%w: step %d at negative time", ErrInvalidScenario, i)
		}
		switch st.Action {
		case ActionUp, ActionDown, ActionStop, ActionAnimate, ActionStatic:
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i, st.Action)
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].Time < s.Steps[j].Time })

	if s.Duration <= 0 && len(s.Steps) > 0 {
		s.Duration = s.Steps[len(s.Steps)-1].Time + 1
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: zero duration", ErrInvalidScenario)
	}
	return nil
}
