package director

import (
	"fmt"

	"github.com/ivlev/kimaybe/internal/pdc"
)

const (
	cardinalRef = "icons/arrow.yaml"
	diagonalRef = "icons/arrow_diagonal.yaml"
)

// Director generates demo scenarios for the watch display
type Director struct {
	Width, Height int
	Round         bool
	Intro         float64 // Pause before the first press (seconds)
	MinDwell      float64 // Minimum time per hour (seconds)
}

// NewDirector creates a new Director with default settings
func NewDirector(width, height int) *Director {
	return &Director{
		Width:    width,
		Height:   height,
		Intro:    0.5,
		MinDwell: 0.4,
	}
}

// GenerateScenario creates a forecast of hours slots, pages down to the last
// hour and back up, spending dwell seconds on each.
func (d *Director) GenerateScenario(hours int, dwell float64) (*Scenario, error) {
	if hours < 2 {
		return nil, fmt.Errorf("need at least 2 hours, got %d", hours)
	}
	// короче перехода нельзя: нажатия во время анимации игнорируются
	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}

	s := &Scenario{
		Version: "1.0",
		Page:    PageForecast,
		Display: Display{
			Width:   d.Width,
			Height:  d.Height,
			Round:   d.Round,
			Animate: true,
			Offsets: true,
		},
		Vane: &Vane{
			Cardinal: cardinalRef,
			Diagonal: diagonalRef,
		},
	}

	for i := 0; i < hours; i++ {
		kind := weatherKinds[i%len(weatherKinds)]
		slot := Slot{
			Label: fmt.Sprintf("%02d:00", (8+i)%24),
			Text:  kind,
			Icon:  iconRef(kind),
		}
		if kind == "rain" {
			slot.Accessory = 6 // зонт
		}
		s.Slots = append(s.Slots, slot)
		s.Vane.Hours = append(s.Vane.Hours, Wind{
			Label:   slot.Label,
			Degrees: (i * 45) % 360,
			Speed:   5 + 3*i,
		})
	}

	t := d.Intro
	for i := 0; i < hours-1; i++ {
		s.Steps = append(s.Steps, Step{Time: t, Action: ActionDown})
		t += dwell
	}
	for i := 0; i < hours-1; i++ {
		s.Steps = append(s.Steps, Step{Time: t, Action: ActionUp})
		t += dwell
	}
	s.Duration = t + d.Intro

	return s, nil
}

// Icons returns every icon the generated scenarios refer to, keyed by
// their reference path.
func (d *Director) Icons() map[string]*pdc.Image {
	icons := map[string]*pdc.Image{
		cardinalRef: cardinalArrow(),
		diagonalRef: diagonalArrow(),
	}
	for _, kind := range weatherKinds {
		icons[iconRef(kind)] = weatherIcon(kind)
	}
	return icons
}

func iconRef(kind string) string {
	return "icons/" + kind + ".pdc"
}
