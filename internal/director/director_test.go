package director

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ivlev/kimaybe/internal/fixedpoint"
	"github.com/ivlev/kimaybe/internal/pdc"
)

func TestDirector(t *testing.T) {
	director := NewDirector(144, 168)

	scenario, err := director.GenerateScenario(4, 1.0)
	if err != nil {
		t.Fatalf("GenerateScenario failed: %v", err)
	}

	if scenario.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", scenario.Version)
	}
	if len(scenario.Slots) != 4 {
		t.Fatalf("Expected 4 slots, got %d", len(scenario.Slots))
	}
	// 3 вниз и 3 вверх
	if len(scenario.Steps) != 6 {
		t.Fatalf("Expected 6 steps, got %d", len(scenario.Steps))
	}
	downs := 0
	for _, st := range scenario.Steps[:3] {
		if st.Action == ActionDown {
			downs++
		}
	}
	if downs != 3 || scenario.Steps[3].Action != ActionUp {
		t.Errorf("Expected down then up, got %v", scenario.Steps)
	}
	if last := scenario.Steps[5].Time; scenario.Duration <= last {
		t.Errorf("Duration %.1f ends before the last step at %.1f", scenario.Duration, last)
	}
	if err := scenario.Validate(); err != nil {
		t.Errorf("generated scenario is invalid: %v", err)
	}

	icons := director.Icons()
	for _, s := range scenario.Slots {
		if icons[s.Icon] == nil {
			t.Errorf("slot %s refers to missing icon %s", s.Label, s.Icon)
		}
	}
	if icons[scenario.Vane.Cardinal] == nil || icons[scenario.Vane.Diagonal] == nil {
		t.Errorf("vane arrows missing")
	}

	t.Logf("Generated scenario with %d steps over %.1fs", len(scenario.Steps), scenario.Duration)
}

func TestDirectorRejectsSingleHour(t *testing.T) {
	if _, err := NewDirector(144, 168).GenerateScenario(1, 1); err == nil {
		t.Error("Expected error for a single hour")
	}
}

func TestDwellClamped(t *testing.T) {
	s, _ := NewDirector(144, 168).GenerateScenario(3, 0.01)
	if gap := s.Steps[1].Time - s.Steps[0].Time; gap < 0.4 {
		t.Errorf("steps %.2fs apart, shorter than a transition", gap)
	}
}

func TestIconsGrid(t *testing.T) {
	for name, img := range NewDirector(144, 168).Icons() {
		want := name == iconRef("moon")
		if got := fixedpoint.IsPrecise(img); got != want {
			t.Errorf("%s: precise = %v, want %v", name, got, want)
		}
	}
}

func TestScenarioWriteRead(t *testing.T) {
	scenario := &Scenario{
		Version: "1.0",
		Display: Display{Width: 144, Height: 168, Animate: true},
		Slots: []Slot{
			{Label: "09:00", Icon: "icons/sun.pdc"},
			{Label: "10:00", Icon: "icons/rain.pdc", Accessory: 6},
		},
		Steps: []Step{
			{Time: 2.0, Action: ActionUp},
			{Time: 1.0, Action: ActionDown},
		},
	}

	tmpFile := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := WriteScenario(scenario, tmpFile); err != nil {
		t.Fatalf("WriteScenario failed: %v", err)
	}

	readScenario, err := ReadScenario(tmpFile)
	if err != nil {
		t.Fatalf("ReadScenario failed: %v", err)
	}

	if readScenario.Version != scenario.Version {
		t.Errorf("Version mismatch: expected %s, got %s", scenario.Version, readScenario.Version)
	}
	if len(readScenario.Slots) != 2 || readScenario.Slots[1].Accessory != 6 {
		t.Errorf("Slots mismatch: %+v", readScenario.Slots)
	}
	// Validate сортирует шаги
	if readScenario.Steps[0].Action != ActionDown {
		t.Errorf("Steps not sorted: %+v", readScenario.Steps)
	}
	if readScenario.Duration != 3.0 {
		t.Errorf("Expected derived duration 3.0, got %.1f", readScenario.Duration)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Display: Display{Width: 144, Height: 168},
			Slots:   []Slot{{Icon: "a.pdc"}},
			Steps:   []Step{{Time: 1, Action: ActionDown}},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"no display", func(s *Scenario) { s.Display.Width = 0 }},
		{"no slots", func(s *Scenario) { s.Slots = nil }},
		{"bad action", func(s *Scenario) { s.Steps[0].Action = "jump" }},
		{"negative time", func(s *Scenario) { s.Steps[0].Time = -1 }},
		{"bad page", func(s *Scenario) { s.Page = "radar" }},
		{"wind without vane", func(s *Scenario) { s.Page = PageWind }},
		{"no duration", func(s *Scenario) { s.Steps = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("Expected ErrInvalidScenario, got %v", err)
			}
		})
	}
	if err := base().Validate(); err != nil {
		t.Errorf("valid scenario rejected: %v", err)
	}
}

func TestWriteIcons(t *testing.T) {
	dir := t.TempDir()
	icons := NewDirector(144, 168).Icons()
	if err := WriteIcons(dir, icons); err != nil {
		t.Fatalf("WriteIcons failed: %v", err)
	}

	img, err := pdc.ReadFile(filepath.Join(dir, iconRef("moon")))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if img.NumPoints() != icons[iconRef("moon")].NumPoints() {
		t.Errorf("moon: %d points, want %d", img.NumPoints(), icons[iconRef("moon")].NumPoints())
	}
	arrow, err := pdc.LoadYAML(filepath.Join(dir, cardinalRef))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(arrow.Commands) != 2 {
		t.Errorf("arrow: %d commands", len(arrow.Commands))
	}

	if err := WriteIcons(dir, map[string]*pdc.Image{"x.png": icons[cardinalRef]}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
