package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/kimaybe/internal/config"
	"github.com/ivlev/kimaybe/internal/director"
)

// ScenarioEffect adds what the scenario knows about the recording: the
// round bezel mask and, in debug mode, a caption for every button press.
type ScenarioEffect struct {
	Scenario *director.Scenario
	// Window is how long a caption stays after its press (seconds).
	Window float64
	Debug  bool
}

// NewScenarioEffect creates a new ScenarioEffect
func NewScenarioEffect(scenario *director.Scenario) *ScenarioEffect {
	return &ScenarioEffect{Scenario: scenario, Window: 0.4}
}

// GenerateFilter masks on the display resolution first, then upscales.
func (e *ScenarioEffect) GenerateFilter(p config.EncodeParams) string {
	if e.Scenario == nil {
		return (&DefaultEffect{Debug: e.Debug}).GenerateFilter(p)
	}
	var mask string
	if e.Scenario.Display.Round {
		mask = roundMask()
	}
	return chain(mask, upscale(p), fades(p), e.captions(p))
}

// roundMask blacks out everything outside the inscribed circle.
func roundMask() string {
	inside := "lte(hypot(X-W/2,Y-H/2),min(W,H)/2)"
	return fmt.Sprintf("geq=r='if(%[1]s,r(X,Y),0)':g='if(%[1]s,g(X,Y),0)':b='if(%[1]s,b(X,Y),0)'", inside)
}

func (e *ScenarioEffect) captions(p config.EncodeParams) string {
	if !e.Debug {
		return ""
	}
	var out []string
	for _, action := range []string{director.ActionUp, director.ActionDown} {
		enable := StepsEnable(e.Scenario.Steps, action, e.Window)
		if enable == "" {
			continue
		}
		y := "10"
		if action == director.ActionDown {
			y = "h-th-10"
		}
		out = append(out, fmt.Sprintf(
			"drawtext=text='%s':x=w-tw-10:y=%s:fontsize=%d:fontcolor=yellow:box=1:boxcolor=black@0.5:enable='%s'",
			action, y, 8*p.Scale, enable))
	}
	return strings.Join(out, ",")
}

// StepsEnable builds an ffmpeg timeline expression that is true for window
// seconds after every step with the given action.
func StepsEnable(steps []director.Step, action string, window float64) string {
	var terms []string
	for _, st := range steps {
		if st.Action != action {
			continue
		}
		terms = append(terms, fmt.Sprintf("between(t,%.3f,%.3f)", st.Time, st.Time+window))
	}
	return strings.Join(terms, "+")
}
