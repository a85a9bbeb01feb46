package anim

import (
	"fmt"
	"strings"
)

// Progress is animation progress in [0, NormalizedMax]; curves may overshoot.
type Progress int32

// NormalizedMax is progress at the end of an animation.
const NormalizedMax Progress = 1 << 16

// Curve remaps linear progress.
type Curve func(Progress) Progress

func toUnit(p Progress) float64 {
	return float64(p) / float64(NormalizedMax)
}

func fromUnit(t float64) Progress {
	return Progress(t * float64(NormalizedMax))
}

// Linear keeps progress unchanged.
func Linear(p Progress) Progress { return p }

func EaseIn(p Progress) Progress {
	t := toUnit(p)
	return fromUnit(t * t * t)
}

func EaseOut(p Progress) Progress {
	t := toUnit(p) - 1
	return fromUnit(t*t*t + 1)
}

// EaseInOut is the cubic in-out easing, the platform default.
func EaseInOut(p Progress) Progress {
	return fromUnit(easeInOutCubic(toUnit(p)))
}

// BackOutOvershoot runs past the target and settles back; capped at 1.2.
func BackOutOvershoot(p Progress) Progress {
	const s = 1.5
	t := toUnit(p) - 1
	r := t*t*t*(1+s) + t*t*s + 1
	return fromUnit(clamp(r, 0, 1.2))
}

// OutAndBack goes to the target at half time and returns to the start.
func OutAndBack(p Progress) Progress {
	t := toUnit(p)
	var r float64
	if t < 0.5 {
		r = t * 2
	} else {
		r = 1 - (t-0.5)*2
	}
	// smoothstep
	r = r * r * (3 - 2*r)
	return fromUnit(clamp(r, 0, 1))
}

// CurveByName resolves a curve from configuration.
func CurveByName(name string) (Curve, error) {
	switch strings.ToLower(name) {
	case "", "ease-in-out", "easeinout":
		return EaseInOut, nil
	case "linear":
		return Linear, nil
	case "ease-in", "easein":
		return EaseIn, nil
	case "ease-out", "easeout":
		return EaseOut, nil
	case "back-out", "overshoot":
		return BackOutOvershoot, nil
	case "out-and-back":
		return OutAndBack, nil
	}
	return nil, fmt.Errorf("unknown curve: %s", name)
}

// Lerp interpolates between a and b on integer coordinates.
// Progress at NormalizedMax yields b exactly.
func Lerp(a, b int, p Progress) int {
	return a + int(int64(b-a)*int64(p)/int64(NormalizedMax))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
