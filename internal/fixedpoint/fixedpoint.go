// Package fixedpoint owns every conversion between whole-pixel coordinates
// and the 3-fractional-bit grid used by precise vector images.
package fixedpoint

import "github.com/ivlev/kimaybe/internal/pdc"

// FractionBits is the number of fractional bits in a precise coordinate.
const FractionBits = 3

// One is 1.0 on the precise grid.
const One = 1 << FractionBits

// IsPrecise reports whether img stores fixed-point coordinates: true as soon
// as one vertex falls outside [0, bounds) on either axis.
func IsPrecise(img *pdc.Image) bool {
	w, h := img.Bounds.W, img.Bounds.H
	for _, cmd := range img.CommandList() {
		for _, p := range cmd.Points {
			if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
				return true
			}
		}
	}
	return false
}

// Coord is a single coordinate that remembers which grid it lives on.
type Coord struct {
	v      int32
	scaled bool
}

// Pixels builds a whole-pixel coordinate.
func Pixels(v int) Coord { return Coord{v: int32(v)} }

func fixed(v int) Coord { return Coord{v: int32(v), scaled: true} }

// Whole returns the coordinate in whole pixels, truncated toward negative infinity.
func (c Coord) Whole() int {
	if c.scaled {
		return int(c.v >> FractionBits)
	}
	return int(c.v)
}

// On converts the coordinate onto the working grid of s.
func (c Coord) On(s Space) int {
	switch {
	case s.Precise && !c.scaled:
		return int(c.v) << FractionBits
	case !s.Precise && c.scaled:
		return int(c.v >> FractionBits)
	}
	return int(c.v)
}

// Space is the coordinate grid of one image.
type Space struct {
	Precise bool
}

// SpaceOf detects the grid of img.
func SpaceOf(img *pdc.Image) Space {
	return Space{Precise: IsPrecise(img)}
}

// Vertex wraps a stored image coordinate.
func (s Space) Vertex(v int16) Coord {
	return Coord{v: int32(v), scaled: s.Precise}
}

// Promote moves a whole-pixel value onto the working grid.
func (s Space) Promote(v int) int {
	return Pixels(v).On(s)
}

// PromoteRect moves every field of a screen rectangle onto the working grid.
func (s Space) PromoteRect(r pdc.Rect) pdc.Rect {
	return pdc.Rect{X: s.Promote(r.X), Y: s.Promote(r.Y), W: s.Promote(r.W), H: s.Promote(r.H)}
}

// PromoteBounds returns the view box on the working grid.
func (s Space) PromoteBounds(sz pdc.Size) (w, h int) {
	return s.Promote(int(sz.W)), s.Promote(int(sz.H))
}

// Whole converts a stored vertex coordinate back to whole pixels.
func (s Space) Whole(v int16) int {
	return s.Vertex(v).Whole()
}
