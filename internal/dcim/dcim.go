// Package dcim mutates draw command images in place: mirror flips, transpose
// and orientation of an arrow-like icon to one of eight compass directions.
package dcim

import (
	"github.com/ivlev/kimaybe/internal/fixedpoint"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// Compass directions, clockwise from "right".
const (
	East = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

// FlipHorizontal mirrors img across its vertical axis: x' = w - x.
func FlipHorizontal(img *pdc.Image) {
	if img == nil {
		return
	}
	flipHorizontal(img, fixedpoint.SpaceOf(img))
}

// FlipVertical mirrors img across its horizontal axis: y' = h - y.
func FlipVertical(img *pdc.Image) {
	if img == nil {
		return
	}
	flipVertical(img, fixedpoint.SpaceOf(img))
}

// Transpose swaps x and y of every vertex. Bounds are left untouched.
func Transpose(img *pdc.Image) {
	for _, cmd := range img.CommandList() {
		for i, p := range cmd.Points {
			cmd.SetPoint(i, pdc.Point{X: p.Y, Y: p.X})
		}
	}
}

func flipHorizontal(img *pdc.Image, s fixedpoint.Space) {
	w, _ := s.PromoteBounds(img.Bounds)
	for _, cmd := range img.CommandList() {
		for i, p := range cmd.Points {
			cmd.SetPoint(i, pdc.Point{X: int16(w - int(p.X)), Y: p.Y})
		}
	}
}

func flipVertical(img *pdc.Image, s fixedpoint.Space) {
	_, h := s.PromoteBounds(img.Bounds)
	for _, cmd := range img.CommandList() {
		for i, p := range cmd.Points {
			cmd.SetPoint(i, pdc.Point{X: p.X, Y: int16(h - int(p.Y))})
		}
	}
}

// Orient builds a fresh image pointing in direction dir (taken mod 8).
// Even directions derive from cardinal, which points East; odd ones derive
// from diagonal, which points SouthEast. The sources are never modified.
// A missing source yields nil.
//
// The grid is detected once on the clone: a flip can push a vertex onto the
// bound and would otherwise change the detection for the second flip.
func Orient(dir int, cardinal, diagonal *pdc.Image) *pdc.Image {
	dir = ((dir % 8) + 8) % 8

	src := cardinal
	if dir%2 == 1 {
		src = diagonal
	}
	if src == nil {
		return nil
	}
	img := src.Clone()
	s := fixedpoint.SpaceOf(img)

	switch dir {
	case East, SouthEast:
	case South:
		Transpose(img)
	case West, SouthWest:
		flipHorizontal(img, s)
	case North:
		Transpose(img)
		flipVertical(img, s)
	case NorthWest:
		flipHorizontal(img, s)
		flipVertical(img, s)
	case NorthEast:
		flipVertical(img, s)
	}
	return img
}
