package dcim

import (
	"testing"

	"github.com/ivlev/kimaybe/internal/pdc"
)

func arrow(tip pdc.Point) *pdc.Image {
	st := pdc.Style{Stroke: pdc.ColorBlack, Width: 1}
	return pdc.New(10, 10, pdc.Polyline(st, pdc.Pt(5, 5), tip))
}

func TestFlipsAndTranspose(t *testing.T) {
	img := arrow(pdc.Pt(9, 2))

	FlipHorizontal(img)
	if got := img.Commands[0].Point(1); got != pdc.Pt(1, 2) {
		t.Errorf("FlipHorizontal: got %+v, want (1,2)", got)
	}

	img = arrow(pdc.Pt(9, 2))
	FlipVertical(img)
	if got := img.Commands[0].Point(1); got != pdc.Pt(9, 8) {
		t.Errorf("FlipVertical: got %+v, want (9,8)", got)
	}

	img = arrow(pdc.Pt(9, 2))
	Transpose(img)
	if got := img.Commands[0].Point(1); got != pdc.Pt(2, 9) {
		t.Errorf("Transpose: got %+v, want (2,9)", got)
	}
}

func TestFlipUsesPreciseBounds(t *testing.T) {
	// (-4, 20) is outside the 10x10 box, so the image is precise (80x80 grid).
	img := pdc.New(10, 10, &pdc.DrawCommand{
		Type:   pdc.CommandPrecisePath,
		Points: []pdc.Point{{X: -4, Y: 20}, {X: 36, Y: 44}},
	})
	FlipHorizontal(img)
	if got := img.Commands[0].Point(0); got != pdc.Pt(84, 20) {
		t.Errorf("precise flip: got %+v, want (84,20)", got)
	}
}

func TestFlipRoundTripPrecise(t *testing.T) {
	orig := pdc.New(12, 12, &pdc.DrawCommand{
		Type:   pdc.CommandPrecisePath,
		Points: []pdc.Point{{X: -8, Y: 4}, {X: 50, Y: 90}, {X: 100, Y: 7}},
	})

	for name, flip := range map[string]func(*pdc.Image){
		"horizontal": FlipHorizontal,
		"vertical":   FlipVertical,
	} {
		img := orig.Clone()
		flip(img)
		flip(img)
		for i, p := range img.Commands[0].Points {
			if p != orig.Commands[0].Points[i] {
				t.Errorf("%s: point %d: got %+v, want %+v", name, i, p, orig.Commands[0].Points[i])
			}
		}
	}
}

func TestOrient(t *testing.T) {
	cardinal := arrow(pdc.Pt(9, 5))
	diagonal := arrow(pdc.Pt(9, 9))

	tests := []struct {
		dir  int
		want pdc.Point
	}{
		{East, pdc.Pt(9, 5)},
		{SouthEast, pdc.Pt(9, 9)},
		{South, pdc.Pt(5, 9)},
		{SouthWest, pdc.Pt(1, 9)},
		{West, pdc.Pt(1, 5)},
		{NorthWest, pdc.Pt(1, 1)},
		{North, pdc.Pt(5, 1)},
		{NorthEast, pdc.Pt(9, 1)},
		{8 + South, pdc.Pt(5, 9)},
		{-1, pdc.Pt(9, 1)},
	}

	for _, tt := range tests {
		img := Orient(tt.dir, cardinal, diagonal)
		if img == nil {
			t.Fatalf("dir %d: Orient returned nil", tt.dir)
		}
		if got := img.Commands[0].Point(1); got != tt.want {
			t.Errorf("dir %d: tip at %+v, want %+v", tt.dir, got, tt.want)
		}
	}

	if cardinal.Commands[0].Point(1) != pdc.Pt(9, 5) || diagonal.Commands[0].Point(1) != pdc.Pt(9, 9) {
		t.Errorf("Orient modified a source image")
	}
}

func TestOrientMissingSource(t *testing.T) {
	cardinal := arrow(pdc.Pt(9, 5))
	if img := Orient(NorthEast, cardinal, nil); img != nil {
		t.Errorf("diagonal direction without diagonal source must give nil")
	}
	if img := Orient(North, nil, cardinal); img != nil {
		t.Errorf("cardinal direction without cardinal source must give nil")
	}
	if img := Orient(East, cardinal, nil); img == nil {
		t.Errorf("cardinal direction must not need the diagonal source")
	}
}
