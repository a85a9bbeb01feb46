package viewer

import (
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/ivlev/kimaybe/internal/analyzer"
	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/dcim"
	"github.com/ivlev/kimaybe/internal/layout"
	"github.com/ivlev/kimaybe/internal/pdc"
	"github.com/ivlev/kimaybe/internal/renderer"
)

var white = color.RGBA{255, 255, 255, 255}

func square(fill uint8) *pdc.Image {
	st := pdc.Style{Stroke: pdc.ColorBlack, Width: 1, Fill: fill}
	return pdc.New(50, 50, pdc.Polygon(st, pdc.Pt(5, 5), pdc.Pt(45, 5), pdc.Pt(45, 45), pdc.Pt(5, 45)))
}

func forecast(n int) []Slot {
	out := make([]Slot, n)
	for i := range out {
		out[i] = Slot{Label: fmt.Sprintf("%02d:00", 9+i), Icon: square(pdc.ColorBlack)}
	}
	return out
}

func newViewer(t *testing.T, n int) (*Viewer, *anim.Timeline, *renderer.Canvas) {
	t.Helper()
	tl := anim.NewTimeline()
	canvas := renderer.NewCanvas(144, 168, white)
	opts := DefaultOptions()
	opts.Slots.KM.Curve = anim.Linear
	v := New(layout.New(144, 168, false), canvas, tl, opts)
	v.SetSlots(forecast(n), 0)
	return v, tl, canvas
}

func rect(r pdc.Rect) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func TestNavigationBounds(t *testing.T) {
	v, _, _ := newViewer(t, 3)
	if v.NavigateUp() {
		t.Errorf("NavigateUp moved before the first hour")
	}
	v.SetAnimate(false)
	v.NavigateDown()
	v.NavigateDown()
	if v.Hour() != 2 {
		t.Fatalf("Hour() = %d, want 2", v.Hour())
	}
	if v.NavigateDown() {
		t.Errorf("NavigateDown moved past the last hour")
	}
}

func TestAnimatedNavigation(t *testing.T) {
	v, tl, canvas := newViewer(t, 4)
	canvas.Render()

	if !v.NavigateDown() {
		t.Fatalf("NavigateDown refused")
	}
	if !v.Coordinator().IsActive() {
		t.Fatalf("transition not running")
	}
	if v.NavigateDown() {
		t.Errorf("navigation accepted while animating")
	}
	if !canvas.Render() {
		t.Errorf("starting a transition did not dirty the canvas")
	}

	frames := 0
	for i := 0; i < 30 && v.Coordinator().IsActive(); i++ {
		tl.Advance(10 * time.Millisecond)
		if canvas.Render() {
			frames++
		}
	}
	if v.Coordinator().IsActive() {
		t.Fatalf("transition still running after 300ms")
	}
	if frames < 20 {
		t.Errorf("only %d frames redrawn during the transition", frames)
	}
	if v.Hour() != 1 {
		t.Errorf("Hour() = %d, want 1", v.Hour())
	}
	for _, l := range canvas.Layers() {
		if (l.Name() == "km1" || l.Name() == "km2") && !l.Hidden() {
			t.Errorf("working layer %s left visible", l.Name())
		}
	}
}

func TestLandedIconsPlacement(t *testing.T) {
	v, tl, canvas := newViewer(t, 4)
	v.NavigateDown()
	tl.Advance(time.Second)
	canvas.Render()

	l := v.Layout()
	d := analyzer.NewInkDetector(white)
	for _, s := range []layout.Slot{layout.Prev, layout.Current, layout.Next} {
		want := rect(l.Icon(s))
		got, ok := d.InkBounds(canvas.Image(), want.Inset(-4))
		if !ok {
			t.Errorf("%s: no icon drawn", s)
			continue
		}
		if !got.In(want) {
			t.Errorf("%s: ink %v outside slot %v", s, got, want)
		}
	}
}

func TestInstantNavigation(t *testing.T) {
	v, _, canvas := newViewer(t, 3)
	v.SetAnimate(false)
	canvas.Render()
	redraws := canvas.Redraws()

	v.NavigateDown()
	if v.Coordinator().IsActive() {
		t.Errorf("instant navigation started a transition")
	}
	if !canvas.Render() || canvas.Redraws() != redraws+1 {
		t.Errorf("instant navigation did not redraw")
	}
}

func TestSetSlotsStopsTransition(t *testing.T) {
	v, tl, _ := newViewer(t, 4)
	v.NavigateDown()
	v.SetSlots(forecast(2), 7)
	if v.Coordinator().IsActive() || v.Coordinator().ImagesHidden() {
		t.Errorf("transition survived SetSlots")
	}
	if v.Hour() != 1 {
		t.Errorf("hour not clamped: %d", v.Hour())
	}
	if tl.Live() != 0 {
		t.Errorf("%d animations leaked", tl.Live())
	}
}

func TestOffsetsApplied(t *testing.T) {
	tl := anim.NewTimeline()
	canvas := renderer.NewCanvas(144, 168, white)
	opts := DefaultOptions()
	opts.Offsets = true
	v := New(layout.New(144, 168, false), canvas, tl, opts)
	s := forecast(3)
	s[1].Accessory = 6 // зонт: +10 по x
	v.SetSlots(s, 0)

	v.NavigateDown()
	tl.Advance(239 * time.Millisecond)
	in, _ := v.Coordinator().TempImages()
	if in == nil {
		t.Fatalf("no incoming image")
	}
	// (5,5) of a 50px icon lands at current slot origin + 5 + offset
	cur := layout.New(144, 168, false).CurrentIcon
	want := pdc.Pt(int16(cur.X+5+10), int16(cur.Y+5))
	if got := in.Commands[0].Points[0]; got != want {
		t.Errorf("landing vertex = %v, want %v", got, want)
	}
}

func TestCompass(t *testing.T) {
	tests := []struct {
		deg    int
		origin bool
		want   int
	}{
		{0, true, dcim.North},
		{90, true, dcim.East},
		{180, true, dcim.South},
		{270, true, dcim.West},
		{45, true, dcim.NorthEast},
		{135, true, dcim.SouthEast},
		{-45, true, dcim.NorthWest},
		{0, false, dcim.South},
		{200, false, dcim.North},
	}
	for _, tt := range tests {
		if got := Compass(tt.deg, tt.origin); got != tt.want {
			t.Errorf("Compass(%d, %v) = %d, want %d", tt.deg, tt.origin, got, tt.want)
		}
	}
}

func TestVaneSlots(t *testing.T) {
	st := pdc.Style{Stroke: pdc.ColorBlack, Width: 2}
	cardinal := pdc.New(20, 20, pdc.Polyline(st, pdc.Pt(2, 10), pdc.Pt(18, 10)))
	diagonal := pdc.New(20, 20, pdc.Polyline(st, pdc.Pt(2, 2), pdc.Pt(18, 18)))

	s := VaneSlots([]Wind{{Label: "09:00", Degrees: 270, Speed: 12}, {Degrees: 0}}, cardinal, diagonal, false)
	if len(s) != 2 {
		t.Fatalf("got %d slots", len(s))
	}
	// west wind blows east: same as the source arrow, but a copy
	if s[0].Icon == cardinal || s[0].Icon.Commands[0].Points[1] != pdc.Pt(18, 10) {
		t.Errorf("east arrow: %v", s[0].Icon.Commands[0].Points)
	}
	if s[0].Text != "12 km/h" {
		t.Errorf("text %q", s[0].Text)
	}
	// north wind blows south: transposed
	if got := s[1].Icon.Commands[0].Points[1]; got != pdc.Pt(10, 18) {
		t.Errorf("south arrow end = %v", got)
	}
}
