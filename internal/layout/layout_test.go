package layout

import (
	"testing"

	"github.com/ivlev/kimaybe/internal/pdc"
)

func TestRectangularLayout(t *testing.T) {
	l := New(144, 168, false)

	tests := []struct {
		name string
		got  pdc.Rect
		want pdc.Rect
	}{
		{"prev icon", l.Icon(Prev), pdc.Rect{X: 113, Y: 4, W: 25, H: 25}},
		{"current icon", l.Icon(Current), pdc.Rect{X: 88, Y: 59, W: 50, H: 50}},
		{"next icon", l.Icon(Next), pdc.Rect{X: 113, Y: 139, W: 25, H: 25}},
		{"prev time", l.Time(Prev), pdc.Rect{X: 6, Y: 4, W: 132, H: 20}},
		{"current time", l.Time(Current), pdc.Rect{X: 6, Y: 44, W: 132, H: 20}},
		{"current text", l.CurrentText, pdc.Rect{X: 6, Y: 64, W: 132, H: 60}},
		{"next time", l.Time(Next), pdc.Rect{X: 6, Y: 144, W: 132, H: 20}},
		{"graph", l.Graph, pdc.Rect{X: 54, Y: 64, W: 84, H: 40}},
		{"axis large", l.AxisLarge, pdc.Rect{X: 53, Y: 100, W: 86, H: 10}},
		{"axis small", l.AxisSmall, pdc.Rect{X: 113, Y: 11, W: 25, H: 10}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestRoundLayout(t *testing.T) {
	l := New(180, 180, true)
	if l.PadLeft != 12 || l.PadRight != 12 {
		t.Fatalf("round padding: %d/%d", l.PadLeft, l.PadRight)
	}
	if got := l.Icon(Prev); got.X != 77 || got.Y != 4 {
		t.Errorf("prev icon must be centred: %v", got)
	}
	if got := l.Icon(Next); got.X != 77 || got.Y != 151 {
		t.Errorf("next icon must be centred: %v", got)
	}
	if got := l.Icon(Current); got.X != 118 {
		t.Errorf("current icon x = %d, want 118", got.X)
	}
	if l.PrevTime.Y != -TextHeight || l.NextTime.Y != 180 {
		t.Errorf("side labels must sit off screen: prev %v next %v", l.PrevTime, l.NextTime)
	}
}

func TestOffsets(t *testing.T) {
	tests := []struct {
		kind int
		want pdc.Point
	}{
		{0, pdc.Point{X: 0, Y: 10}},
		{1, pdc.Point{X: 0, Y: 10}},
		{2, pdc.Point{X: 0, Y: -15}},
		{6, pdc.Point{X: 10, Y: 0}},
		{7, pdc.Point{}},
		{42, pdc.Point{X: 0, Y: 10}},
	}
	for _, tt := range tests {
		if got := Offset(tt.kind); got != tt.want {
			t.Errorf("Offset(%d) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
