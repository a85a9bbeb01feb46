package renderer

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/ivlev/kimaybe/internal/pdc"
)

// Font is used for every label on the display.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	FontHeight = 10
	// FontOffset is the baseline below the top of a text row.
	FontOffset = 6
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// DrawText writes s with its top-left corner at (x, y).
func (c *Canvas) DrawText(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, Font, int16(x), int16(y+FontOffset), s, col)
}

// DrawTextIn writes s on the first row of r.
func (c *Canvas) DrawTextIn(r pdc.Rect, s string, col color.RGBA, align Align) {
	x := r.X
	switch align {
	case AlignCenter:
		x += (r.W - TextWidth(s)) / 2
	case AlignRight:
		x += r.W - TextWidth(s)
	}
	c.DrawText(x, r.Y, s, col)
}
