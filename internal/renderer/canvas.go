// Package renderer draws the watch display into an RGBA frame: an ordered
// stack of layers, each redrawn only when something marked the canvas dirty.
package renderer

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Canvas)(nil)

// DrawFunc paints one layer onto the canvas.
type DrawFunc func(c *Canvas)

// Layer is one drawing pass of the canvas.
type Layer struct {
	name   string
	canvas *Canvas
	draw   DrawFunc
	hidden bool
	dirty  bool
}

func (l *Layer) Name() string { return l.name }
func (l *Layer) Hidden() bool { return l.hidden }

// MarkDirty requests a redraw on the next Render.
func (l *Layer) MarkDirty() {
	l.dirty = true
	l.canvas.dirty = true
}

func (l *Layer) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.canvas.dirty = true
}

// Canvas is the display frame buffer.
type Canvas struct {
	Background color.RGBA

	img     *image.RGBA
	layers  []*Layer
	dirty   bool
	redraws int
}

func NewCanvas(width, height int, bg color.RGBA) *Canvas {
	c := &Canvas{
		Background: bg,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		dirty:      true,
	}
	c.Clear()
	return c
}

// AddLayer appends a layer on top of the existing ones.
func (c *Canvas) AddLayer(name string, draw DrawFunc) *Layer {
	l := &Layer{name: name, canvas: c, draw: draw, dirty: true}
	c.layers = append(c.layers, l)
	c.dirty = true
	return l
}

func (c *Canvas) Layers() []*Layer        { return c.layers }
func (c *Canvas) Dirty() bool             { return c.dirty }
func (c *Canvas) Redraws() int            { return c.redraws }
func (c *Canvas) Image() *image.RGBA      { return c.img }
func (c *Canvas) Width() int              { return c.img.Rect.Dx() }
func (c *Canvas) Height() int             { return c.img.Rect.Dy() }
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Render repaints every visible layer in order if anything is dirty. It
// reports whether the frame changed.
func (c *Canvas) Render() bool {
	if !c.dirty {
		return false
	}
	c.Clear()
	for _, l := range c.layers {
		l.dirty = false
		if l.hidden || l.draw == nil {
			continue
		}
		l.draw(c)
	}
	c.dirty = false
	c.redraws++
	return true
}

// Clear fills the frame with the background colour.
func (c *Canvas) Clear() {
	bg := c.Background
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
}

// Snapshot copies the current frame into dst, allocating it when nil or
// of the wrong size.
func (c *Canvas) Snapshot(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Rect != c.img.Rect {
		dst = image.NewRGBA(c.img.Rect)
	}
	copy(dst.Pix, c.img.Pix)
	return dst
}

// Size, SetPixel и Display нужны tinyfont

func (c *Canvas) Size() (x, y int16) {
	return int16(c.Width()), int16(c.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}.In(c.img.Rect)) {
		return
	}
	c.img.SetRGBA(int(x), int(y), col)
}

func (c *Canvas) Display() error { return nil }
