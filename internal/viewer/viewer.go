// Package viewer is the hourly forecast page: three icon slots with their
// hour labels, paged up and down with the slice-sweep transition.
package viewer

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ivlev/kimaybe/internal/layout"
	"github.com/ivlev/kimaybe/internal/pdc"
	"github.com/ivlev/kimaybe/internal/renderer"
	"github.com/ivlev/kimaybe/internal/slots"
)

// Slot is one forecast hour.
type Slot struct {
	Label string
	Text  string
	Icon  *pdc.Image
	// Accessory selects the landing offset, 0 for none.
	Accessory int
}

type Options struct {
	Animate bool
	// Offsets applies accessory landing offsets to animated icons.
	Offsets    bool
	Foreground color.RGBA
	Slots      slots.Options
}

func DefaultOptions() Options {
	return Options{
		Animate:    true,
		Foreground: color.RGBA{A: 255},
		Slots:      slots.DefaultOptions(),
	}
}

// Viewer owns the canvas layers of the page and the coordinator moving
// icons between them.
type Viewer struct {
	layout *layout.Layout
	canvas *renderer.Canvas
	coord  *slots.Coordinator
	opts   Options

	slots []Slot
	hour  int

	labels      *renderer.Layer
	static      *renderer.Layer
	progressive *renderer.Layer
	incoming    *renderer.Layer
	outgoing    *renderer.Layer
}

func New(l *layout.Layout, canvas *renderer.Canvas, sched slots.Scheduler, opts Options) *Viewer {
	v := &Viewer{layout: l, canvas: canvas, opts: opts}
	v.coord = slots.New(sched, slots.Geometry{
		Prev:    l.Icon(layout.Prev),
		Current: l.Icon(layout.Current),
		Next:    l.Icon(layout.Next),
	}, opts.Slots)

	v.labels = canvas.AddLayer("labels", v.drawLabels)
	v.static = canvas.AddLayer("static", v.drawStatic)
	v.progressive = canvas.AddLayer("progressive", v.drawProgressive)
	v.incoming = canvas.AddLayer("km1", v.drawIncoming)
	v.outgoing = canvas.AddLayer("km2", v.drawOutgoing)
	v.incoming.SetHidden(true)
	v.outgoing.SetHidden(true)

	v.coord.SetLayers(v.static, v.progressive, v.incoming, v.outgoing)
	return v
}

func (v *Viewer) Hour() int                       { return v.hour }
func (v *Viewer) Slots() []Slot                   { return v.slots }
func (v *Viewer) Coordinator() *slots.Coordinator { return v.coord }
func (v *Viewer) Layout() *layout.Layout          { return v.layout }
func (v *Viewer) Animate() bool                   { return v.opts.Animate }

// SetAnimate switches between animated and instant paging.
func (v *Viewer) SetAnimate(on bool) {
	v.opts.Animate = on
}

// SetSlots replaces the forecast and jumps to hour. A running transition is
// finished first.
func (v *Viewer) SetSlots(s []Slot, hour int) {
	v.coord.Stop()
	v.slots = s
	v.hour = clamp(hour, 0, len(s)-1)
	v.markAll()
}

// NavigateUp shows the previous hour. It reports whether the page moved.
func (v *Viewer) NavigateUp() bool {
	return v.navigate(slots.Up)
}

// NavigateDown shows the next hour. It reports whether the page moved.
func (v *Viewer) NavigateDown() bool {
	return v.navigate(slots.Down)
}

// Stop finishes a running transition immediately.
func (v *Viewer) Stop() {
	v.coord.Stop()
}

func (v *Viewer) navigate(dir slots.Direction) bool {
	if v.coord.IsActive() {
		return false
	}
	next := v.hour + 1
	if dir == slots.Up {
		next = v.hour - 1
	}
	if next < 0 || next >= len(v.slots) {
		return false
	}

	v.coord.StoreCurrentImages(slots.Slots{
		Prev:    v.icon(v.hour - 1),
		Current: v.icon(v.hour),
		Next:    v.icon(v.hour + 1),
	})
	v.hour = next
	v.labels.MarkDirty()

	if !v.opts.Animate {
		v.static.MarkDirty()
		return true
	}

	req := slots.Request{Direction: dir, Hour: next}
	if v.opts.Offsets {
		req.IncomingOffset = layout.Offset(v.slot(next).Accessory)
		landing := next + 1
		if dir == slots.Down {
			landing = next - 1
		}
		req.OutgoingOffset = layout.Offset(v.slot(landing).Accessory)
	}
	if err := v.coord.Start(req, v.static.MarkDirty); err != nil {
		log.Printf("[!] [viewer] hour %d: %v", next, err)
		v.static.MarkDirty()
	}
	return true
}

func (v *Viewer) slot(h int) Slot {
	if h < 0 || h >= len(v.slots) {
		return Slot{}
	}
	return v.slots[h]
}

func (v *Viewer) icon(h int) *pdc.Image {
	return v.slot(h).Icon
}

func (v *Viewer) markAll() {
	for _, l := range v.canvas.Layers() {
		l.MarkDirty()
	}
}

func (v *Viewer) drawLabels(c *renderer.Canvas) {
	fg := v.opts.Foreground
	if s := v.slot(v.hour - 1); s.Label != "" {
		c.DrawTextIn(v.layout.Time(layout.Prev), s.Label, fg, renderer.AlignLeft)
	}
	cur := v.slot(v.hour)
	c.DrawTextIn(v.layout.Time(layout.Current), cur.Label, fg, renderer.AlignLeft)
	if cur.Text != "" {
		c.DrawTextIn(v.layout.CurrentText, cur.Text, fg, renderer.AlignLeft)
	}
	if s := v.slot(v.hour + 1); s.Label != "" {
		c.DrawTextIn(v.layout.Time(layout.Next), s.Label, fg, renderer.AlignLeft)
	}
}

// drawStatic draws the three icons of the current hour unless a transition
// has hidden them.
func (v *Viewer) drawStatic(c *renderer.Canvas) {
	if v.coord.ImagesHidden() {
		return
	}
	for _, s := range []layout.Slot{layout.Prev, layout.Current, layout.Next} {
		if img := v.icon(v.hour + int(s) - 1); img != nil {
			c.DrawImageIn(img, v.layout.Icon(s))
		}
	}
}

// drawProgressive shows each new icon as soon as the animation that brings
// it in has landed.
func (v *Viewer) drawProgressive(c *renderer.Canvas) {
	if !v.coord.ImagesHidden() {
		return
	}
	prev, cur, next := v.coord.Ready()
	for s, ready := range []bool{prev, cur, next} {
		if !ready {
			continue
		}
		if img := v.icon(v.hour + s - 1); img != nil {
			c.DrawImageIn(img, v.layout.Icon(layout.Slot(s)))
		}
	}
}

func (v *Viewer) drawIncoming(c *renderer.Canvas) {
	in, _ := v.coord.TempImages()
	c.DrawImage(in, renderer.Identity)
}

func (v *Viewer) drawOutgoing(c *renderer.Canvas) {
	_, out := v.coord.TempImages()
	c.DrawImage(out, renderer.Identity)
}

// String describes the page for logs.
func (v *Viewer) String() string {
	return fmt.Sprintf("hour %d/%d animating=%v", v.hour, len(v.slots), v.coord.IsActive())
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
