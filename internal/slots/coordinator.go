// Package slots moves forecast icons between the previous, current and next
// hour slots when the user pages through hours. Two slice-sweep animations
// run per step: the current icon leaves immediately and the incoming icon
// follows after a short delay.
package slots

import (
	"errors"
	"log"
	"time"

	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/kimaybe"
	"github.com/ivlev/kimaybe/internal/pdc"
)

const (
	DefaultDuration = 200 * time.Millisecond
	DefaultDelay    = 100 * time.Millisecond
)

var ErrBusy = errors.New("slots: animation already running")

type Direction int

const (
	// Up pages back in time: the previous icon becomes current.
	Up Direction = iota
	// Down pages forward: the next icon becomes current.
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Slots are the three icons visible on a page.
type Slots struct {
	Prev, Current, Next *pdc.Image
}

// Geometry is where each slot is drawn, in screen pixels.
type Geometry struct {
	Prev, Current, Next pdc.Rect
}

// Layer is a drawable layer of the display.
type Layer interface {
	kimaybe.Surface
	SetHidden(hidden bool)
}

// Scheduler adds one-shot timers to the animation scheduler.
type Scheduler interface {
	kimaybe.Scheduler
	AfterFunc(d time.Duration, fn func()) *anim.Timer
}

// Request describes one paging step.
type Request struct {
	Direction Direction
	Hour      int
	// IncomingOffset shifts where the incoming icon lands.
	IncomingOffset pdc.Point
	// OutgoingOffset is halved and negated for the outgoing icon.
	OutgoingOffset pdc.Point
	// Optional replacements for the computed rectangles.
	IncomingFrom, IncomingTo *pdc.Rect
	OutgoingFrom, OutgoingTo *pdc.Rect
}

type Options struct {
	Duration time.Duration
	Delay    time.Duration
	KM       kimaybe.Options
}

func DefaultOptions() Options {
	return Options{Duration: DefaultDuration, Delay: DefaultDelay, KM: kimaybe.DefaultOptions()}
}

type State int

const (
	Idle State = iota
	Animating
)

// Coordinator owns the two transformations of one paging step.
// It is not safe for concurrent use; drive it from the scheduler's goroutine.
type Coordinator struct {
	sched Scheduler
	geo   Geometry
	opts  Options

	static      Layer
	progressive Layer
	layer1      Layer
	layer2      Layer

	stored Slots
	state  State
	dir    Direction
	hour   int

	km1, km2     *kimaybe.Animation
	temp1, temp2 *pdc.Image
	delay        *anim.Timer
	completed    int
	expected     int

	hidden      bool
	showPrev    bool
	showCurrent bool
	showNext    bool

	onComplete func()
}

func New(sched Scheduler, geo Geometry, opts Options) *Coordinator {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Delay < 0 {
		opts.Delay = DefaultDelay
	}
	return &Coordinator{sched: sched, geo: geo, opts: opts}
}

// SetLayers wires the static icon layer, the layer showing icons as they
// land, and the two working layers.
func (c *Coordinator) SetLayers(static, progressive, layer1, layer2 Layer) {
	c.static = static
	c.progressive = progressive
	c.layer1 = layer1
	c.layer2 = layer2
}

// StoreCurrentImages remembers the icons on screen before the view switches
// to the new hour; the next Start animates these.
func (c *Coordinator) StoreCurrentImages(s Slots) {
	c.stored = s
}

func (c *Coordinator) IsActive() bool     { return c.state == Animating }
func (c *Coordinator) ImagesHidden() bool { return c.hidden }
func (c *Coordinator) Hour() int          { return c.hour }

// Ready reports which slots already show their new icon.
func (c *Coordinator) Ready() (prev, current, next bool) {
	return c.showPrev, c.showCurrent, c.showNext
}

// TempImages returns the working copies being animated, nil when idle.
func (c *Coordinator) TempImages() (incoming, outgoing *pdc.Image) {
	return c.temp1, c.temp2
}

// Start animates the stored icons for one paging step. onComplete runs once
// after both transformations have finished, or immediately when there was
// nothing to animate.
func (c *Coordinator) Start(req Request, onComplete func()) error {
	if c.state == Animating {
		log.Printf("[slots] start while animating ignored")
		return ErrBusy
	}

	c.showPrev, c.showCurrent, c.showNext = false, false, false
	c.onComplete = onComplete
	c.dir = req.Direction
	c.hour = req.Hour

	var src1, src2 *pdc.Image
	var from1, to1, from2, to2 pdc.Rect
	sweep := kimaybe.SweepUp
	if req.Direction == Up {
		src1, src2 = c.stored.Prev, c.stored.Current
		from1, to1 = c.geo.Prev, c.geo.Current
		from2, to2 = c.geo.Current, c.geo.Next
	} else {
		src1, src2 = c.stored.Next, c.stored.Current
		from1, to1 = c.geo.Next, c.geo.Current
		from2, to2 = c.geo.Current, c.geo.Prev
		sweep = kimaybe.SweepDown
	}

	to1 = to1.Offset(int(req.IncomingOffset.X), int(req.IncomingOffset.Y))
	to2 = to2.Offset(-int(req.OutgoingOffset.X/2), -int(req.OutgoingOffset.Y/2))
	override(&from1, req.IncomingFrom)
	override(&to1, req.IncomingTo)
	override(&from2, req.OutgoingFrom)
	override(&to2, req.OutgoingTo)

	c.temp1, c.km1 = c.build(src1, c.layer1, from1, to1, sweep, "incoming")
	c.temp2, c.km2 = c.build(src2, c.layer2, from2, to2, sweep, "outgoing")

	c.completed = 0
	c.expected = 0
	if c.km1 != nil {
		c.expected++
	}
	if c.km2 != nil {
		c.expected++
	}
	if c.expected == 0 {
		c.complete()
		return nil
	}

	c.state = Animating
	c.hideOriginals()
	for _, l := range []Layer{c.layer1, c.layer2} {
		if l != nil {
			l.SetHidden(false)
			l.MarkDirty()
		}
	}
	markDirty(c.progressive)

	if c.km1 != nil {
		c.delay = c.sched.AfterFunc(c.opts.Delay, func() {
			c.delay = nil
			if c.km1 != nil {
				c.startKM(c.km1, "incoming", c.incomingDone)
			}
		})
	}
	if c.km2 != nil {
		c.startKM(c.km2, "outgoing", c.outgoingDone)
	}
	return nil
}

// startKM starts one transformation; a refused start counts as landed so
// the step still completes.
func (c *Coordinator) startKM(km *kimaybe.Animation, name string, done func()) {
	if err := km.Start(done); err != nil {
		log.Printf("[!] [slots] %s animation not started: %v", name, err)
		done()
	}
}

// Stop finishes a running step at once, as if both animations had landed.
func (c *Coordinator) Stop() {
	if c.state == Animating {
		c.complete()
	}
}

func (c *Coordinator) build(src *pdc.Image, layer Layer, from, to pdc.Rect,
	sweep kimaybe.SweepDirection, name string) (*pdc.Image, *kimaybe.Animation) {

	if src == nil {
		return nil, nil
	}
	temp := src.Clone()
	var surface kimaybe.Surface
	if layer != nil {
		surface = layer
	}
	km, err := kimaybe.Create(c.sched, surface, temp, from, to, sweep, c.opts.Duration, c.opts.KM)
	if err != nil {
		log.Printf("[!] [slots] %s animation %v -> %v not created: %v", name, from, to, err)
		return nil, nil
	}
	return temp, km
}

func (c *Coordinator) incomingDone() {
	c.completed++
	if c.layer1 != nil {
		c.layer1.SetHidden(true)
	}
	c.showCurrent = true
	markDirty(c.progressive)
	if c.completed >= c.expected {
		c.complete()
	}
}

func (c *Coordinator) outgoingDone() {
	c.completed++
	if c.layer2 != nil {
		c.layer2.SetHidden(true)
	}
	if c.dir == Up {
		c.showNext = true
	} else {
		c.showPrev = true
	}
	markDirty(c.progressive)
	if c.completed >= c.expected {
		c.complete()
	}
}

func (c *Coordinator) complete() {
	c.cleanup()
	c.showOriginals()
	c.state = Idle
	if cb := c.onComplete; cb != nil {
		c.onComplete = nil
		cb()
	}
}

func (c *Coordinator) cleanup() {
	if c.delay != nil {
		c.delay.Cancel()
		c.delay = nil
	}
	c.km1.Dispose()
	c.km2.Dispose()
	c.km1, c.km2 = nil, nil
	c.temp1, c.temp2 = nil, nil
	c.completed = 0
	c.expected = 0
}

func (c *Coordinator) hideOriginals() {
	if c.hidden {
		return
	}
	c.showPrev, c.showCurrent, c.showNext = false, false, false
	c.hidden = true
	markDirty(c.static)
	markDirty(c.progressive)
}

func (c *Coordinator) showOriginals() {
	if !c.hidden {
		return
	}
	c.showPrev, c.showCurrent, c.showNext = true, true, true
	c.stored = Slots{}
	c.hidden = false
	markDirty(c.static)
	markDirty(c.progressive)
}

func override(dst *pdc.Rect, r *pdc.Rect) {
	if r != nil {
		*dst = *r
	}
}

func markDirty(l Layer) {
	if l != nil {
		l.MarkDirty()
	}
}
