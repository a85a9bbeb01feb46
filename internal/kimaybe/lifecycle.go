// Package kimaybe animates a vector image from one screen rectangle to
// another as a staggered wipe: the points are cut into slices along the
// sweep axis and each slice moves on its own delayed sub-animation.
package kimaybe

import (
	"errors"
	"log"
	"time"

	"github.com/ivlev/kimaybe/internal/anim"
	"github.com/ivlev/kimaybe/internal/pdc"
)

// Debug enables per-tick logging.
var Debug bool

const (
	DefaultSlices     = 4
	DefaultDelayRatio = 0.15
)

var (
	ErrNilScheduler = errors.New("kimaybe: nil scheduler")
	ErrNilSurface   = errors.New("kimaybe: nil surface")
	ErrNilImage     = errors.New("kimaybe: nil image")
	ErrBadDuration  = errors.New("kimaybe: duration must be at least 1ms")
	ErrNilAnimation = errors.New("kimaybe: nil animation")
	ErrNotReady     = errors.New("kimaybe: animation is not ready to start")
)

// Surface is where the working image is drawn.
type Surface interface {
	MarkDirty()
}

// Scheduler creates and runs sub-animations. *anim.Timeline implements it.
type Scheduler interface {
	NewAnimation(cfg anim.Config) (*anim.Animation, error)
	Schedule(a *anim.Animation) error
	IsScheduled(a *anim.Animation) bool
	Unschedule(a *anim.Animation)
	Destroy(a *anim.Animation) error
}

// CompletionPolicy decides when the completion callback fires.
type CompletionPolicy int

const (
	// CompleteAll fires once every slice has finished.
	CompleteAll CompletionPolicy = iota
	// CompleteMiddle fires when slice N/2 finishes; later slices may still be moving.
	CompleteMiddle
)

// Options tunes one animation. Start from DefaultOptions: only a zero Slices
// is replaced by DefaultSlices, while DelayRatio is taken as given and 0
// sweeps every slice at once.
type Options struct {
	Slices     int
	DelayRatio float64
	// Curve is applied to every slice; nil leaves the scheduler default.
	Curve      anim.Curve
	Completion CompletionPolicy
}

func DefaultOptions() Options {
	return Options{Slices: DefaultSlices, DelayRatio: DefaultDelayRatio, Completion: CompleteAll}
}

type State int

const (
	StateIdle State = iota
	StatePreparing
	StateReady
	StateAnimating
	StateCompleting
	StateDone
	StateDisposed
)

func (s State) String() string {
	return [...]string{"idle", "preparing", "ready", "animating", "completing", "done", "disposed"}[s]
}

// Animation is one slice-sweep transformation of a working image.
// The image is mutated in place and must not be shared with other drawers.
type Animation struct {
	sched    Scheduler
	surface  Surface
	image    *pdc.Image
	from, to pdc.Rect
	dir      SweepDirection
	duration time.Duration
	opts     Options

	slices *Slices
	subs   []*anim.Animation
	landed []bool
	nLand  int

	onComplete func()
	done       chan struct{}
	fired      bool
	state      State
}

// sliceRef is the context attached to every sub-animation.
type sliceRef struct {
	km    *Animation
	index int
}

var sliceImpl = anim.Implementation{
	Update:   updateSlice,
	Teardown: teardownSlice,
}

// Create validates its inputs, prepares the slices and builds one
// sub-animation per slice. On any failure everything acquired so far is
// released and a nil animation is returned.
func Create(sched Scheduler, surface Surface, img *pdc.Image, from, to pdc.Rect,
	dir SweepDirection, duration time.Duration, opts Options) (*Animation, error) {

	switch {
	case sched == nil:
		return nil, fail(ErrNilScheduler)
	case surface == nil:
		return nil, fail(ErrNilSurface)
	case img == nil:
		return nil, fail(ErrNilImage)
	case duration < time.Millisecond:
		return nil, fail(ErrBadDuration)
	}
	if opts.Slices == 0 {
		opts.Slices = DefaultSlices
	}

	km := &Animation{
		sched:    sched,
		surface:  surface,
		image:    img,
		from:     from,
		to:       to,
		dir:      dir,
		duration: duration,
		opts:     opts,
		done:     make(chan struct{}),
	}

	if _, err := km.Prepare(); err != nil {
		km.Dispose()
		return nil, fail(err)
	}

	n := opts.Slices
	km.subs = make([]*anim.Animation, n)
	km.landed = make([]bool, n)
	for i := 0; i < n; i++ {
		delay, length := km.SliceTiming(i)
		a, err := sched.NewAnimation(anim.Config{
			Duration: length,
			Delay:    delay,
			Curve:    opts.Curve,
			Impl:     sliceImpl,
			Context:  &sliceRef{km: km, index: i},
		})
		if err != nil {
			km.Dispose()
			return nil, fail(err)
		}
		km.subs[i] = a
	}

	km.state = StateReady
	return km, nil
}

func fail(err error) error {
	log.Printf("[kimaybe] create failed: %v", err)
	return err
}

// Prepare slices the working image once; later calls return the same slices.
func (km *Animation) Prepare() (*Slices, error) {
	if km.slices != nil {
		return km.slices, nil
	}
	km.state = StatePreparing
	s, err := Prepare(km.image, km.from, km.to, km.dir, km.opts.Slices)
	if err != nil {
		km.state = StateIdle
		return nil, err
	}
	km.slices = s
	km.surface.MarkDirty()
	if Debug {
		for i := range s.Buckets {
			log.Printf("[kimaybe] slice %d: %d points", i, s.Len(i))
		}
	}
	return s, nil
}

// SliceTiming returns the delay and duration of slice i. Timing is computed
// in whole milliseconds.
func (km *Animation) SliceTiming(i int) (delay, length time.Duration) {
	total := km.duration.Milliseconds()
	per := total / int64(km.opts.Slices)
	if per < 1 {
		per = 1
	}
	step := int64(float64(total) * km.opts.DelayRatio)
	return time.Duration(int64(i)*step) * time.Millisecond, time.Duration(per) * time.Millisecond
}

// Start records the completion callback and schedules every slice.
func (km *Animation) Start(onComplete func()) error {
	if km == nil {
		log.Printf("[kimaybe] start on nil animation ignored")
		return ErrNilAnimation
	}
	if km.state != StateReady {
		log.Printf("[kimaybe] start in state %s ignored", km.state)
		return ErrNotReady
	}
	km.onComplete = onComplete
	km.state = StateAnimating
	for i, a := range km.subs {
		if err := km.sched.Schedule(a); err != nil {
			log.Printf("[!] [kimaybe] slice %d not scheduled: %v", i, err)
		}
	}
	return nil
}

// Done is closed on completion or disposal, whichever comes first.
func (km *Animation) Done() <-chan struct{} { return km.done }

func (km *Animation) State() State              { return km.state }
func (km *Animation) Image() *pdc.Image         { return km.image }
func (km *Animation) Slices() *Slices           { return km.slices }
func (km *Animation) Direction() SweepDirection { return km.dir }

// Dispose releases the slices and every sub-animation. The completion
// callback is cleared first so it can no longer fire, and Done is closed for
// anyone still waiting. Safe on nil, on a partially built animation and when
// called twice.
func (km *Animation) Dispose() {
	if km == nil || km.state == StateDisposed {
		return
	}
	km.onComplete = nil
	if !km.fired && km.done != nil {
		km.fired = true
		close(km.done)
	}
	km.slices = nil
	for i, a := range km.subs {
		if a == nil {
			continue
		}
		if km.sched.IsScheduled(a) {
			km.sched.Unschedule(a)
		}
		if err := km.sched.Destroy(a); err != nil {
			log.Printf("[!] [kimaybe] slice %d not destroyed: %v", i, err)
		}
		km.subs[i] = nil
	}
	km.subs = nil
	km.landed = nil
	km.image = nil
	km.state = StateDisposed
}

// resolve maps a sub-animation back to its owner, rejecting anything that
// does not belong to a live animation.
func resolve(a *anim.Animation) (*Animation, int, bool) {
	ref, ok := a.Context().(*sliceRef)
	if !ok || ref == nil || ref.km == nil {
		log.Printf("[!] [kimaybe] sub-animation %d without slice context", a.ID())
		return nil, 0, false
	}
	km := ref.km
	if ref.index < 0 || ref.index >= len(km.subs) || km.subs[ref.index] != a {
		log.Printf("[!] [kimaybe] sub-animation %d does not match slice %d", a.ID(), ref.index)
		return nil, 0, false
	}
	return km, ref.index, true
}

func updateSlice(a *anim.Animation, p anim.Progress) {
	km, i, ok := resolve(a)
	if !ok || km.slices == nil {
		return
	}
	s := km.slices
	for _, idx := range s.Buckets[i] {
		sp := &s.Points[idx]
		sp.Current = pdc.Point{
			X: int16(anim.Lerp(int(sp.Start.X), int(sp.End.X), p)),
			Y: int16(anim.Lerp(int(sp.Start.Y), int(sp.End.Y), p)),
		}
		sp.Cmd.SetPoint(sp.Index, sp.Current)
	}
	km.surface.MarkDirty()
	if Debug {
		log.Printf("[kimaybe] slice %d progress %d", i, p)
	}
}

func teardownSlice(a *anim.Animation) {
	if !a.Finished() {
		return
	}
	km, i, ok := resolve(a)
	if !ok {
		return
	}
	if !km.landed[i] {
		km.landed[i] = true
		km.nLand++
	}

	switch km.opts.Completion {
	case CompleteMiddle:
		if i == len(km.subs)/2 {
			km.complete()
		}
	default:
		if km.nLand == len(km.subs) {
			km.complete()
		}
	}
}

func (km *Animation) complete() {
	if km.fired {
		return
	}
	km.fired = true
	km.state = StateCompleting
	cb := km.onComplete
	km.onComplete = nil
	close(km.done)
	if cb != nil {
		cb()
	}
	if km.state == StateCompleting {
		km.state = StateDone
	}
}
