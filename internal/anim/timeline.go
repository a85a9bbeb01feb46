// Package anim is a small single-threaded animation scheduler driven by a
// virtual clock. The caller owns the Timeline and advances it from its frame
// loop; every callback runs synchronously inside Advance or Schedule.
package anim

import (
	"errors"
	"log"
	"time"
)

var (
	ErrBadDuration = errors.New("anim: duration must not be negative")
	ErrScheduled   = errors.New("anim: animation is still scheduled")
	ErrDestroyed   = errors.New("anim: animation was destroyed")
)

// Implementation is the per-animation behaviour.
type Implementation struct {
	// Setup runs when the animation is scheduled.
	Setup func(a *Animation)
	// Update runs on every tick once the delay has elapsed.
	Update func(a *Animation, p Progress)
	// Teardown runs once the animation stops, finished or not.
	Teardown func(a *Animation)
}

type Handlers struct {
	Started func(a *Animation)
	Stopped func(a *Animation, finished bool)
}

// Config describes an animation to create.
type Config struct {
	Duration time.Duration
	Delay    time.Duration
	// Curve defaults to EaseInOut.
	Curve    Curve
	Impl     Implementation
	Handlers Handlers
	Context  any
}

type Animation struct {
	cfg       Config
	id        uint64
	scheduled bool
	started   bool
	finished  bool
	destroyed bool
	startAt   time.Duration
}

func (a *Animation) ID() uint64              { return a.id }
func (a *Animation) Duration() time.Duration { return a.cfg.Duration }
func (a *Animation) Delay() time.Duration    { return a.cfg.Delay }
func (a *Animation) Context() any            { return a.cfg.Context }
func (a *Animation) Scheduled() bool         { return a.scheduled }
func (a *Animation) Destroyed() bool         { return a.destroyed }

// Finished reports whether the last run reached the end rather than being
// unscheduled.
func (a *Animation) Finished() bool { return a.finished }

// Timer is a one-shot callback on the timeline clock.
type Timer struct {
	due       time.Duration
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel stops the timer. It reports whether the call prevented the callback.
func (t *Timer) Cancel() bool {
	if t == nil || t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

func (t *Timer) pending() bool { return !t.fired && !t.cancelled }

// Timeline is the clock, the set of scheduled animations and pending timers.
// It is not safe for concurrent use.
type Timeline struct {
	now    time.Duration
	nextID uint64
	active []*Animation
	timers []*Timer

	created   int
	destroyed int
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) Now() time.Duration { return tl.now }

// NewAnimation creates an unscheduled animation.
func (tl *Timeline) NewAnimation(cfg Config) (*Animation, error) {
	if cfg.Duration < 0 || cfg.Delay < 0 {
		return nil, ErrBadDuration
	}
	if cfg.Curve == nil {
		cfg.Curve = EaseInOut
	}
	tl.nextID++
	tl.created++
	return &Animation{cfg: cfg, id: tl.nextID}, nil
}

// Schedule starts the delay countdown and runs Setup. Scheduling a running
// animation restarts it.
func (tl *Timeline) Schedule(a *Animation) error {
	if a == nil {
		return errors.New("anim: nil animation")
	}
	if a.destroyed {
		return ErrDestroyed
	}
	if a.scheduled {
		tl.remove(a)
	}
	a.scheduled = true
	a.started = false
	a.finished = false
	a.startAt = tl.now + a.cfg.Delay
	tl.active = append(tl.active, a)
	if a.cfg.Impl.Setup != nil {
		a.cfg.Impl.Setup(a)
	}
	return nil
}

func (tl *Timeline) IsScheduled(a *Animation) bool {
	return a != nil && a.scheduled
}

// Unschedule stops a running animation without finishing it.
func (tl *Timeline) Unschedule(a *Animation) {
	if a == nil || !a.scheduled {
		return
	}
	tl.stop(a, false)
}

// Destroy releases an animation. Destroying a scheduled animation is refused;
// destroying twice is a no-op.
func (tl *Timeline) Destroy(a *Animation) error {
	if a == nil || a.destroyed {
		return nil
	}
	if a.scheduled {
		log.Printf("[anim] destroy of scheduled animation %d refused", a.id)
		return ErrScheduled
	}
	a.destroyed = true
	tl.destroyed++
	return nil
}

// Live returns the number of animations created and not yet destroyed.
func (tl *Timeline) Live() int { return tl.created - tl.destroyed }

// AfterFunc runs fn once the clock has advanced by d.
func (tl *Timeline) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{due: tl.now + d, fn: fn}
	tl.timers = append(tl.timers, t)
	return t
}

// Active reports whether anything is scheduled or pending.
func (tl *Timeline) Active() bool {
	if len(tl.active) > 0 {
		return true
	}
	for _, t := range tl.timers {
		if t.pending() {
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d. Timers fire at their due time, with
// animations stepped up to that instant first.
func (tl *Timeline) Advance(d time.Duration) {
	target := tl.now + d
	for {
		t := tl.nextTimer(target)
		if t == nil {
			break
		}
		tl.step(t.due)
		t.fired = true
		t.fn()
	}
	tl.step(target)
	tl.compactTimers()
}

func (tl *Timeline) nextTimer(limit time.Duration) *Timer {
	var next *Timer
	for _, t := range tl.timers {
		if !t.pending() || t.due > limit {
			continue
		}
		if next == nil || t.due < next.due {
			next = t
		}
	}
	return next
}

func (tl *Timeline) compactTimers() {
	kept := tl.timers[:0]
	for _, t := range tl.timers {
		if t.pending() {
			kept = append(kept, t)
		}
	}
	tl.timers = kept
}

func (tl *Timeline) step(at time.Duration) {
	if at > tl.now {
		tl.now = at
	}
	// Callbacks may schedule or unschedule animations while we iterate.
	snapshot := append([]*Animation(nil), tl.active...)
	for _, a := range snapshot {
		if !a.scheduled || tl.now < a.startAt {
			continue
		}
		if !a.started {
			a.started = true
			if a.cfg.Handlers.Started != nil {
				a.cfg.Handlers.Started(a)
			}
			if !a.scheduled {
				continue
			}
		}

		elapsed := tl.now - a.startAt
		if elapsed >= a.cfg.Duration {
			tl.update(a, NormalizedMax)
			if a.scheduled {
				tl.stop(a, true)
			}
			continue
		}
		p := Progress(int64(elapsed) * int64(NormalizedMax) / int64(a.cfg.Duration))
		tl.update(a, p)
	}
}

func (tl *Timeline) update(a *Animation, p Progress) {
	if a.cfg.Impl.Update != nil {
		a.cfg.Impl.Update(a, a.cfg.Curve(p))
	}
}

// stop unschedules, notifies and then releases the animation, matching the
// watch platform where stopped animations are destroyed automatically.
func (tl *Timeline) stop(a *Animation, finished bool) {
	a.scheduled = false
	a.finished = finished
	tl.remove(a)
	if a.cfg.Handlers.Stopped != nil {
		a.cfg.Handlers.Stopped(a, finished)
	}
	if a.cfg.Impl.Teardown != nil {
		a.cfg.Impl.Teardown(a)
	}
	if !a.scheduled {
		tl.Destroy(a)
	}
}

func (tl *Timeline) remove(a *Animation) {
	for i, x := range tl.active {
		if x == a {
			tl.active = append(tl.active[:i], tl.active[i+1:]...)
			return
		}
	}
}
