package anim

import (
	"testing"
	"time"
)

type trace struct {
	setup, started, teardown int
	updates                  []Progress
	stopped                  []bool
}

func traced(tr *trace, duration, delay time.Duration) Config {
	return Config{
		Duration: duration,
		Delay:    delay,
		Curve:    Linear,
		Impl: Implementation{
			Setup:    func(*Animation) { tr.setup++ },
			Update:   func(_ *Animation, p Progress) { tr.updates = append(tr.updates, p) },
			Teardown: func(*Animation) { tr.teardown++ },
		},
		Handlers: Handlers{
			Started: func(*Animation) { tr.started++ },
			Stopped: func(_ *Animation, finished bool) { tr.stopped = append(tr.stopped, finished) },
		},
	}
}

func TestAnimationLifecycle(t *testing.T) {
	tl := NewTimeline()
	var tr trace
	a, err := tl.NewAnimation(traced(&tr, 100*time.Millisecond, 50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	if err := tl.Schedule(a); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if tr.setup != 1 {
		t.Errorf("Setup must run on Schedule, ran %d times", tr.setup)
	}

	tl.Advance(40 * time.Millisecond)
	if tr.started != 0 || len(tr.updates) != 0 {
		t.Fatalf("animation ran during its delay: started=%d updates=%v", tr.started, tr.updates)
	}

	tl.Advance(60 * time.Millisecond) // t=100ms, elapsed 50 of 100
	if tr.started != 1 {
		t.Errorf("Started handler: got %d calls", tr.started)
	}
	if got := tr.updates[len(tr.updates)-1]; got != NormalizedMax/2 {
		t.Errorf("half-way progress: got %d, want %d", got, NormalizedMax/2)
	}

	tl.Advance(100 * time.Millisecond)
	if got := tr.updates[len(tr.updates)-1]; got != NormalizedMax {
		t.Errorf("final progress: got %d, want %d", got, NormalizedMax)
	}
	if tr.teardown != 1 || len(tr.stopped) != 1 || !tr.stopped[0] {
		t.Errorf("finish: teardown=%d stopped=%v", tr.teardown, tr.stopped)
	}
	if !a.Finished() || tl.IsScheduled(a) || !a.Destroyed() {
		t.Errorf("finished animation state: finished=%v scheduled=%v destroyed=%v",
			a.Finished(), tl.IsScheduled(a), a.Destroyed())
	}
	if tl.Live() != 0 {
		t.Errorf("Live() = %d after auto-destroy", tl.Live())
	}
}

func TestUnscheduleIsNotFinish(t *testing.T) {
	tl := NewTimeline()
	var tr trace
	a, _ := tl.NewAnimation(traced(&tr, 100*time.Millisecond, 0))
	tl.Schedule(a)
	tl.Advance(10 * time.Millisecond)
	tl.Unschedule(a)

	if a.Finished() {
		t.Errorf("unscheduled animation reported finished")
	}
	if tr.teardown != 1 || len(tr.stopped) != 1 || tr.stopped[0] {
		t.Errorf("unschedule: teardown=%d stopped=%v", tr.teardown, tr.stopped)
	}
	tl.Unschedule(a)
	if tr.teardown != 1 {
		t.Errorf("second Unschedule ran teardown again")
	}
}

func TestDestroyScheduledRefused(t *testing.T) {
	tl := NewTimeline()
	a, _ := tl.NewAnimation(Config{Duration: time.Second})
	tl.Schedule(a)
	if err := tl.Destroy(a); err != ErrScheduled {
		t.Fatalf("Destroy of scheduled animation: got %v, want ErrScheduled", err)
	}
	tl.Unschedule(a)
	if err := tl.Destroy(a); err != nil {
		t.Errorf("Destroy after Unschedule: %v", err)
	}
	if err := tl.Schedule(a); err != ErrDestroyed {
		t.Errorf("Schedule after Destroy: got %v, want ErrDestroyed", err)
	}
}

func TestTimersFireInOrder(t *testing.T) {
	tl := NewTimeline()
	var order []string
	tl.AfterFunc(30*time.Millisecond, func() { order = append(order, "b") })
	tl.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	cancelled := tl.AfterFunc(20*time.Millisecond, func() { order = append(order, "x") })
	if !cancelled.Cancel() {
		t.Fatalf("Cancel of pending timer returned false")
	}

	var firedAt time.Duration
	tl.AfterFunc(25*time.Millisecond, func() { firedAt = tl.Now() })

	tl.Advance(50 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("timer order: got %v", order)
	}
	if firedAt != 25*time.Millisecond {
		t.Errorf("timer saw clock %v, want 25ms", firedAt)
	}
	if tl.Active() {
		t.Errorf("timeline still active after all timers fired")
	}
	if cancelled.Cancel() {
		t.Errorf("second Cancel returned true")
	}
}

func TestTimerSchedulesAnimationAtDueTime(t *testing.T) {
	tl := NewTimeline()
	var tr trace
	a, _ := tl.NewAnimation(traced(&tr, 40*time.Millisecond, 0))
	tl.AfterFunc(100*time.Millisecond, func() { tl.Schedule(a) })

	tl.Advance(120 * time.Millisecond)
	if len(tr.updates) == 0 {
		t.Fatalf("animation scheduled by a timer never updated")
	}
	if got := tr.updates[len(tr.updates)-1]; got != NormalizedMax/2 {
		t.Errorf("progress 20ms after timer: got %d, want %d", got, NormalizedMax/2)
	}
}

func TestCurves(t *testing.T) {
	curves := map[string]Curve{
		"linear":   Linear,
		"ease-in":  EaseIn,
		"ease-out": EaseOut,
		"in-out":   EaseInOut,
		"back-out": BackOutOvershoot,
	}
	for name, c := range curves {
		if got := c(0); got != 0 {
			t.Errorf("%s(0) = %d", name, got)
		}
		if got := c(NormalizedMax); got != NormalizedMax {
			t.Errorf("%s(max) = %d", name, got)
		}
	}

	if got := EaseInOut(NormalizedMax / 2); got != NormalizedMax/2 {
		t.Errorf("EaseInOut(half) = %d, want %d", got, NormalizedMax/2)
	}
	if got := OutAndBack(NormalizedMax / 2); got != NormalizedMax {
		t.Errorf("OutAndBack(half) = %d, want max", got)
	}
	if got := OutAndBack(NormalizedMax); got != 0 {
		t.Errorf("OutAndBack(max) = %d, want 0", got)
	}
	if got := BackOutOvershoot(NormalizedMax * 3 / 4); got <= NormalizedMax {
		t.Errorf("BackOutOvershoot must overshoot near the end, got %d", got)
	}

	if _, err := CurveByName("bogus"); err == nil {
		t.Errorf("CurveByName accepted an unknown name")
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b int
		p    Progress
		want int
	}{
		{10, 60, 0, 10},
		{10, 60, NormalizedMax, 60},
		{10, 60, NormalizedMax / 2, 35},
		{60, 10, NormalizedMax / 2, 35},
		{-40, 40, NormalizedMax / 2, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.p); got != tt.want {
			t.Errorf("Lerp(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.p, got, tt.want)
		}
	}
}

func TestHalfProgressIsExact(t *testing.T) {
	if NormalizedMax%2 != 0 {
		t.Fatalf("NormalizedMax %d is odd", NormalizedMax)
	}
	for _, d := range []int{2, 50, 100, -50, 8 * 168, -8 * 144} {
		if got := Lerp(0, d, NormalizedMax/2); got != d/2 {
			t.Errorf("Lerp(0, %d, max/2) = %d, want %d", d, got, d/2)
		}
	}
}
