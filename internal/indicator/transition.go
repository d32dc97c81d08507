package indicator

import "time"

// DefaultTransitionDuration is how long a thumb geometry change animates.
const DefaultTransitionDuration = 50 * time.Millisecond

// Transition animates a single float value toward a target over a fixed
// duration. It is a small state machine: either idle (value == target) or
// transitioning. Retargeting while in flight restarts the interpolation
// from the value currently displayed, never from the original start value,
// so interrupted transitions stay visually continuous. Transitions replace
// each other; they never queue.
type Transition struct {
	from     float64
	target   float64
	start    time.Time
	duration time.Duration
}

// NewTransition returns a transition resting at value.
func NewTransition(value float64, duration time.Duration) Transition {
	if duration <= 0 {
		duration = DefaultTransitionDuration
	}
	return Transition{from: value, target: value, duration: duration}
}

// Retarget points the transition at a new target. A request toward the
// current target is a no-op so repeated recomputes do not restart the
// easing. Any in-flight transition is replaced, starting from the value
// interpolated at now.
func (t *Transition) Retarget(now time.Time, target float64) {
	if target == t.target {
		return
	}
	t.from = t.At(now)
	t.target = target
	t.start = now
}

// Set jumps the value immediately, cancelling any in-flight transition.
func (t *Transition) Set(value float64) {
	t.from = value
	t.target = value
	t.start = time.Time{}
}

// At returns the interpolated value at now, using ease-out interpolation
// clamped to the target once the duration has elapsed.
func (t *Transition) At(now time.Time) float64 {
	if t.from == t.target {
		return t.target
	}
	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		return t.target
	}
	if elapsed < 0 {
		return t.from
	}
	p := float64(elapsed) / float64(t.duration)
	eased := 1 - (1-p)*(1-p)
	return t.from + (t.target-t.from)*eased
}

// Target returns the value the transition is heading toward.
func (t *Transition) Target() float64 {
	return t.target
}

// Done reports whether the transition has settled at its target.
func (t *Transition) Done(now time.Time) bool {
	return t.At(now) == t.target
}
