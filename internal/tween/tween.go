package tween

import (
	"errors"
	"time"
)

var (
	ErrInvalidDuration = errors.New("tween duration must be positive")
	ErrNilTarget       = errors.New("tween target is nil")
)

// Target is an object with numeric properties addressable by key.
// A tween writes through it but never owns it
type Target interface {
	Property(key string) float64
	SetProperty(key string, v float64)
}

// Spec describes a tween to schedule
type Spec struct {
	Target   Target
	Key      string
	To       float64
	Duration time.Duration
	// Easing defaults to Linear
	Easing Easing

	OnChange   func(*Tween)
	OnComplete func(*Tween)
}

// Tween animates one property of a target from its value at schedule time to To.
// Duration and To may be changed while the tween is in flight
type Tween struct {
	target   Target
	key      string
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	easing   Easing

	onChange   func(*Tween)
	onComplete func(*Tween)

	done bool
}

func (t *Tween) Target() Target { return t.target }
func (t *Tween) Key() string { return t.key }
func (t *Tween) From() float64 { return t.from }
func (t *Tween) To() float64 { return t.to }
func (t *Tween) Start() time.Time { return t.start }
func (t *Tween) Duration() time.Duration { return t.duration }

// Done reports whether the tween completed or was cancelled
func (t *Tween) Done() bool { return t.done }

// SetTo retargets the tween, the next advance interpolates toward the new value
func (t *Tween) SetTo(v float64) {
	t.to = v
}

// SetDuration changes the planned length, still measured from Start
func (t *Tween) SetDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	t.duration = d
	return nil
}

// Elapsed returns time since start, zero before start
func (t *Tween) Elapsed(now time.Time) time.Duration {
	e := now.Sub(t.start)
	if e < 0 {
		return 0
	}
	return e
}

// Phase returns the normalized progress clamped to [0,1]
func (t *Tween) Phase(now time.Time) float64 {
	return clamp01(float64(now.Sub(t.start)) / float64(t.duration))
}

func (t *Tween) value(phase float64) float64 {
	return Lerp(t.from, t.to, t.easing(phase))
}
