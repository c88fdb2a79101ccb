package tween

import "time"

type EventKind uint8

const (
	EventChanged EventKind = iota + 1
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event reports what happened to a tween during one Advance pass
type Event struct {
	Kind  EventKind
	Tween *Tween
}

// Scheduler owns the set of active tweens and advances them once per tick.
// It is not safe for concurrent use, the caller drives it from a single goroutine
type Scheduler struct {
	tweens    []*Tween
	events    []Event
	advancing bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule registers a tween starting at now, its start value is read from the target.
// Tweens are advanced in insertion order, so when two tweens write the same property
// the later one wins
func (s *Scheduler) Schedule(now time.Time, spec Spec) (*Tween, error) {
	if spec.Target == nil {
		return nil, ErrNilTarget
	}
	if spec.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	easing := spec.Easing
	if easing == nil {
		easing = Linear
	}

	t := &Tween{
		target:     spec.Target,
		key:        spec.Key,
		from:       spec.Target.Property(spec.Key),
		to:         spec.To,
		start:      now,
		duration:   spec.Duration,
		easing:     easing,
		onChange:   spec.OnChange,
		onComplete: spec.OnComplete,
	}
	s.tweens = append(s.tweens, t)

	return t, nil
}

// Advance interpolates every active tween to now and returns the pass events.
// Completed tweens get their exact target value and are removed after the pass.
// The returned slice is only valid until the next call
func (s *Scheduler) Advance(now time.Time) []Event {
	s.events = s.events[:0]
	s.advancing = true

	// Tweens scheduled from callbacks join the next pass
	active := s.tweens
	for _, t := range active {
		if t.done {
			continue
		}

		phase := t.Phase(now)
		t.target.SetProperty(t.key, t.value(phase))
		if t.onChange != nil {
			t.onChange(t)
		}

		if phase < 1 {
			s.events = append(s.events, Event{Kind: EventChanged, Tween: t})
			continue
		}

		// Exact write, no float residue from the easing
		t.target.SetProperty(t.key, t.to)
		t.done = true
		if t.onComplete != nil {
			t.onComplete(t)
		}
		s.events = append(s.events, Event{Kind: EventCompleted, Tween: t})
	}

	s.advancing = false
	s.compact()

	return s.events
}

// Cancel removes a tween without a final write or callbacks.
// Returns false if the tween already completed or was cancelled
func (s *Scheduler) Cancel(t *Tween) bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	if !s.advancing {
		s.compact()
	}
	return true
}

// Len returns the number of active tweens
func (s *Scheduler) Len() int {
	return len(s.tweens)
}

// Active returns a copy of the active tweens in insertion order
func (s *Scheduler) Active() []*Tween {
	out := make([]*Tween, len(s.tweens))
	copy(out, s.tweens)
	return out
}

func (s *Scheduler) compact() {
	n := 0
	for _, t := range s.tweens {
		if !t.done {
			s.tweens[n] = t
			n++
		}
	}
	for i := n; i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = s.tweens[:n]
}
