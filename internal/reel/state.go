package reel

import (
	"errors"
	"fmt"
)

// State is the spin cycle phase of the controller
type State uint8

const (
	// StateIdle has no reel tweens, a spin may start
	StateIdle State = iota
	// StateProvisional spins without a result, wrapped cells get placeholders
	StateProvisional
	// StateReconciling spins toward a known result
	StateReconciling
	// StateSettled shows the exact result, it lasts until the next tick
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProvisional:
		return "provisional"
	case StateReconciling:
		return "reconciling"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Spinning reports whether reels may still be moving
func (s State) Spinning() bool {
	return s == StateProvisional || s == StateReconciling
}

type EventKind uint8

const (
	// EventReelStopped fires when a reel's tween completes
	EventReelStopped EventKind = iota + 1
	// EventSettled fires once per cycle when the result is on every cell
	EventSettled
)

func (k EventKind) String() string {
	switch k {
	case EventReelStopped:
		return "reel_stopped"
	case EventSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Event is emitted by Tick, Reel is -1 for cycle-wide events
type Event struct {
	Kind EventKind
	Reel int
}

var ErrResultLength = errors.New("spin result length mismatch")

// ValidationError rejects a result that does not cover every cell
type ValidationError struct {
	Got  int
	Want int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid spin result: got %d symbols, want %d", e.Got, e.Want)
}

func (e *ValidationError) Unwrap() error {
	return ErrResultLength
}
