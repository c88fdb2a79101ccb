package reel

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidParams = errors.New("invalid reel params")

// Params holds the reel layout and the spin timing
type Params struct {
	ReelCount int
	RowCount  int

	// Reel i starts ReelDelay*i after the spin request
	ReelDelay time.Duration

	// Provisional tween of reel i runs BaseDuration + i*DurationStep + extra*ExtraDuration
	// and travels BaseDistance + i*DistanceStep + extra rows, extra drawn from [0, MaxExtra]
	BaseDuration  time.Duration
	DurationStep  time.Duration
	ExtraDuration time.Duration
	BaseDistance  float64
	DistanceStep  float64
	MaxExtra      int

	// On result arrival each tween runs max(MinRunTime, elapsed + DurationPadding)
	// and its target moves Overshoot rows further
	MinRunTime      time.Duration
	DurationPadding time.Duration
	Overshoot       float64

	BackoutAmount float64

	// Symbols is the placeholder alphabet used before the result is known
	Symbols []string
}

// DefaultParams matches the classic 5x3 scene
func DefaultParams() Params {
	return Params{
		ReelCount:       5,
		RowCount:        3,
		ReelDelay:       300 * time.Millisecond,
		BaseDuration:    2500 * time.Millisecond,
		DurationStep:    600 * time.Millisecond,
		ExtraDuration:   600 * time.Millisecond,
		BaseDistance:    10,
		DistanceStep:    5,
		MaxExtra:        2,
		MinRunTime:      2000 * time.Millisecond,
		DurationPadding: 600 * time.Millisecond,
		Overshoot:       6,
		BackoutAmount:   0.5,
		Symbols:         []string{"1", "2", "3", "4", "5", "6", "7", "8", "K"},
	}
}

func (p Params) Validate() error {
	if p.ReelCount <= 0 || p.RowCount <= 0 {
		return fmt.Errorf("%w: layout %dx%d", ErrInvalidParams, p.ReelCount, p.RowCount)
	}
	if p.ReelDelay < 0 || p.MaxExtra < 0 {
		return fmt.Errorf("%w: negative delay or extra", ErrInvalidParams)
	}
	// The shortest provisional tween is either the first or the last reel's
	first := p.BaseDuration
	last := p.BaseDuration + time.Duration(p.ReelCount-1)*p.DurationStep
	if first <= 0 || last <= 0 {
		return fmt.Errorf("%w: provisional duration must be positive", ErrInvalidParams)
	}
	if p.MinRunTime <= 0 && p.DurationPadding <= 0 {
		return fmt.Errorf("%w: reconciled duration must be positive", ErrInvalidParams)
	}
	if len(p.Symbols) == 0 {
		return fmt.Errorf("%w: empty symbol set", ErrInvalidParams)
	}
	return nil
}

func (p Params) cells() int {
	return p.ReelCount * p.RowCount
}
