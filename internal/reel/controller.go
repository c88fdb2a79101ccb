package reel

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reelspin/internal/model"
	"reelspin/internal/tween"
)

// Controller owns the reels and turns spin requests and results into reel tweens.
// All methods must be called from the goroutine that drives Tick
type Controller struct {
	params Params
	sched  *tween.Scheduler
	rnd    *rand.Rand
	log    *zap.Logger

	reels  []*Reel
	tweens []*tween.Tween // active tween per reel, nil when stopped
	queued []bool         // reel waits for startAt
	start  []time.Time

	state     State
	spinID    uuid.UUID
	spinStart time.Time
	result    []string
	waiting   bool // reels stopped before the result arrived

	pending []Event
	events  []Event
}

type Option func(*Controller)

func WithRand(rnd *rand.Rand) Option {
	return func(c *Controller) {
		c.rnd = rnd
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates reels filled with placeholder symbols
func New(params Params, sched *tween.Scheduler, opts ...Option) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = tween.NewScheduler()
	}

	c := &Controller{
		params: params,
		sched:  sched,
		log:    zap.NewNop(),
		reels:  make([]*Reel, params.ReelCount),
		tweens: make([]*tween.Tween, params.ReelCount),
		queued: make([]bool, params.ReelCount),
		start:  make([]time.Time, params.ReelCount),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for i := range c.reels {
		r := newReel(params.RowCount)
		for j := range r.cells {
			r.cells[j].Symbol = c.placeholder()
			r.cells[j].lap = r.lapOf(j)
		}
		c.reels[i] = r
	}

	return c, nil
}

func (c *Controller) State() State { return c.state }
func (c *Controller) SpinID() uuid.UUID { return c.spinID }
func (c *Controller) Params() Params { return c.params }
func (c *Controller) ReelCount() int { return len(c.reels) }
func (c *Controller) RowCount() int { return c.params.RowCount }
func (c *Controller) Reel(i int) *Reel { return c.reels[i] }
func (c *Controller) HasResult() bool { return c.result != nil }
func (c *Controller) SpinStart() time.Time { return c.spinStart }

// Reels returns the reels in order, callers must not mutate them
func (c *Controller) Reels() []*Reel { return c.reels }

// CellOffset is the vertical offset of cell j on reel in row units
func (c *Controller) CellOffset(reel, j int) float64 {
	return c.reels[reel].Offset(j)
}

// ActiveTweens returns the in-flight reel tweens in start order, which is reel order.
// Tweens on the shared scheduler that belong to no reel are skipped
func (c *Controller) ActiveTweens() []*tween.Tween {
	out := make([]*tween.Tween, 0, len(c.tweens))
	for _, t := range c.sched.Active() {
		if !t.Done() && c.reelOf(t) >= 0 {
			out = append(out, t)
		}
	}
	return out
}

// ReelPhase returns the progress of reel i, 1 once it stopped and 0 while queued
func (c *Controller) ReelPhase(i int, now time.Time) float64 {
	if c.queued[i] {
		return 0
	}
	if t := c.tweens[i]; t != nil {
		return t.Phase(now)
	}
	return 1
}

// SymbolAt returns the symbol currently showing at row of reel
func (c *Controller) SymbolAt(reel, row int) string {
	r := c.reels[reel]
	j := r.cellAtRow(row)
	if j < 0 {
		return ""
	}
	return r.cells[j].Symbol
}

// StartSpin begins a spin cycle, reel 0 starts at now and reel i at now + i*ReelDelay.
// Returns false if a cycle is already running
func (c *Controller) StartSpin(now time.Time) bool {
	if c.state == StateSettled {
		c.state = StateIdle
	}
	if c.state != StateIdle {
		c.log.Debug("spin request ignored, reels are spinning",
			zap.String("spin_id", c.spinID.String()),
			zap.Stringer("state", c.state))
		return false
	}

	c.spinID = uuid.New()
	c.spinStart = now
	c.result = nil
	c.waiting = false
	c.state = StateProvisional

	for i := range c.reels {
		c.queued[i] = true
		c.start[i] = now.Add(time.Duration(i) * c.params.ReelDelay)
	}
	c.startDue(now)

	c.log.Info("spin started", zap.String("spin_id", c.spinID.String()))
	return true
}

// OnResult applies the authoritative result for the most recent spin.
// A result of the wrong length aborts the cycle and returns a *ValidationError
func (c *Controller) OnResult(now time.Time, res model.SpinResult) error {
	if len(res.Symbols) != c.params.cells() {
		err := &ValidationError{Got: len(res.Symbols), Want: c.params.cells()}
		c.log.Warn("spin result rejected",
			zap.String("spin_id", c.spinID.String()),
			zap.Error(err))
		c.Abort()
		return err
	}

	if res.RequestID != uuid.Nil && c.spinID != uuid.Nil && res.RequestID != c.spinID {
		c.log.Warn("spin result answers a different request",
			zap.String("spin_id", c.spinID.String()),
			zap.String("request_id", res.RequestID.String()))
	}

	symbols := make([]string, len(res.Symbols))
	copy(symbols, res.Symbols)

	switch c.state {
	case StateIdle, StateSettled:
		// Nothing in flight, show it right away
		c.log.Warn("spin result arrived while idle, applying immediately",
			zap.String("spin_id", c.spinID.String()))
		c.result = symbols
		c.applyResult()
		c.state = StateIdle

	case StateProvisional:
		c.result = symbols
		if len(c.ActiveTweens()) == 0 && !c.anyQueued() {
			c.log.Warn("spin result arrived after reels stopped, applying immediately",
				zap.String("spin_id", c.spinID.String()),
				zap.Duration("since_spin", now.Sub(c.spinStart)))
			c.settle()
			return nil
		}
		c.reconcile(now)
		c.state = StateReconciling
		c.log.Info("spin result received",
			zap.String("spin_id", c.spinID.String()),
			zap.Duration("latency", now.Sub(c.spinStart)),
			zap.Int("active_reels", len(c.ActiveTweens())))

	case StateReconciling:
		c.log.Warn("duplicate spin result, replacing the held one",
			zap.String("spin_id", c.spinID.String()))
		c.result = symbols
	}

	return nil
}

// Tick advances reel motion to now and refreshes wrapped cells.
// The returned slice is only valid until the next call
func (c *Controller) Tick(now time.Time) []Event {
	c.events = append(c.events[:0], c.pending...)
	c.pending = c.pending[:0]

	if c.state == StateSettled {
		c.state = StateIdle
	}

	c.startDue(now)

	for _, r := range c.reels {
		r.previousPosition = r.position
	}

	for _, ev := range c.sched.Advance(now) {
		if ev.Kind != tween.EventCompleted {
			continue
		}
		if i := c.reelOf(ev.Tween); i >= 0 {
			c.tweens[i] = nil
			c.events = append(c.events, Event{Kind: EventReelStopped, Reel: i})
		}
	}

	for i := range c.reels {
		c.refreshCells(i)
	}

	if c.state.Spinning() && !c.anyQueued() && len(c.ActiveTweens()) == 0 {
		if c.result != nil {
			c.settle()
			c.events = append(c.events, c.pending...)
			c.pending = c.pending[:0]
		} else if !c.waiting {
			c.waiting = true
			c.log.Warn("reels stopped before the spin result arrived",
				zap.String("spin_id", c.spinID.String()),
				zap.Duration("since_spin", now.Sub(c.spinStart)))
		}
	}

	return c.events
}

// startDue schedules every queued reel whose start time has come.
// The tween starts at the planned time so tick jitter does not shift it
func (c *Controller) startDue(now time.Time) {
	for i, r := range c.reels {
		if !c.queued[i] || c.start[i].After(now) {
			continue
		}
		c.queued[i] = false

		extra := 0
		if c.params.MaxExtra > 0 {
			extra = c.rnd.Intn(c.params.MaxExtra + 1)
		}
		fi, fe := float64(i), float64(extra)
		to := r.position + c.params.BaseDistance + fi*c.params.DistanceStep + fe
		d := c.params.BaseDuration + time.Duration(i)*c.params.DurationStep + time.Duration(extra)*c.params.ExtraDuration

		if c.result != nil {
			d = c.reconciledDuration(now.Sub(c.start[i]))
			to += c.params.Overshoot
		}

		t, err := c.sched.Schedule(c.start[i], tween.Spec{
			Target:   r,
			Key:      PropPosition,
			To:       to,
			Duration: d,
			Easing:   tween.Backout(c.params.BackoutAmount),
		})
		if err != nil {
			// Params.Validate keeps durations positive
			c.log.Error("reel tween rejected", zap.Int("reel", i), zap.Error(err))
			continue
		}
		c.tweens[i] = t
	}
}

// reconcile bounds every in-flight tween so all reels land close together
func (c *Controller) reconcile(now time.Time) {
	for i, t := range c.tweens {
		if t == nil {
			continue
		}
		d := c.reconciledDuration(t.Elapsed(now))
		if err := t.SetDuration(d); err != nil {
			c.log.Error("reel duration rejected", zap.Int("reel", i), zap.Error(err))
		}
		t.SetTo(t.To() + c.params.Overshoot)
	}
}

func (c *Controller) reconciledDuration(elapsed time.Duration) time.Duration {
	return max(c.params.MinRunTime, elapsed+c.params.DurationPadding)
}

// refreshCells gives a new symbol to every cell of reel i that wrapped past the top
func (c *Controller) refreshCells(i int) {
	r := c.reels[i]
	for j := range r.cells {
		lap := r.lapOf(j)
		if lap > r.cells[j].lap {
			r.cells[j].Symbol = c.incomingSymbol(i, j)
		}
		r.cells[j].lap = lap
	}
}

func (c *Controller) incomingSymbol(i, j int) string {
	if c.result == nil {
		return c.placeholder()
	}
	rest := c.reels[i].position
	if t := c.tweens[i]; t != nil {
		rest = t.To()
	}
	return c.result[i*c.params.RowCount+rowAt(rest, j, c.params.RowCount)]
}

// applyResult writes the held result onto every cell by its current row
func (c *Controller) applyResult() {
	rows := c.params.RowCount
	for i, r := range c.reels {
		for j := range r.cells {
			r.cells[j].Symbol = c.result[i*rows+r.Row(j)]
		}
	}
}

func (c *Controller) settle() {
	c.applyResult()
	c.state = StateSettled
	c.waiting = false
	c.pending = append(c.pending, Event{Kind: EventSettled, Reel: -1})
	c.log.Info("spin settled", zap.String("spin_id", c.spinID.String()))
}

// Abort drops the current cycle without touching symbols, the controller returns to Idle
func (c *Controller) Abort() {
	for i, t := range c.tweens {
		if t != nil {
			c.sched.Cancel(t)
			c.tweens[i] = nil
		}
		c.queued[i] = false
	}
	c.result = nil
	c.waiting = false
	c.state = StateIdle
	c.log.Info("spin aborted", zap.String("spin_id", c.spinID.String()))
}

func (c *Controller) anyQueued() bool {
	for _, q := range c.queued {
		if q {
			return true
		}
	}
	return false
}

func (c *Controller) reelOf(t *tween.Tween) int {
	for i, rt := range c.tweens {
		if rt == t {
			return i
		}
	}
	return -1
}

func (c *Controller) placeholder() string {
	return c.params.Symbols[c.rnd.Intn(len(c.params.Symbols))]
}
