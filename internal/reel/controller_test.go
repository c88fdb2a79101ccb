package reel

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"reelspin/internal/model"
	"reelspin/internal/tween"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

// scenarioParams is the 5x3 layout with 4000ms-100ms*i provisional durations
func scenarioParams() Params {
	p := DefaultParams()
	p.BaseDuration = 4000 * time.Millisecond
	p.DurationStep = -100 * time.Millisecond
	p.MaxExtra = 0
	return p
}

func newTestController(t *testing.T, p Params) (*Controller, *tween.Scheduler) {
	t.Helper()
	sched := tween.NewScheduler()
	c, err := New(p, sched, WithRand(rand.New(rand.NewSource(1))), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, sched
}

func authoritative(p Params) model.SpinResult {
	symbols := make([]string, p.ReelCount*p.RowCount)
	for i := range symbols {
		symbols[i] = p.Symbols[i%len(p.Symbols)]
	}
	return model.SpinResult{Symbols: symbols}
}

func snapshot(c *Controller) ([]float64, [][]string) {
	pos := make([]float64, c.ReelCount())
	syms := make([][]string, c.ReelCount())
	for i := range pos {
		r := c.Reel(i)
		pos[i] = r.Position()
		syms[i] = make([]string, r.Len())
		for j := range syms[i] {
			syms[i][j] = r.Cell(j).Symbol
		}
	}
	return pos, syms
}

func tickRange(c *Controller, fromMs, toMs, stepMs int) []Event {
	var all []Event
	for ms := fromMs; ms <= toMs; ms += stepMs {
		all = append(all, c.Tick(at(ms))...)
	}
	return all
}

func TestSpinScenarioReconcilesAndSettles(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)
	res := authoritative(p)

	if !c.StartSpin(at(0)) {
		t.Fatalf("expected spin to start")
	}
	tickRange(c, 0, 496, 16)

	before := c.ActiveTweens()
	if len(before) != 2 {
		t.Fatalf("expected reels 0 and 1 in flight at 500ms, got %d", len(before))
	}
	targets := make([]float64, len(before))
	for i, tw := range before {
		targets[i] = tw.To()
	}

	if err := c.OnResult(at(500), res); err != nil {
		t.Fatalf("OnResult: %v", err)
	}
	if c.State() != StateReconciling {
		t.Errorf("expected reconciling, got %v", c.State())
	}

	for i, tw := range c.ActiveTweens() {
		want := max(2000*time.Millisecond, tw.Elapsed(at(500))+600*time.Millisecond)
		if tw.Duration() != want {
			t.Errorf("reel %d: expected duration %v, got %v", i, want, tw.Duration())
		}
		if tw.To() != targets[i]+6 {
			t.Errorf("reel %d: expected target %v, got %v", i, targets[i]+6, tw.To())
		}
	}

	events := tickRange(c, 512, 6000, 16)

	stopped, settled := 0, 0
	for _, ev := range events {
		switch ev.Kind {
		case EventReelStopped:
			stopped++
		case EventSettled:
			settled++
		}
	}
	if stopped != p.ReelCount {
		t.Errorf("expected %d reel stops, got %d", p.ReelCount, stopped)
	}
	if settled != 1 {
		t.Errorf("expected one settle, got %d", settled)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle after settle, got %v", c.State())
	}

	for i := 0; i < p.ReelCount; i++ {
		if ph := c.ReelPhase(i, at(6000)); ph != 1 {
			t.Errorf("reel %d: expected phase 1, got %v", i, ph)
		}
		for j := 0; j < p.RowCount; j++ {
			want := res.Symbols[i*p.RowCount+j]
			if got := c.SymbolAt(i, j); got != want {
				t.Errorf("reel %d row %d: expected %q, got %q", i, j, want, got)
			}
		}
	}

	// Every target is an exact row count past the start plus the overshoot
	wantPos := []float64{16, 21, 26, 31, 36}
	for i, want := range wantPos {
		if got := c.Reel(i).Position(); got != want {
			t.Errorf("reel %d: expected position %v, got %v", i, want, got)
		}
	}
}

func TestQueuedReelsStartReconciled(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)

	c.StartSpin(at(0))
	if err := c.OnResult(at(0), authoritative(p)); err != nil {
		t.Fatalf("OnResult: %v", err)
	}

	tickRange(c, 0, 1200, 16)
	tweens := c.ActiveTweens()
	if len(tweens) != p.ReelCount {
		t.Fatalf("expected all reels in flight, got %d", len(tweens))
	}
	for i, tw := range tweens {
		if tw.Duration() != 2000*time.Millisecond {
			t.Errorf("reel %d: expected 2s reconciled duration, got %v", i, tw.Duration())
		}
		wantTo := p.BaseDistance + float64(i)*p.DistanceStep + p.Overshoot
		if tw.To() != wantTo {
			t.Errorf("reel %d: expected target %v, got %v", i, wantTo, tw.To())
		}
		wantStart := at(0).Add(time.Duration(i) * p.ReelDelay)
		if !tw.Start().Equal(wantStart) {
			t.Errorf("reel %d: expected start %v, got %v", i, wantStart, tw.Start())
		}
	}
}

func TestDuplicateSpinIsNoop(t *testing.T) {
	p := scenarioParams()
	c, sched := newTestController(t, p)

	c.StartSpin(at(0))
	tickRange(c, 0, 400, 16)
	count := sched.Len()

	if c.StartSpin(at(400)) {
		t.Errorf("expected duplicate spin to be rejected")
	}
	if sched.Len() != count {
		t.Errorf("expected %d tweens after duplicate spin, got %d", count, sched.Len())
	}

	tickRange(c, 416, 700, 16)
	if got := len(c.ActiveTweens()); got != 3 {
		t.Errorf("expected exactly one tween per started reel (3), got %d", got)
	}
}

func TestMismatchedResultRejectedWhileIdle(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)
	pos, syms := snapshot(c)

	short := authoritative(p)
	short.Symbols = short.Symbols[:14]

	err := c.OnResult(at(0), short)
	if !errors.Is(err, ErrResultLength) {
		t.Fatalf("expected ErrResultLength, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Got != 14 || verr.Want != 15 {
		t.Errorf("expected ValidationError{14, 15}, got %+v", verr)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle, got %v", c.State())
	}

	pos2, syms2 := snapshot(c)
	for i := range pos {
		if pos[i] != pos2[i] {
			t.Errorf("reel %d: position changed %v -> %v", i, pos[i], pos2[i])
		}
		for j := range syms[i] {
			if syms[i][j] != syms2[i][j] {
				t.Errorf("reel %d cell %d: symbol changed %q -> %q", i, j, syms[i][j], syms2[i][j])
			}
		}
	}
}

func TestMismatchedResultAbortsSpin(t *testing.T) {
	p := scenarioParams()
	c, sched := newTestController(t, p)

	c.StartSpin(at(0))
	tickRange(c, 0, 800, 16)
	_, syms := snapshot(c)

	bad := model.SpinResult{Symbols: make([]string, 16)}
	if err := c.OnResult(at(800), bad); err == nil {
		t.Fatalf("expected validation error")
	}

	if c.State() != StateIdle {
		t.Errorf("expected idle after abort, got %v", c.State())
	}
	if sched.Len() != 0 {
		t.Errorf("expected tweens cancelled, %d remain", sched.Len())
	}

	pos, _ := snapshot(c)
	events := tickRange(c, 816, 6000, 16)
	if len(events) != 0 {
		t.Errorf("expected no events after abort, got %d", len(events))
	}
	pos2, syms2 := snapshot(c)
	for i := range pos {
		if pos[i] != pos2[i] {
			t.Errorf("reel %d kept moving after abort", i)
		}
		for j := range syms[i] {
			if syms[i][j] != syms2[i][j] {
				t.Errorf("reel %d cell %d: mismatched result leaked into symbols", i, j)
			}
		}
	}

	if !c.StartSpin(at(6000)) {
		t.Errorf("expected a new spin to start after abort")
	}
}

func TestResultWhileIdleAppliesImmediately(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)
	res := authoritative(p)

	if err := c.OnResult(at(0), res); err != nil {
		t.Fatalf("OnResult: %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle, got %v", c.State())
	}
	for i := 0; i < p.ReelCount; i++ {
		for j := 0; j < p.RowCount; j++ {
			if got, want := c.SymbolAt(i, j), res.Symbols[i*p.RowCount+j]; got != want {
				t.Errorf("reel %d row %d: expected %q, got %q", i, j, want, got)
			}
		}
	}
}

func TestResultAfterReelsStopped(t *testing.T) {
	p := scenarioParams()
	p.BaseDuration = 200 * time.Millisecond
	p.DurationStep = 0
	p.ReelDelay = 50 * time.Millisecond
	c, _ := newTestController(t, p)
	res := authoritative(p)

	c.StartSpin(at(0))
	tickRange(c, 0, 1000, 16)

	if c.State() != StateProvisional {
		t.Fatalf("expected provisional while waiting for the result, got %v", c.State())
	}
	if n := len(c.ActiveTweens()); n != 0 {
		t.Fatalf("expected all reels stopped, %d still moving", n)
	}

	if err := c.OnResult(at(1000), res); err != nil {
		t.Fatalf("OnResult: %v", err)
	}
	if c.State() != StateSettled {
		t.Errorf("expected settled, got %v", c.State())
	}

	events := c.Tick(at(1016))
	if len(events) != 1 || events[0].Kind != EventSettled {
		t.Errorf("expected a single settled event, got %+v", events)
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle on the tick after settling, got %v", c.State())
	}
	for i := 0; i < p.ReelCount; i++ {
		for j := 0; j < p.RowCount; j++ {
			if got, want := c.SymbolAt(i, j), res.Symbols[i*p.RowCount+j]; got != want {
				t.Errorf("reel %d row %d: expected %q, got %q", i, j, want, got)
			}
		}
	}
}

func TestStoppedReelShowsResultBeforeSettle(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)
	res := authoritative(p)

	c.StartSpin(at(0))
	tickRange(c, 0, 496, 16)
	if err := c.OnResult(at(500), res); err != nil {
		t.Fatalf("OnResult: %v", err)
	}
	tickRange(c, 512, 2048, 16)

	if c.ReelPhase(0, at(2048)) != 1 {
		t.Fatalf("expected reel 0 stopped by 2048ms")
	}
	if c.State() != StateReconciling {
		t.Fatalf("expected other reels still spinning, got %v", c.State())
	}
	for j := 0; j < p.RowCount; j++ {
		if got, want := c.SymbolAt(0, j), res.Symbols[j]; got != want {
			t.Errorf("row %d: expected wrapped cell to carry %q, got %q", j, want, got)
		}
	}
}

func TestDuplicateResultDoesNotReconcileTwice(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)

	c.StartSpin(at(0))
	tickRange(c, 0, 400, 16)
	_ = c.OnResult(at(400), authoritative(p))

	tw := c.ActiveTweens()[0]
	to, d := tw.To(), tw.Duration()

	_ = c.OnResult(at(450), authoritative(p))
	if tw.To() != to || tw.Duration() != d {
		t.Errorf("expected second delivery to leave tween untouched, got to %v->%v, duration %v->%v", to, tw.To(), d, tw.Duration())
	}
}

func TestProvisionalCellsUsePlaceholders(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)

	allowed := make(map[string]bool)
	for _, s := range p.Symbols {
		allowed[s] = true
	}

	c.StartSpin(at(0))
	for ms := 0; ms <= 3000; ms += 16 {
		c.Tick(at(ms))
		for i := 0; i < p.ReelCount; i++ {
			for j := 0; j < p.RowCount; j++ {
				if s := c.SymbolAt(i, j); !allowed[s] {
					t.Fatalf("at %dms reel %d row %d: unexpected symbol %q", ms, i, j, s)
				}
			}
		}
	}
}

func TestMotionBlurTracksLastTick(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)

	c.StartSpin(at(0))
	c.Tick(at(0))
	c.Tick(at(100))

	r := c.Reel(0)
	want := (r.Position() - r.PreviousPosition()) * blurFactor
	if r.MotionBlur() != want || want <= 0 {
		t.Errorf("expected positive blur %v, got %v", want, r.MotionBlur())
	}

	c.Tick(at(100))
	if r.MotionBlur() != 0 {
		t.Errorf("expected zero blur on a repeated tick, got %v", r.MotionBlur())
	}
}

func TestSpinAfterSettleStartsNewCycle(t *testing.T) {
	p := scenarioParams()
	c, _ := newTestController(t, p)

	c.StartSpin(at(0))
	first := c.SpinID()
	_ = c.OnResult(at(100), authoritative(p))
	tickRange(c, 0, 6000, 16)

	if !c.StartSpin(at(6000)) {
		t.Fatalf("expected a second spin to start")
	}
	if c.SpinID() == first {
		t.Errorf("expected a fresh spin id")
	}
	if c.HasResult() {
		t.Errorf("expected the previous result to be dropped")
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no reels", func(p *Params) { p.ReelCount = 0 }},
		{"no rows", func(p *Params) { p.RowCount = 0 }},
		{"negative last duration", func(p *Params) { p.BaseDuration = time.Second; p.DurationStep = -time.Second }},
		{"no reconcile time", func(p *Params) { p.MinRunTime = 0; p.DurationPadding = 0 }},
		{"no symbols", func(p *Params) { p.Symbols = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := New(p, nil); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestCellOffsetFollowsPosition(t *testing.T) {
	c, _ := newTestController(t, DefaultParams())
	if len(c.Reels()) != c.ReelCount() {
		t.Fatalf("expected %d reels, got %d", c.ReelCount(), len(c.Reels()))
	}

	c.Reel(2).SetProperty(PropPosition, 1.5)
	want := []float64{0.5, 1.5, -0.5}
	for j, w := range want {
		if got := c.CellOffset(2, j); got != w {
			t.Errorf("cell %d: expected offset %v, got %v", j, w, got)
		}
	}
	if got := c.CellOffset(0, 0); got != -1 {
		t.Errorf("expected resting cell 0 at offset -1, got %v", got)
	}
}

func TestAbortStopsSpinInPlace(t *testing.T) {
	p := scenarioParams()
	c, sched := newTestController(t, p)

	c.StartSpin(at(0))
	tickRange(c, 0, 400, 16)
	pos, syms := snapshot(c)

	c.Abort()
	if c.State() != StateIdle {
		t.Errorf("expected idle after abort, got %v", c.State())
	}
	if sched.Len() != 0 || len(c.ActiveTweens()) != 0 {
		t.Errorf("expected no tweens after abort, scheduler has %d", sched.Len())
	}

	if events := tickRange(c, 416, 6000, 16); len(events) != 0 {
		t.Errorf("expected no events after abort, got %d", len(events))
	}
	pos2, syms2 := snapshot(c)
	for i := range pos {
		if pos[i] != pos2[i] {
			t.Errorf("reel %d moved after abort", i)
		}
		for j := range syms[i] {
			if syms[i][j] != syms2[i][j] {
				t.Errorf("reel %d cell %d changed after abort", i, j)
			}
		}
	}

	if !c.StartSpin(at(6000)) {
		t.Errorf("expected a new spin after abort")
	}
}

func TestActiveTweensSkipForeignTweens(t *testing.T) {
	c, sched := newTestController(t, scenarioParams())

	other := newReel(3)
	if _, err := sched.Schedule(at(0), tween.Spec{Target: other, Key: PropPosition, To: 5, Duration: time.Minute}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.StartSpin(at(0))
	c.Tick(at(700))

	active := c.ActiveTweens()
	if len(active) != 3 {
		t.Fatalf("expected reels 0..2 in flight, got %d", len(active))
	}
	for i, tw := range active {
		if tw.Target() != c.Reel(i) {
			t.Errorf("tween %d: expected target reel %d", i, i)
		}
	}
}
