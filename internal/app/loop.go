package app

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"reelspin/internal/clock"
	"reelspin/internal/converter"
	"reelspin/internal/model"
	"reelspin/internal/reel"
	"reelspin/internal/render"
	"reelspin/internal/repository"
	repoModel "reelspin/internal/repository/spin_stats_repo/model"
	"reelspin/internal/service"
)

type Drawer interface {
	Draw(now time.Time, v render.View, stats repoModel.SpinStats)
}

type Clicker interface {
	PlayStop(reel int)
}

type LoopDeps struct {
	Controller *reel.Controller
	Results    service.ResultService
	Stats      repository.SpinStatsRepository
	Screen     tcell.Screen
	Renderer   Drawer
	Player     Clicker
	Clock      clock.Clock
	Interval   time.Duration
	Log        *zap.Logger
}

// Loop drives the reel controller from a frame ticker.
// Input and result deliveries are funneled onto the loop goroutine, the controller never sees another goroutine
type Loop struct {
	LoopDeps
}

func NewLoop(deps LoopDeps) *Loop {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Interval <= 0 {
		deps.Interval = 16 * time.Millisecond
	}
	return &Loop{LoopDeps: deps}
}

// Run blocks until the player quits or ctx is done. The screen is finalized on return
func (l *Loop) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	events := make(chan tcell.Event, 64)
	results := make(chan model.SpinResult, 4)

	l.Results.RegisterResultHandler(func(res model.SpinResult) {
		select {
		case results <- res:
		case <-ctx.Done():
		}
	})

	g.Go(func() error {
		for {
			ev := l.Screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		// PollEvent returns nil once the screen is finalized
		defer l.Screen.Fini()
		defer cancel()
		return l.run(ctx, events, results)
	})

	return g.Wait()
}

func (l *Loop) run(ctx context.Context, events <-chan tcell.Event, results <-chan model.SpinResult) error {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	l.frame()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !l.handleEvent(ctx, ev) {
				return nil
			}

		case res := <-results:
			l.handleResult(res)

		case <-ticker.C:
			l.frame()
		}
	}
}

// handleEvent returns false when the player asks to quit
func (l *Loop) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			l.spin(ctx)
		}

	case *tcell.EventResize:
		l.Screen.Sync()
	}
	return true
}

func (l *Loop) spin(ctx context.Context) {
	now := l.Clock.Now()
	if !l.Controller.StartSpin(now) {
		l.Stats.RecordDuplicateRequest()
		return
	}
	l.Stats.RecordSpin()

	req := model.SpinRequest{ID: l.Controller.SpinID(), RequestedAt: now}
	if err := l.Results.RequestSpin(ctx, req); err != nil {
		// No result will come for this spin
		l.Log.Error("spin request failed", zap.String("spin_id", req.ID.String()), zap.Error(err))
		l.Controller.Abort()
	}
}

func (l *Loop) handleResult(res model.SpinResult) {
	now := l.Clock.Now()
	before := l.Controller.State()

	if err := l.Controller.OnResult(now, res); err != nil {
		l.Stats.RecordRejected()
		l.Log.Error("spin result rejected", zap.String("request_id", res.RequestID.String()), zap.Error(err))
		return
	}

	if !before.Spinning() || l.Controller.State() == reel.StateSettled {
		l.Stats.RecordAnomaly()
	}

	if board, err := converter.SpinResultToBoard(res, l.Controller.ReelCount(), l.Controller.RowCount()); err == nil {
		l.Log.Debug("spin result accepted",
			zap.String("request_id", res.RequestID.String()),
			zap.Stringer("state", l.Controller.State()),
			zap.Any("board", board))
	}
}

func (l *Loop) frame() {
	now := l.Clock.Now()
	for _, ev := range l.Controller.Tick(now) {
		switch ev.Kind {
		case reel.EventReelStopped:
			l.Player.PlayStop(ev.Reel)
		case reel.EventSettled:
			l.Stats.RecordSettled(now.Sub(l.Controller.SpinStart()))
		}
	}
	l.Renderer.Draw(now, l.Controller, l.Stats.Stats())
}
