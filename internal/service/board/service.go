package board

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reelspin/internal/config"
	"reelspin/internal/model"
	"reelspin/internal/service"
)

var (
	ErrClosed    = errors.New("result service is closed")
	ErrNoHandler = errors.New("result handler is not registered")
)

type serv struct {
	cfg  config.BoardConfig
	rows int
	log  *zap.Logger

	mtx     sync.Mutex
	rnd     *rand.Rand
	handler func(model.SpinResult)
	pending map[uuid.UUID]*delivery
	closed  bool
}

type delivery struct {
	timer *time.Timer
	// stop detaches the ctx cancel hook
	stop func() bool
}

// NewBoardService creates an in-process result server that draws boards by weight
// and answers after a random delay
func NewBoardService(cfg config.BoardConfig, rows int, log *zap.Logger, rnd *rand.Rand) service.ResultService {
	if log == nil {
		log = zap.NewNop()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &serv{
		cfg:     cfg,
		rows:    rows,
		log:     log,
		rnd:     rnd,
		pending: make(map[uuid.UUID]*delivery),
	}
}

func (s *serv) RegisterResultHandler(h func(model.SpinResult)) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.handler = h
}

// RequestSpin draws the board now and delivers it later.
// Cancelling ctx before delivery drops the result
func (s *serv) RequestSpin(ctx context.Context, req model.SpinRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.handler == nil {
		return ErrNoHandler
	}

	res := s.nextResult()
	res.RequestID = req.ID
	delay := s.nextDelay()

	// The timer callback takes mtx, so it cannot observe d before it is complete
	d := &delivery{}
	d.timer = time.AfterFunc(delay, func() {
		s.deliver(ctx, req.ID, res)
	})
	d.stop = context.AfterFunc(ctx, func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		if cur, ok := s.pending[req.ID]; ok && cur == d && d.timer.Stop() {
			delete(s.pending, req.ID)
			s.log.Info("spin request cancelled before delivery", zap.String("request_id", req.ID.String()))
		}
	})
	s.pending[req.ID] = d

	s.log.Debug("spin request accepted",
		zap.String("request_id", req.ID.String()),
		zap.Duration("delay", delay))
	return nil
}

func (s *serv) deliver(ctx context.Context, id uuid.UUID, res model.SpinResult) {
	s.mtx.Lock()
	d, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
		d.stop()
	}
	h := s.handler
	closed := s.closed
	s.mtx.Unlock()

	if !ok || closed || h == nil {
		return
	}
	if ctx.Err() != nil {
		s.log.Info("spin result dropped, request cancelled", zap.String("request_id", id.String()))
		return
	}
	h(res)
}

// Close stops every pending delivery
func (s *serv) Close() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, d := range s.pending {
		d.timer.Stop()
		d.stop()
		delete(s.pending, id)
	}
}

func (s *serv) nextDelay() time.Duration {
	lo, hi := s.cfg.ResponseDelay()
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rnd.Int63n(int64(hi-lo)+1))
}
