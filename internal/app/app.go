package app

import (
	"context"

	"go.uber.org/zap"

	"reelspin/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run(ctx context.Context) error {
	envErr := config.Load(".env")
	s.initServiceProvider()

	log := s.ServiceProvider.Logger()
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Warn("error loading .env file", zap.Error(envErr))
	}

	player := s.ServiceProvider.AudioPlayer()
	if err := player.Init(); err != nil {
		// Non-fatal, the reels run without sound
		log.Warn("audio initialization failed", zap.Error(err))
	}
	defer player.Close()

	results := s.ServiceProvider.ResultService()
	defer results.Close()

	log.Info("starting reels",
		zap.Int("reels", s.ServiceProvider.ReelCfg().ReelCount()),
		zap.Int("rows", s.ServiceProvider.ReelCfg().RowCount()),
		zap.Duration("frame_interval", s.ServiceProvider.TerminalCfg().FrameInterval()))

	err := s.ServiceProvider.Loop().Run(ctx)

	st := s.ServiceProvider.SpinStatsRepository().Stats()
	log.Info("reels stopped",
		zap.Int("spins", st.TotalSpins),
		zap.Int("settled", st.Settled),
		zap.Int("rejected", st.Rejected),
		zap.Int("anomalies", st.Anomalies),
		zap.Int("duplicate_requests", st.DuplicateRequests),
		zap.Duration("avg_latency", st.AvgLatency))
	return err
}
