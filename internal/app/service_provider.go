package app

import (
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"reelspin/internal/audio"
	"reelspin/internal/clock"
	"reelspin/internal/config"
	"reelspin/internal/config/env"
	"reelspin/internal/reel"
	"reelspin/internal/render"
	"reelspin/internal/repository"
	"reelspin/internal/repository/spin_stats_repo"
	"reelspin/internal/service"
	"reelspin/internal/service/board"
	"reelspin/internal/tween"
	"reelspin/pkg/logger"
)

type ServiceProvider struct {
	// Config
	terminalCfg config.TerminalConfig
	logCfg      config.LogConfig
	reelCfg     config.ReelConfig
	boardCfg    config.BoardConfig

	log *zap.Logger
	clk clock.Clock

	// Reel bits
	sched *tween.Scheduler
	ctrl  *reel.Controller

	// Result server bits
	resultServ service.ResultService
	statsRepo  repository.SpinStatsRepository

	// Terminal bits
	screen   tcell.Screen
	renderer *render.Renderer
	player   *audio.Player
	loop     *Loop
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) TerminalCfg() config.TerminalConfig {
	if sp.terminalCfg == nil {
		cfg, err := env.NewTerminalConfig()
		if err != nil {
			panic("failed to get terminal config: " + err.Error())
		}
		sp.terminalCfg = cfg
	}
	return sp.terminalCfg
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) ReelCfg() config.ReelConfig {
	if sp.reelCfg == nil {
		cfg, err := env.NewReelConfigFromYAML(sp.TerminalCfg().ConfigPath())
		if err != nil {
			panic("failed to get reel config: " + err.Error())
		}
		sp.reelCfg = cfg
	}
	return sp.reelCfg
}

func (sp *ServiceProvider) BoardCfg() config.BoardConfig {
	if sp.boardCfg == nil {
		cfg, err := env.NewBoardConfigFromYAML(sp.TerminalCfg().ConfigPath())
		if err != nil {
			panic("failed to get board config: " + err.Error())
		}
		sp.boardCfg = cfg
	}
	return sp.boardCfg
}

// Logger writes to files only, the terminal belongs to the renderer
func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		cfg := sp.LogCfg()
		mode := logger.Dev
		if cfg.Production() {
			mode = logger.Prod
		}
		sp.log = logger.New(&logger.Config{
			Mode:  mode,
			Level: cfg.Level(),
			App:   cfg.App(),
			Dir:   cfg.Dir(),
			File:  cfg.File(),
			Quiet: true,
		})
	}
	return sp.log
}

func (sp *ServiceProvider) Clock() clock.Clock {
	if sp.clk == nil {
		sp.clk = clock.NewReal()
	}
	return sp.clk
}

func (sp *ServiceProvider) Scheduler() *tween.Scheduler {
	if sp.sched == nil {
		sp.sched = tween.NewScheduler()
	}
	return sp.sched
}

func (sp *ServiceProvider) ReelController() *reel.Controller {
	if sp.ctrl == nil {
		c, err := reel.New(reelParams(sp.ReelCfg()), sp.Scheduler(),
			reel.WithLogger(sp.Logger().Named("reel")),
			reel.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		)
		if err != nil {
			panic("failed to create reel controller: " + err.Error())
		}
		sp.ctrl = c
	}
	return sp.ctrl
}

func (sp *ServiceProvider) ResultService() service.ResultService {
	if sp.resultServ == nil {
		sp.resultServ = board.NewBoardService(
			sp.BoardCfg(),
			sp.ReelCfg().RowCount(),
			sp.Logger().Named("board"),
			rand.New(rand.NewSource(time.Now().UnixNano())),
		)
	}
	return sp.resultServ
}

func (sp *ServiceProvider) SpinStatsRepository() repository.SpinStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = spin_stats_repo.NewSpinStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) Screen() tcell.Screen {
	if sp.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			panic("failed to create screen: " + err.Error())
		}
		if err := s.Init(); err != nil {
			panic("failed to init screen: " + err.Error())
		}
		sp.screen = s
	}
	return sp.screen
}

func (sp *ServiceProvider) Renderer() *render.Renderer {
	if sp.renderer == nil {
		sp.renderer = render.New(sp.Screen())
	}
	return sp.renderer
}

func (sp *ServiceProvider) AudioPlayer() *audio.Player {
	if sp.player == nil {
		sp.player = audio.NewPlayer(sp.TerminalCfg().AudioEnabled(), sp.Logger().Named("audio"))
	}
	return sp.player
}

func (sp *ServiceProvider) Loop() *Loop {
	if sp.loop == nil {
		sp.loop = NewLoop(LoopDeps{
			Controller: sp.ReelController(),
			Results:    sp.ResultService(),
			Stats:      sp.SpinStatsRepository(),
			Screen:     sp.Screen(),
			Renderer:   sp.Renderer(),
			Player:     sp.AudioPlayer(),
			Clock:      sp.Clock(),
			Interval:   sp.TerminalCfg().FrameInterval(),
			Log:        sp.Logger().Named("loop"),
		})
	}
	return sp.loop
}

func reelParams(cfg config.ReelConfig) reel.Params {
	return reel.Params{
		ReelCount:       cfg.ReelCount(),
		RowCount:        cfg.RowCount(),
		ReelDelay:       cfg.ReelDelay(),
		BaseDuration:    cfg.BaseDuration(),
		DurationStep:    cfg.DurationStep(),
		ExtraDuration:   cfg.ExtraDuration(),
		BaseDistance:    cfg.BaseDistance(),
		DistanceStep:    cfg.DistanceStep(),
		MaxExtra:        cfg.MaxExtra(),
		MinRunTime:      cfg.MinRunTime(),
		DurationPadding: cfg.DurationPadding(),
		Overshoot:       cfg.Overshoot(),
		BackoutAmount:   cfg.BackoutAmount(),
		Symbols:         cfg.Symbols(),
	}
}
