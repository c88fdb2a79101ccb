package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)

	clickLength = 40 * time.Millisecond
	// Reel 0 clicks at baseFreq, each later reel a step higher
	baseFreq  = 660.0
	freqStep  = 55.0
	clickGain = -0.7
)

// Player plays the reel stop click. A disabled or uninitialized player is silent
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	initialized bool
	log         *zap.Logger
}

func NewPlayer(enabled bool, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: enabled,
		log:     log,
	}
}

// Init opens the speaker. Failure leaves the player silent and is not fatal
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayStop queues the click for reel i
func (p *Player) PlayStop(reel int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := stopClick(reel)
	if err != nil {
		p.log.Debug("stop click skipped", zap.Int("reel", reel), zap.Error(err))
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

func stopClick(reel int) (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, baseFreq+float64(reel)*freqStep)
	if err != nil {
		return nil, err
	}
	return &effects.Gain{
		Streamer: beep.Take(sampleRate.N(clickLength), tone),
		Gain:     clickGain,
	}, nil
}
