package env

import (
	"errors"
	"time"

	"reelspin/internal/config"
)

type reelConfig struct {
	s reelSection
}

// NewReelConfigFromYAML reads the reels section of the config file
func NewReelConfigFromYAML(path string) (config.ReelConfig, error) {
	cfg, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	return newReelConfig(cfg.Reels)
}

func newReelConfig(s reelSection) (config.ReelConfig, error) {
	if s.Count <= 0 || s.Rows <= 0 {
		return nil, errors.New("reel count and rows must be positive")
	}
	if len(s.Symbols) == 0 {
		return nil, errors.New("reel symbols not found")
	}
	return &reelConfig{s: s}, nil
}

func (c *reelConfig) ReelCount() int { return c.s.Count }
func (c *reelConfig) RowCount() int { return c.s.Rows }
func (c *reelConfig) ReelDelay() time.Duration { return c.s.Delay }
func (c *reelConfig) BaseDuration() time.Duration { return c.s.BaseDuration }
func (c *reelConfig) DurationStep() time.Duration { return c.s.DurationStep }
func (c *reelConfig) ExtraDuration() time.Duration { return c.s.ExtraDuration }
func (c *reelConfig) BaseDistance() float64 { return c.s.BaseDistance }
func (c *reelConfig) DistanceStep() float64 { return c.s.DistanceStep }
func (c *reelConfig) MaxExtra() int { return c.s.MaxExtra }
func (c *reelConfig) MinRunTime() time.Duration { return c.s.MinRunTime }
func (c *reelConfig) DurationPadding() time.Duration { return c.s.DurationPadding }
func (c *reelConfig) Overshoot() float64 { return c.s.Overshoot }
func (c *reelConfig) BackoutAmount() float64 { return c.s.Backout }
func (c *reelConfig) Symbols() []string { return c.s.Symbols }
