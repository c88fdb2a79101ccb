package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"reelspin/internal/config"
)

const (
	frameIntervalEnvName = "FRAME_INTERVAL"
	audioEnabledEnvName  = "AUDIO_ENABLED"
	configPathEnvName    = "CONFIG_PATH"

	defaultFrameInterval = 16 * time.Millisecond
	defaultConfigPath    = "config.yaml"
)

type terminalConfig struct {
	frameInterval time.Duration
	audio         bool
	configPath    string
}

func NewTerminalConfig() (config.TerminalConfig, error) {
	cfg := &terminalConfig{
		frameInterval: defaultFrameInterval,
		audio:         true,
		configPath:    defaultConfigPath,
	}

	if v := os.Getenv(frameIntervalEnvName); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid frame interval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("frame interval must be positive, got %v", d)
		}
		cfg.frameInterval = d
	}

	if v := os.Getenv(audioEnabledEnvName); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid audio flag: %w", err)
		}
		cfg.audio = on
	}

	if v := os.Getenv(configPathEnvName); v != "" {
		cfg.configPath = v
	}

	return cfg, nil
}

func (c *terminalConfig) FrameInterval() time.Duration { return c.frameInterval }
func (c *terminalConfig) AudioEnabled() bool { return c.audio }
func (c *terminalConfig) ConfigPath() string { return c.configPath }
