package env

import (
	"os"
	"strconv"

	"reelspin/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDirEnvName   = "LOG_DIR"
	logAppEnvName   = "LOG_APP"
	logFileEnvName  = "LOG_FILE"
	logModeEnvName  = "LOG_MODE"
)

type logConfig struct {
	level string
	dir   string
	app   string
	file  bool
	prod  bool
}

func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{
		level: os.Getenv(logLevelEnvName),
		dir:   os.Getenv(logDirEnvName),
		app:   os.Getenv(logAppEnvName),
		prod:  os.Getenv(logModeEnvName) == "prod",
	}
	if cfg.level == "" {
		cfg.level = "info"
	}
	if cfg.app == "" {
		cfg.app = "reelspin"
	}

	if v := os.Getenv(logFileEnvName); v != "" {
		file, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		cfg.file = file
	}

	return cfg, nil
}

func (c *logConfig) Level() string { return c.level }
func (c *logConfig) Dir() string { return c.dir }
func (c *logConfig) App() string { return c.app }
func (c *logConfig) File() bool { return c.file }
func (c *logConfig) Production() bool { return c.prod }
