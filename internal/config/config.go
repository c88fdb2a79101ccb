package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Load reads key=value pairs from path into the process environment
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type ReelConfig interface {
	ReelCount() int
	RowCount() int
	ReelDelay() time.Duration
	BaseDuration() time.Duration
	DurationStep() time.Duration
	ExtraDuration() time.Duration
	BaseDistance() float64
	DistanceStep() float64
	MaxExtra() int
	MinRunTime() time.Duration
	DurationPadding() time.Duration
	Overshoot() float64
	BackoutAmount() float64
	Symbols() []string
}

type BoardConfig interface {
	// SymbolWeights holds one weight table per reel
	SymbolWeights() []map[string]int
	ResponseDelay() (min, max time.Duration)
	// FixedBoard, when set, is returned for every spin
	FixedBoard() []string
}

type LogConfig interface {
	Level() string
	Dir() string
	App() string
	File() bool
	Production() bool
}

type TerminalConfig interface {
	FrameInterval() time.Duration
	AudioEnabled() bool
	ConfigPath() string
}
