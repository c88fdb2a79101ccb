package env

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors config.yaml, fields missing from the file keep their defaults
type fileConfig struct {
	Reels reelSection  `yaml:"reels"`
	Board boardSection `yaml:"board"`
}

type reelSection struct {
	Count           int           `yaml:"count"`
	Rows            int           `yaml:"rows"`
	Delay           time.Duration `yaml:"delay"`
	BaseDuration    time.Duration `yaml:"base_duration"`
	DurationStep    time.Duration `yaml:"duration_step"`
	ExtraDuration   time.Duration `yaml:"extra_duration"`
	BaseDistance    float64       `yaml:"base_distance"`
	DistanceStep    float64       `yaml:"distance_step"`
	MaxExtra        int           `yaml:"max_extra"`
	MinRunTime      time.Duration `yaml:"min_run_time"`
	DurationPadding time.Duration `yaml:"duration_padding"`
	Overshoot       float64       `yaml:"overshoot"`
	Backout         float64       `yaml:"backout"`
	Symbols         []string      `yaml:"symbols"`
}

type boardSection struct {
	ResponseDelayMin time.Duration    `yaml:"response_delay_min"`
	ResponseDelayMax time.Duration    `yaml:"response_delay_max"`
	Weights          []map[string]int `yaml:"weights"`
	Fixed            []string         `yaml:"fixed"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Reels: reelSection{
			Count:           5,
			Rows:            3,
			Delay:           300 * time.Millisecond,
			BaseDuration:    2500 * time.Millisecond,
			DurationStep:    600 * time.Millisecond,
			ExtraDuration:   600 * time.Millisecond,
			BaseDistance:    10,
			DistanceStep:    5,
			MaxExtra:        2,
			MinRunTime:      2 * time.Second,
			DurationPadding: 600 * time.Millisecond,
			Overshoot:       6,
			Backout:         0.5,
			Symbols:         []string{"1", "2", "3", "4", "5", "6", "7", "8", "K"},
		},
		Board: boardSection{
			ResponseDelayMin: 400 * time.Millisecond,
			ResponseDelayMax: 1500 * time.Millisecond,
		},
	}
}

func readYAML(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := defaultFileConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
