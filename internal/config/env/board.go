package env

import (
	"fmt"
	"time"

	"reelspin/internal/config"
)

type boardConfig struct {
	weights  []map[string]int
	delayMin time.Duration
	delayMax time.Duration
	fixed    []string
}

// NewBoardConfigFromYAML reads the board section of the config file.
// Reels without a weight table draw every reel symbol with equal weight
func NewBoardConfigFromYAML(path string) (config.BoardConfig, error) {
	cfg, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	return newBoardConfig(cfg.Board, cfg.Reels)
}

func newBoardConfig(b boardSection, r reelSection) (config.BoardConfig, error) {
	if b.ResponseDelayMin < 0 || b.ResponseDelayMax < b.ResponseDelayMin {
		return nil, fmt.Errorf("invalid response delay range [%v, %v]", b.ResponseDelayMin, b.ResponseDelayMax)
	}
	if len(b.Weights) > r.Count {
		return nil, fmt.Errorf("%d weight tables for %d reels", len(b.Weights), r.Count)
	}
	if len(b.Fixed) != 0 && len(b.Fixed) != r.Count*r.Rows {
		return nil, fmt.Errorf("fixed board has %d symbols, want %d", len(b.Fixed), r.Count*r.Rows)
	}

	weights := make([]map[string]int, r.Count)
	for i := range weights {
		if i < len(b.Weights) && len(b.Weights[i]) > 0 {
			weights[i] = b.Weights[i]
			continue
		}
		uniform := make(map[string]int, len(r.Symbols))
		for _, s := range r.Symbols {
			uniform[s] = 1
		}
		weights[i] = uniform
	}

	return &boardConfig{
		weights:  weights,
		delayMin: b.ResponseDelayMin,
		delayMax: b.ResponseDelayMax,
		fixed:    b.Fixed,
	}, nil
}

func (c *boardConfig) SymbolWeights() []map[string]int { return c.weights }

func (c *boardConfig) ResponseDelay() (time.Duration, time.Duration) {
	return c.delayMin, c.delayMax
}

func (c *boardConfig) FixedBoard() []string { return c.fixed }
