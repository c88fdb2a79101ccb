package board

import (
	"maps"
	"slices"

	"reelspin/internal/converter"
	"reelspin/internal/model"
)

// nextResult returns the configured fixed board if any, else a freshly drawn one
func (s *serv) nextResult() model.SpinResult {
	if fixed := s.cfg.FixedBoard(); len(fixed) > 0 {
		return model.SpinResult{Symbols: slices.Clone(fixed)}
	}
	return converter.BoardToSpinResult(s.generateBoard())
}

// generateBoard draws every cell of every reel from that reel's weight table
func (s *serv) generateBoard() model.Board {
	weights := s.cfg.SymbolWeights()
	board := model.NewBoard(len(weights), s.rows)
	for r := range board {
		for row := range board[r] {
			board[r][row] = s.symbolFromWeights(weights[r])
		}
	}
	return board
}

// symbolFromWeights walks cumulative weights in key order so a seeded draw repeats
func (s *serv) symbolFromWeights(weights map[string]int) string {
	keys := slices.Sorted(maps.Keys(weights))

	total := 0
	for _, k := range keys {
		if w := weights[k]; w > 0 {
			total += w
		}
	}
	if total == 0 {
		if len(keys) == 0 {
			return ""
		}
		return keys[0]
	}

	num := s.rnd.Intn(total) + 1
	cumulative := 0
	for _, k := range keys {
		w := weights[k]
		if w <= 0 {
			continue
		}
		cumulative += w
		if num <= cumulative {
			return k
		}
	}
	return keys[len(keys)-1]
}
