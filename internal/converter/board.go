package converter

import (
	"fmt"

	"reelspin/internal/model"
)

// BoardToSpinResult flattens a board reel-major, reel r row j lands at r*rows + j
func BoardToSpinResult(board model.Board) model.SpinResult {
	var symbols []string
	for _, reel := range board {
		symbols = append(symbols, reel...)
	}
	return model.SpinResult{Symbols: symbols}
}

// SpinResultToBoard splits a flat result back into reels
func SpinResultToBoard(res model.SpinResult, reels, rows int) (model.Board, error) {
	if reels <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid board layout %dx%d", reels, rows)
	}
	if len(res.Symbols) != reels*rows {
		return nil, fmt.Errorf("result has %d symbols, want %d", len(res.Symbols), reels*rows)
	}

	board := model.NewBoard(reels, rows)
	for r := range board {
		copy(board[r], res.Symbols[r*rows:(r+1)*rows])
	}
	return board, nil
}
