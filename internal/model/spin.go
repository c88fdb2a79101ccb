package model

import (
	"time"

	"github.com/google/uuid"
)

// SpinRequest is sent to the result server when the player presses spin
type SpinRequest struct {
	ID          uuid.UUID
	RequestedAt time.Time
}

// SpinResult is the authoritative outcome of a spin.
// Symbols is flat and reel-major: reel i, row j sits at i*rows + j
type SpinResult struct {
	// RequestID echoes the request the server answered, the controller only logs it
	RequestID uuid.UUID
	Symbols   []string
}

// Board is a symbol grid indexed [reel][row]
type Board [][]string

func NewBoard(reels, rows int) Board {
	b := make(Board, reels)
	for r := range b {
		b[r] = make([]string, rows)
	}
	return b
}
