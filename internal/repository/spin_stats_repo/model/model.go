package model

import "time"

// SpinStats is a snapshot of spin cycle counters
type SpinStats struct {
	TotalSpins        int // spins started
	Settled           int // cycles that landed on a result
	Rejected          int // results dropped by validation
	Anomalies         int // results that arrived before a spin or after the reels stopped
	DuplicateRequests int // spin presses while reels were moving

	AvgLatency    time.Duration // mean spin to settle time over all cycles
	WindowLatency time.Duration // mean over the last WindowSize cycles
	WindowSize    int
}
