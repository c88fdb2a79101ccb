package spin_stats_repo

import (
	"sync"
	"time"

	repoModel "reelspin/internal/repository/spin_stats_repo/model"
)

// windowSize is how many recent cycles feed the windowed latency
const windowSize = 50

type StatsRepo struct {
	mtx    sync.RWMutex
	stats  repoModel.SpinStats
	total  time.Duration
	window []time.Duration
}

func NewSpinStatsRepository() *StatsRepo {
	return &StatsRepo{
		stats:  repoModel.SpinStats{WindowSize: windowSize},
		window: make([]time.Duration, 0, windowSize),
	}
}

// Stats returns a copy of the current counters
func (r *StatsRepo) Stats() repoModel.SpinStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.stats
}

func (r *StatsRepo) RecordSpin() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.stats.TotalSpins++
}

func (r *StatsRepo) RecordDuplicateRequest() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.stats.DuplicateRequests++
}

func (r *StatsRepo) RecordRejected() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.stats.Rejected++
}

func (r *StatsRepo) RecordAnomaly() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.stats.Anomalies++
}

// RecordSettled counts a landed cycle and folds its latency into both averages
func (r *StatsRepo) RecordSettled(latency time.Duration) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.stats.Settled++
	r.total += latency
	r.stats.AvgLatency = r.total / time.Duration(r.stats.Settled)

	r.window = append(r.window, latency)
	if len(r.window) > windowSize {
		r.window = r.window[1:]
	}

	var sum time.Duration
	for _, l := range r.window {
		sum += l
	}
	r.stats.WindowLatency = sum / time.Duration(len(r.window))
}
