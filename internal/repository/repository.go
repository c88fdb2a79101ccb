package repository

import (
	"time"

	repoModel "reelspin/internal/repository/spin_stats_repo/model"
)

// SpinStatsRepository records spin cycle outcomes for the status line
type SpinStatsRepository interface {
	RecordSpin()
	RecordDuplicateRequest()
	RecordSettled(latency time.Duration)
	RecordRejected()
	RecordAnomaly()
	Stats() repoModel.SpinStats
}
