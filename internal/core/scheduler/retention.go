package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	LeadRetentionJob  = "lead-retention"
	AuditRetentionJob = "audit-retention"
)

const purgeTimeout = 2 * time.Minute

// Purger deletes rows older than the retention window.
type Purger interface {
	PurgeStale(ctx context.Context, retentionDays int) (int64, error)
}

// Retention returns a job body that runs purger with its own deadline.
func Retention(job string, purger Purger, retentionDays int) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		n, err := purger.PurgeStale(ctx, retentionDays)
		if err != nil {
			log.Error().Err(err).Str("job", job).Msg("purge failed")
			return
		}
		log.Info().Str("job", job).Int64("deleted", n).Int("retention_days", retentionDays).Msg("purge finished")
	}
}

// LeadRetention purges closed leads.
func LeadRetention(purger Purger, retentionDays int) func() {
	return Retention(LeadRetentionJob, purger, retentionDays)
}
