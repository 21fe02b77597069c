package jobs

import (
	"context"
	"time"

	"sponsorship-backend/internal/logger"
)

// PurgeSponsorships deletes terminal sponsorship rows marked to_delete once
// their grace period has passed. Rows updated within the grace window stay so
// support can still inspect a recent revocation.
func (jr *JobRunner) PurgeSponsorships() {
	jr.runWithRecovery("PurgeSponsorships", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.PurgeGraceDays)
		purged, err := jr.store.SponsorshipRepository.DeleteMarked(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge sponsorships", "error", err)
			return
		}
		logger.Info("Purged marked sponsorships", "count", purged, "cutoff", cutoff)
	})
}
