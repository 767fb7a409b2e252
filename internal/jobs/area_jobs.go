package jobs

import (
	"context"

	"cleanspot-backend/internal/logger"
)

// BackfillZoomLevels runs the one-time zoom classification pass over
// imported countries. Safe to re-run: already-classified rows are excluded
// by the tier selection.
func (jr *JobRunner) BackfillZoomLevels() {
	jr.runWithRecovery("BackfillZoomLevels", func() {
		report, err := jr.services.Area.ClassifyZoomLevels(context.Background())
		if err != nil {
			logger.Error("Zoom classification failed", "error", err)
			return
		}
		logger.Info("Zoom classification finished",
			"assigned_per_tier", report.AssignedPerTier,
			"unclassified_countries", report.Unclassified)
	})
}
