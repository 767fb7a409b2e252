package jobs

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/logger"
)

// SendAreaDigests processes every due subscription serially and emails each
// recipient a digest of new activity in its area.
func (jr *JobRunner) SendAreaDigests() {
	jr.runWithRecovery("SendAreaDigests", func() {
		if err := jr.runDigest(context.Background(), time.Now().UTC()); err != nil {
			logger.Error("Digest run aborted", "error", err)
		}
	})
}

// runDigest visits due subscriptions one at a time, in ascending last-sent
// order with never-notified rows first. Successful sends accumulate into a
// batch of watermarks; on the first failure the run stops, the batch of
// already-sent subscriptions is still flushed, and the error surfaces.
// Unsent subscriptions stay due for the next scheduled invocation.
func (jr *JobRunner) runDigest(ctx context.Context, now time.Time) error {
	candidates, err := jr.subs.ListDue(ctx, now)
	if err != nil {
		return fmt.Errorf("listing due subscriptions: %w", err)
	}
	if len(candidates) == 0 {
		logger.Info("No subscriptions due")
		return nil
	}

	var (
		marks   []domain.SentMark
		failure error
		skipped int
	)

	for _, c := range candidates {
		if c.RecipientEmail == "" {
			// Data quality, not an error: skip and keep going.
			logger.Warn("Subscription has no recipient email, skipping",
				"subject_kind", string(c.SubjectKind), "subject_id", c.SubjectID, "area_id", c.AreaID)
			skipped++
			continue
		}

		digest, err := jr.services.Activity.AreaDigest(ctx, c.AreaID, c.NotificationLastSent, jr.config.Digest.PageSize)
		if err != nil {
			failure = fmt.Errorf("aggregating activity for area %d: %w", c.AreaID, err)
			break
		}
		if digest.Empty() {
			logger.Debug("No new activity for subscription",
				"subject_kind", string(c.SubjectKind), "subject_id", c.SubjectID, "area_id", c.AreaID)
			skipped++
			continue
		}

		area, err := jr.areas.GetByID(ctx, c.AreaID)
		if err != nil {
			failure = fmt.Errorf("loading area %d: %w", c.AreaID, err)
			break
		}

		unsubscribeURL, err := jr.unsubscribeURL(c)
		if err != nil {
			failure = fmt.Errorf("signing unsubscribe link: %w", err)
			break
		}

		if err := jr.services.Email.SendDigest(ctx, c.RecipientEmail, c.RecipientName, areaDisplayName(area), digest, unsubscribeURL); err != nil {
			failure = fmt.Errorf("sending digest to %s: %w", c.RecipientEmail, err)
			break
		}

		marks = append(marks, domain.SentMark{
			SubjectKind: c.SubjectKind,
			SubjectID:   c.SubjectID,
			AreaID:      c.AreaID,
		})
		logger.Debug("Digest sent",
			"subject_kind", string(c.SubjectKind), "subject_id", c.SubjectID, "area_id", c.AreaID,
			"created", len(digest.Created), "updated", len(digest.Updated), "cleaned", len(digest.Cleaned))
	}

	// Flush whatever succeeded, even when the run aborted partway: sent
	// digests must never be re-sent, unsent ones stay due.
	if err := jr.subs.MarkSent(ctx, marks, now); err != nil {
		if failure != nil {
			logger.Error("Digest run failed and watermark flush failed too", "send_error", failure)
		}
		return fmt.Errorf("marking %d subscriptions sent: %w", len(marks), err)
	}

	logger.Info("Digest run finished",
		"due", len(candidates), "sent", len(marks), "skipped", skipped, "aborted", failure != nil)
	return failure
}

func (jr *JobRunner) unsubscribeURL(c domain.DigestCandidate) (string, error) {
	token, err := jr.tokens.Generate(string(c.SubjectKind), c.SubjectID, c.AreaID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/v1/unsubscribe?token=%s", jr.config.Digest.BaseURL, url.QueryEscape(token)), nil
}

func areaDisplayName(a *domain.Area) string {
	for _, name := range []string{a.Street, a.SubLocality, a.Locality, a.AA3, a.AA2, a.AA1, a.Country, a.Continent} {
		if name != "" {
			return name
		}
	}
	return fmt.Sprintf("area %d", a.ID)
}
