package jobs

import (
	"context"
	"fmt"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/logger"
)

// SendEventReminders runs the confirmation and feedback passes. They are
// independent: a failure in one is logged and never stops the other.
func (jr *JobRunner) SendEventReminders() {
	jr.runWithRecovery("SendEventReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		if err := jr.runEventConfirmations(ctx, now); err != nil {
			logger.Error("Event confirmation pass failed", "error", err)
		}
		if err := jr.runEventFeedback(ctx, now); err != nil {
			logger.Error("Event feedback pass failed", "error", err)
		}
	})
}

// runEventConfirmations emails attendees of events starting in 1-2 days.
// The sent flag is only set once every attendee email went out, so a
// partial failure retries the event on the next run.
func (jr *JobRunner) runEventConfirmations(ctx context.Context, now time.Time) error {
	events, err := jr.events.ListNeedingConfirmation(ctx, now)
	if err != nil {
		return fmt.Errorf("listing events needing confirmation: %w", err)
	}

	count := 0
	for _, event := range events {
		if err := jr.remindAttendees(ctx, event, jr.services.Email.SendEventConfirmation); err != nil {
			return fmt.Errorf("confirming event %d: %w", event.ID, err)
		}
		if err := jr.events.MarkConfirmationSent(ctx, event.ID); err != nil {
			return fmt.Errorf("marking event %d confirmed: %w", event.ID, err)
		}
		count++
	}

	logger.Info("Event confirmations sent", "events", count)
	return nil
}

// runEventFeedback emails attendees of events that ended 1-2 days ago,
// guarded the same way as confirmations.
func (jr *JobRunner) runEventFeedback(ctx context.Context, now time.Time) error {
	events, err := jr.events.ListNeedingFeedback(ctx, now)
	if err != nil {
		return fmt.Errorf("listing events needing feedback: %w", err)
	}

	count := 0
	for _, event := range events {
		if err := jr.remindAttendees(ctx, event, jr.services.Email.SendEventFeedback); err != nil {
			return fmt.Errorf("requesting feedback for event %d: %w", event.ID, err)
		}
		if err := jr.events.MarkFeedbackSent(ctx, event.ID); err != nil {
			return fmt.Errorf("marking event %d feedback sent: %w", event.ID, err)
		}
		count++
	}

	logger.Info("Event feedback requests sent", "events", count)
	return nil
}

func (jr *JobRunner) remindAttendees(ctx context.Context, event domain.Event, send func(context.Context, string, string, *domain.Event) error) error {
	attendees, err := jr.events.Attendees(ctx, event.ID)
	if err != nil {
		return err
	}

	for _, a := range attendees {
		if a.Email == "" {
			logger.Warn("Attendee has no email, skipping", "event_id", event.ID, "user_id", a.UserID)
			continue
		}
		if err := send(ctx, a.Email, a.Name, &event); err != nil {
			return err
		}
	}
	return nil
}
