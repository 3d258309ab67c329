package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	mqcontracts "schedule-service/contracts/mq"
	"schedule-service/internal/model"
	"schedule-service/pkg/metrics"
)

// ReminderStore lists and flags milestones for the day-before sweep.
type ReminderStore interface {
	ListDueBetween(ctx context.Context, start, end time.Time) ([]model.ProjectMilestone, error)
	MarkNotified(ctx context.Context, id int) error
}

// Sweeper emits day-before reminders for milestones due the next
// calendar day. Delivery is best effort: a failed publish is logged, the
// milestone is still flagged, and the sweep moves on. The
// notification_sent flag keeps reminders at-most-once across runs.
type Sweeper struct {
	store    ReminderStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewSweeper(store ReminderStore, notifier Notifier, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the sweeper clock.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run executes one sweep and returns the number of milestones notified.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	started := s.now()
	start, end := ReminderWindow(started)

	s.logger.Info("Running reminder sweep",
		zap.Time("window_start", start),
		zap.Time("window_end", end),
	)

	due, err := s.store.ListDueBetween(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to list milestones due tomorrow", zap.Error(err))
		return 0, err
	}

	notified := 0
	for _, m := range due {
		payload := mqcontracts.MilestoneReminderPayload{
			MilestoneID: m.ID,
			ProjectID:   m.ProjectID,
			Type:        m.Type,
			Title:       m.Title,
			DueDate:     m.DueDate,
		}

		if err := s.notifier.Publish("milestone.reminder", payload); err != nil {
			// Best effort: the milestone is still flagged below so a
			// broker hiccup cannot cause duplicate reminders later.
			s.logger.Error("Failed to publish milestone.reminder event",
				zap.Int("milestone_id", m.ID),
				zap.Int("project_id", m.ProjectID),
				zap.Error(err),
			)
		}

		if err := s.store.MarkNotified(ctx, m.ID); err != nil {
			s.logger.Error("Failed to mark milestone as notified",
				zap.Int("milestone_id", m.ID),
				zap.Error(err),
			)
			continue
		}

		notified++
		s.logger.Info("Reminder sent",
			zap.Int("milestone_id", m.ID),
			zap.Int("project_id", m.ProjectID),
			zap.Time("due_date", m.DueDate),
		)
	}

	metrics.AddRemindersSent(notified)
	metrics.RecordSweepDuration(time.Since(started))
	s.logger.Info("Reminder sweep completed",
		zap.Int("candidates", len(due)),
		zap.Int("notified", notified),
	)
	return notified, nil
}
