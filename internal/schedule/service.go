package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	mqcontracts "schedule-service/contracts/mq"
	"schedule-service/internal/model"
	"schedule-service/pkg/metrics"
)

// ScheduleStore persists schedules with their milestones.
type ScheduleStore interface {
	// Replace atomically deletes any existing schedule for the project
	// and inserts the new schedule with its milestones.
	Replace(ctx context.Context, s *model.Schedule, milestones []model.Milestone) (int, error)
	FindByProjectID(ctx context.Context, projectID int) (*model.Schedule, []model.Milestone, error)
}

// MilestoneStore mutates individual milestones.
type MilestoneStore interface {
	MarkCompleted(ctx context.Context, id int) (*model.ProjectMilestone, error)
}

// Notifier is the one-way event dispatch contract. Delivery failures are
// the caller's to log; nothing waits for confirmation.
type Notifier interface {
	Publish(routingKey string, payload any) error
}

// Service owns schedule generation, status reporting and milestone
// completion. Project existence is the project service's concern and is
// not checked here.
type Service struct {
	schedules  ScheduleStore
	milestones MilestoneStore
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(schedules ScheduleStore, milestones MilestoneStore, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		schedules:  schedules,
		milestones: milestones,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateResult reports the outcome of a schedule generation.
type CreateResult struct {
	ScheduleID     int `json:"schedule_id"`
	MilestoneCount int `json:"milestone_count"`
}

// Create generates the nine-milestone plan for a project and replaces any
// prior schedule in a single transaction.
func (s *Service) Create(ctx context.Context, projectID int, publishDate time.Time, params PlanParams) (*CreateResult, error) {
	plan := BuildPlan(publishDate, params)

	sched := &model.Schedule{
		ProjectID:   projectID,
		PublishDate: publishDate,
	}

	id, err := s.schedules.Replace(ctx, sched, plan)
	if err != nil {
		s.logger.Error("Failed to replace schedule",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.IncrementScheduleGeneration()
	s.logger.Info("Schedule generated",
		zap.Int("schedule_id", id),
		zap.Int("project_id", projectID),
		zap.Time("publish_date", publishDate),
		zap.Int("milestone_count", len(plan)),
	)

	return &CreateResult{ScheduleID: id, MilestoneCount: len(plan)}, nil
}

// View is a schedule with its milestones annotated for reporting.
type View struct {
	Schedule   *model.Schedule         `json:"schedule"`
	Milestones []model.MilestoneStatus `json:"milestones"`
}

// Get returns the project's schedule with overdue and countdown fields
// derived against the current time. Returns model.ErrScheduleNotFound
// when the project has no schedule.
func (s *Service) Get(ctx context.Context, projectID int) (*View, error) {
	sched, milestones, err := s.schedules.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	annotated := make([]model.MilestoneStatus, 0, len(milestones))
	for _, m := range milestones {
		annotated = append(annotated, Annotate(m, now))
	}

	return &View{Schedule: sched, Milestones: annotated}, nil
}

// Complete marks one milestone completed and emits a milestone.completed
// event. The schedule is static once generated: sibling due dates are
// never recomputed. Event publish failures are logged and swallowed.
func (s *Service) Complete(ctx context.Context, milestoneID int) (*model.ProjectMilestone, error) {
	m, err := s.milestones.MarkCompleted(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	metrics.IncrementMilestoneCompleted()

	payload := mqcontracts.MilestoneCompletedPayload{
		MilestoneID: m.ID,
		ProjectID:   m.ProjectID,
		Type:        m.Type,
		Title:       m.Title,
		DueDate:     m.DueDate,
	}
	if m.CompletedAt != nil {
		payload.CompletedAt = *m.CompletedAt
	}

	if err := s.notifier.Publish("milestone.completed", payload); err != nil {
		s.logger.Error("Failed to publish milestone.completed event",
			zap.Int("milestone_id", m.ID),
			zap.Int("project_id", m.ProjectID),
			zap.Error(err),
		)
	} else {
		s.logger.Info("Published milestone.completed event",
			zap.Int("milestone_id", m.ID),
			zap.Int("project_id", m.ProjectID),
		)
	}

	return m, nil
}
