package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"schedule-service/internal/model"
)

type MilestoneRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMilestoneRepository(db *pgxpool.Pool, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{
		db:     db,
		logger: logger,
	}
}

// MarkCompleted sets the completion flag and timestamp on one milestone
// and returns the updated row with its owning project. Sibling due dates
// are untouched. Returns model.ErrMilestoneNotFound when absent.
func (r *MilestoneRepository) MarkCompleted(ctx context.Context, id int) (*model.ProjectMilestone, error) {
	var m model.ProjectMilestone
	err := r.db.QueryRow(ctx, `
        UPDATE milestones m
        SET is_completed = TRUE, completed_at = NOW()
        FROM schedules s
        WHERE m.id = $1 AND s.id = m.schedule_id
        RETURNING m.id, m.schedule_id, s.project_id, m.type, m.title, m.description,
                  m.due_date, m.is_completed, m.completed_at, m.notification_sent
    `, id).Scan(
		&m.ID,
		&m.ScheduleID,
		&m.ProjectID,
		&m.Type,
		&m.Title,
		&m.Description,
		&m.DueDate,
		&m.IsCompleted,
		&m.CompletedAt,
		&m.NotificationSent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMilestoneNotFound
		}
		r.logger.Error("Failed to mark milestone completed",
			zap.Int("milestone_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Info("Milestone marked completed",
		zap.Int("milestone_id", m.ID),
		zap.Int("project_id", m.ProjectID),
	)
	return &m, nil
}

// ListDueBetween returns uncompleted, not-yet-notified milestones whose
// due date falls in [start, end), joined to their owning project.
func (r *MilestoneRepository) ListDueBetween(ctx context.Context, start, end time.Time) ([]model.ProjectMilestone, error) {
	rows, err := r.db.Query(ctx, `
        SELECT m.id, m.schedule_id, s.project_id, m.type, m.title, m.description,
               m.due_date, m.is_completed, m.completed_at, m.notification_sent
        FROM milestones m
        JOIN schedules s ON s.id = m.schedule_id
        WHERE m.due_date >= $1 AND m.due_date < $2
          AND m.is_completed = FALSE
          AND m.notification_sent = FALSE
        ORDER BY m.due_date ASC
    `, start, end)
	if err != nil {
		r.logger.Error("Failed to list due milestones", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var milestones []model.ProjectMilestone
	for rows.Next() {
		var m model.ProjectMilestone
		if err := rows.Scan(
			&m.ID,
			&m.ScheduleID,
			&m.ProjectID,
			&m.Type,
			&m.Title,
			&m.Description,
			&m.DueDate,
			&m.IsCompleted,
			&m.CompletedAt,
			&m.NotificationSent,
		); err != nil {
			r.logger.Error("Failed to scan milestone", zap.Error(err))
			return nil, err
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return milestones, nil
}

// MarkNotified flags one milestone so later sweeps skip it.
func (r *MilestoneRepository) MarkNotified(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE milestones SET notification_sent = TRUE WHERE id = $1
    `, id)
	if err != nil {
		r.logger.Error("Failed to mark milestone notified",
			zap.Int("milestone_id", id),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMilestoneNotFound
	}
	return nil
}
