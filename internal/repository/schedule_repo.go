package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"schedule-service/internal/model"
)

type ScheduleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewScheduleRepository(db *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		db:     db,
		logger: logger,
	}
}

// Replace deletes any existing schedule for the project and inserts the
// new schedule with its milestones in one transaction, so a reader never
// observes a schedule with zero milestones mid-replacement. Milestone
// rows of a deleted schedule go with it via the FK cascade. Concurrent
// replacements for one project serialize on the project_id unique row;
// the last commit wins.
func (r *ScheduleRepository) Replace(ctx context.Context, s *model.Schedule, milestones []model.Milestone) (int, error) {
	r.logger.Debug("Replacing schedule",
		zap.Int("project_id", s.ProjectID),
		zap.Int("milestone_count", len(milestones)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE project_id = $1`, s.ProjectID); err != nil {
		r.logger.Error("Failed to delete prior schedule",
			zap.Int("project_id", s.ProjectID),
			zap.Error(err),
		)
		return 0, err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO schedules (project_id, publish_date)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at
    `, s.ProjectID, s.PublishDate).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert schedule",
			zap.Int("project_id", s.ProjectID),
			zap.Error(err),
		)
		return 0, err
	}

	batch := &pgx.Batch{}
	for i := range milestones {
		milestones[i].ScheduleID = s.ID
		batch.Queue(`
            INSERT INTO milestones (schedule_id, type, title, description, due_date)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id
        `,
			milestones[i].ScheduleID,
			milestones[i].Type,
			milestones[i].Title,
			milestones[i].Description,
			milestones[i].DueDate,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range milestones {
		if err := br.QueryRow().Scan(&milestones[i].ID); err != nil {
			br.Close()
			r.logger.Error("Failed to insert milestone",
				zap.Int("schedule_id", s.ID),
				zap.String("title", milestones[i].Title),
				zap.Error(err),
			)
			return 0, err
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit schedule replacement", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Schedule replaced successfully",
		zap.Int("id", s.ID),
		zap.Int("project_id", s.ProjectID),
		zap.Int("milestone_count", len(milestones)),
	)
	return s.ID, nil
}

// FindByProjectID loads the project's schedule and its milestones in
// emission order. Returns model.ErrScheduleNotFound when absent.
func (r *ScheduleRepository) FindByProjectID(ctx context.Context, projectID int) (*model.Schedule, []model.Milestone, error) {
	var s model.Schedule
	err := r.db.QueryRow(ctx, `
        SELECT id, project_id, publish_date, created_at, updated_at
        FROM schedules
        WHERE project_id = $1
    `, projectID).Scan(&s.ID, &s.ProjectID, &s.PublishDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, model.ErrScheduleNotFound
		}
		r.logger.Error("Failed to find schedule",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, schedule_id, type, title, description, due_date, is_completed, completed_at, notification_sent
        FROM milestones
        WHERE schedule_id = $1
        ORDER BY id ASC
    `, s.ID)
	if err != nil {
		r.logger.Error("Failed to find milestones",
			zap.Int("schedule_id", s.ID),
			zap.Error(err),
		)
		return nil, nil, err
	}
	defer rows.Close()

	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(
			&m.ID,
			&m.ScheduleID,
			&m.Type,
			&m.Title,
			&m.Description,
			&m.DueDate,
			&m.IsCompleted,
			&m.CompletedAt,
			&m.NotificationSent,
		); err != nil {
			r.logger.Error("Failed to scan milestone", zap.Error(err))
			return nil, nil, err
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &s, milestones, nil
}
