package schedule

import (
	"math"
	"time"

	"schedule-service/internal/model"
)

// Annotate derives the read-time status fields for a milestone as of now.
func Annotate(m model.Milestone, now time.Time) model.MilestoneStatus {
	return model.MilestoneStatus{
		Milestone:    m,
		IsOverdue:    now.After(m.DueDate) && !m.IsCompleted,
		DaysUntilDue: daysUntil(m.DueDate, now),
	}
}

// daysUntil is the ceiling of due-now in whole days; negative once the
// deadline is more than a day in the past.
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// ReminderWindow returns the 24-hour window starting at the next midnight
// after now, in now's location. Milestones due inside it are "due
// tomorrow" for the reminder sweep.
func ReminderWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return start, start.AddDate(0, 0, 1)
}
