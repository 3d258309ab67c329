package mq

import "time"

// MilestoneCompletedPayload is published on milestone.completed. The
// notification dispatcher resolves the project's client and matched
// creator from the project ID.
type MilestoneCompletedPayload struct {
	MilestoneID int       `json:"milestone_id"`
	ProjectID   int       `json:"project_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	CompletedAt time.Time `json:"completed_at"`
}

// MilestoneReminderPayload is published on milestone.reminder for
// milestones due the next calendar day.
type MilestoneReminderPayload struct {
	MilestoneID int       `json:"milestone_id"`
	ProjectID   int       `json:"project_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
}
