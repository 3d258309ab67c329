package model

import "time"

// Milestone types, matching the production workflow phases.
const (
	MilestoneTypeConceptApproval = "concept_approval"
	MilestoneTypeProduction      = "production"
	MilestoneTypeFinalApproval   = "final_approval"
	MilestoneTypePublish         = "publish"
)

// Schedule is the single production timeline attached to one project.
// At most one active schedule exists per project; creating a new one
// replaces the old schedule and all its milestones.
type Schedule struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Milestone is one dated checkpoint within a schedule. CompletedAt is
// non-nil iff IsCompleted is true.
type Milestone struct {
	ID               int        `json:"id"`
	ScheduleID       int        `json:"schedule_id"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DueDate          time.Time  `json:"due_date"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	NotificationSent bool       `json:"notification_sent"`
}

// MilestoneStatus is a milestone annotated with fields derived at read
// time; neither field is persisted.
type MilestoneStatus struct {
	Milestone
	IsOverdue    bool `json:"is_overdue"`
	DaysUntilDue int  `json:"days_until_due"`
}

// ProjectMilestone is a milestone joined to its schedule's project, used
// where the owning project must travel with the row (events, reminders).
type ProjectMilestone struct {
	Milestone
	ProjectID int `json:"project_id"`
}
