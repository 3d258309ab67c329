package schedule

import (
	"time"

	"schedule-service/internal/model"
)

// PlanParams are the lead times and review windows, in calendar days,
// used to place milestones around a publish date. Values are taken as-is:
// a negative or oversized count simply shifts the computed dates, which
// is the caller's responsibility to avoid.
type PlanParams struct {
	ConceptSubmissionDays int `json:"concept_submission_days"`
	ConceptReviewDays     int `json:"concept_review_days"`
	ConceptRevisionDays   int `json:"concept_revision_days"`
	VideoSubmissionDays   int `json:"video_submission_days"`
	VideoReviewDays       int `json:"video_review_days"`
	VideoRevisionDays     int `json:"video_revision_days"`
}

type planStep struct {
	milestoneType string
	title         string
	description   string
}

// The nine production milestones, in emission order.
var planSteps = [9]planStep{
	{model.MilestoneTypeConceptApproval, "First concept draft", "First concept/script draft due from the creator."},
	{model.MilestoneTypeConceptApproval, "Concept review", "Client review of the first concept draft complete."},
	{model.MilestoneTypeConceptApproval, "Concept revision", "Revised concept/script due from the creator."},
	{model.MilestoneTypeConceptApproval, "Concept final approval", "Client sign-off on the revised concept."},
	{model.MilestoneTypeProduction, "First video draft", "First video cut due from the creator."},
	{model.MilestoneTypeProduction, "Video review", "Client review of the first video cut complete."},
	{model.MilestoneTypeProduction, "Video revision", "Revised video cut due from the creator."},
	{model.MilestoneTypeFinalApproval, "Final approval", "Client sign-off on the revised video cut."},
	{model.MilestoneTypePublish, "Publish", "Publish the approved content."},
}

// BuildPlan computes the nine production milestones for a publish date.
// The first concept deadline counts backward from the publish date; every
// following deadline chains forward from the previous one, with the
// review window applied again after each revision. The last milestone is
// always the publish date itself.
func BuildPlan(publishDate time.Time, p PlanParams) []model.Milestone {
	var due [9]time.Time
	due[0] = publishDate.AddDate(0, 0, -p.ConceptSubmissionDays)
	due[1] = due[0].AddDate(0, 0, p.ConceptReviewDays)
	due[2] = due[1].AddDate(0, 0, p.ConceptRevisionDays)
	due[3] = due[2].AddDate(0, 0, p.ConceptReviewDays)
	due[4] = due[3].AddDate(0, 0, p.VideoSubmissionDays)
	due[5] = due[4].AddDate(0, 0, p.VideoReviewDays)
	due[6] = due[5].AddDate(0, 0, p.VideoRevisionDays)
	due[7] = due[6].AddDate(0, 0, p.VideoReviewDays)
	due[8] = publishDate

	milestones := make([]model.Milestone, 0, len(planSteps))
	for i, step := range planSteps {
		milestones = append(milestones, model.Milestone{
			Type:        step.milestoneType,
			Title:       step.title,
			Description: step.description,
			DueDate:     due[i],
		})
	}
	return milestones
}
