package schedule

import (
	"testing"
	"time"

	"schedule-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildPlanProducesNineMilestones(t *testing.T) {
	plan := BuildPlan(date(2025, 6, 30), PlanParams{
		ConceptSubmissionDays: 30,
		ConceptReviewDays:     2,
		ConceptRevisionDays:   3,
		VideoSubmissionDays:   7,
		VideoReviewDays:       2,
		VideoRevisionDays:     3,
	})

	if len(plan) != 9 {
		t.Fatalf("Expected 9 milestones, got %d", len(plan))
	}

	for i := 1; i < len(plan); i++ {
		if plan[i].DueDate.Before(plan[i-1].DueDate) {
			t.Errorf("Milestone %d due %v precedes milestone %d due %v",
				i, plan[i].DueDate, i-1, plan[i-1].DueDate)
		}
	}

	last := plan[len(plan)-1]
	if !last.DueDate.Equal(date(2025, 6, 30)) {
		t.Errorf("Expected final milestone due on publish date, got %v", last.DueDate)
	}
	if last.Type != model.MilestoneTypePublish {
		t.Errorf("Expected final milestone type %q, got %q", model.MilestoneTypePublish, last.Type)
	}
}

func TestBuildPlanOffsets(t *testing.T) {
	params := PlanParams{
		ConceptSubmissionDays: 14,
		ConceptReviewDays:     2,
		ConceptRevisionDays:   4,
		VideoSubmissionDays:   6,
		VideoReviewDays:       3,
		VideoRevisionDays:     5,
	}
	publish := date(2025, 9, 1)
	plan := BuildPlan(publish, params)

	days := func(from, to time.Time) int {
		return int(to.Sub(from).Hours() / 24)
	}

	if got := days(plan[0].DueDate, publish); got != params.ConceptSubmissionDays {
		t.Errorf("Concept submission lead: expected %d days, got %d", params.ConceptSubmissionDays, got)
	}

	// Review window is applied again after each revision (steps 4 and 8).
	offsets := []int{
		params.ConceptReviewDays,
		params.ConceptRevisionDays,
		params.ConceptReviewDays,
		params.VideoSubmissionDays,
		params.VideoReviewDays,
		params.VideoRevisionDays,
		params.VideoReviewDays,
	}
	for i, want := range offsets {
		if got := days(plan[i].DueDate, plan[i+1].DueDate); got != want {
			t.Errorf("Step %d -> %d offset: expected %d days, got %d", i+1, i+2, want, got)
		}
	}
}

func TestBuildPlanMilestoneTypes(t *testing.T) {
	plan := BuildPlan(date(2025, 6, 30), PlanParams{})

	wantTypes := []string{
		model.MilestoneTypeConceptApproval,
		model.MilestoneTypeConceptApproval,
		model.MilestoneTypeConceptApproval,
		model.MilestoneTypeConceptApproval,
		model.MilestoneTypeProduction,
		model.MilestoneTypeProduction,
		model.MilestoneTypeProduction,
		model.MilestoneTypeFinalApproval,
		model.MilestoneTypePublish,
	}
	for i, want := range wantTypes {
		if plan[i].Type != want {
			t.Errorf("Milestone %d: expected type %q, got %q", i, want, plan[i].Type)
		}
	}

	for i, m := range plan {
		if m.IsCompleted || m.CompletedAt != nil || m.NotificationSent {
			t.Errorf("Milestone %d: expected fresh flags, got %+v", i, m)
		}
		if m.Title == "" || m.Description == "" {
			t.Errorf("Milestone %d: expected title and description to be set", i)
		}
	}
}

// A tight lead time makes the video steps land after the publish date.
// The generator does no bounds checking on purpose; this pins down that
// behavior rather than correcting it.
func TestBuildPlanTightLeadTimeOvershootsPublish(t *testing.T) {
	plan := BuildPlan(date(2025, 3, 31), PlanParams{
		ConceptSubmissionDays: 10,
		ConceptReviewDays:     2,
		ConceptRevisionDays:   3,
		VideoSubmissionDays:   5,
		VideoReviewDays:       2,
		VideoRevisionDays:     3,
	})

	want := []time.Time{
		date(2025, 3, 21), // concept submission
		date(2025, 3, 23), // concept review
		date(2025, 3, 26), // concept revision
		date(2025, 3, 28), // concept final
		date(2025, 4, 2),  // video submission, past publish already
		date(2025, 4, 4),  // video review
		date(2025, 4, 7),  // video revision
		date(2025, 4, 9),  // video final
		date(2025, 3, 31), // publish
	}
	for i, w := range want {
		if !plan[i].DueDate.Equal(w) {
			t.Errorf("Milestone %d: expected due %v, got %v", i, w, plan[i].DueDate)
		}
	}

	if !plan[4].DueDate.After(plan[8].DueDate) {
		t.Error("Expected video submission to overshoot the publish date with these inputs")
	}
}

func TestBuildPlanZeroParams(t *testing.T) {
	publish := date(2025, 6, 30)
	plan := BuildPlan(publish, PlanParams{})

	for i, m := range plan {
		if !m.DueDate.Equal(publish) {
			t.Errorf("Milestone %d: expected due on publish date with zero params, got %v", i, m.DueDate)
		}
	}
}
