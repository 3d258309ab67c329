package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedule-service/internal/handler"
	"schedule-service/internal/httpserver"
	"schedule-service/internal/model"
	"schedule-service/internal/schedule"
	"schedule-service/internal/util"
)

const testSecret = "test-secret"

type stubScheduleStore struct {
	schedules  map[int]*model.Schedule
	milestones map[int][]model.Milestone
	nextID     int
}

func newStubScheduleStore() *stubScheduleStore {
	return &stubScheduleStore{
		schedules:  make(map[int]*model.Schedule),
		milestones: make(map[int][]model.Milestone),
	}
}

func (s *stubScheduleStore) Replace(ctx context.Context, sched *model.Schedule, milestones []model.Milestone) (int, error) {
	s.nextID++
	sched.ID = s.nextID
	s.schedules[sched.ProjectID] = sched
	s.milestones[sched.ProjectID] = milestones
	return sched.ID, nil
}

func (s *stubScheduleStore) FindByProjectID(ctx context.Context, projectID int) (*model.Schedule, []model.Milestone, error) {
	sched, ok := s.schedules[projectID]
	if !ok {
		return nil, nil, model.ErrScheduleNotFound
	}
	return sched, s.milestones[projectID], nil
}

type stubMilestoneStore struct {
	byID map[int]*model.ProjectMilestone
}

func (s *stubMilestoneStore) MarkCompleted(ctx context.Context, id int) (*model.ProjectMilestone, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, model.ErrMilestoneNotFound
	}
	m.IsCompleted = true
	now := time.Now()
	m.CompletedAt = &now
	return m, nil
}

type stubNotifier struct{}

func (stubNotifier) Publish(routingKey string, payload any) error { return nil }

func newTestRouter(t *testing.T, store *stubScheduleStore, milestones *stubMilestoneStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := schedule.NewService(store, milestones, stubNotifier{}, zap.NewNop())
	h := handler.NewScheduleHandler(svc, zap.NewNop())
	return httpserver.NewRouter(h, zap.NewNop(), nil, testSecret)
}

func authedRequest(t *testing.T, method, target string, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	token, err := util.GenerateJWT(1, testSecret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateScheduleEndpoint(t *testing.T) {
	store := newStubScheduleStore()
	router := newTestRouter(t, store, &stubMilestoneStore{})

	body := `{
        "publish_date": "2025-07-31T00:00:00Z",
        "concept_submission_days": 20,
        "concept_review_days": 2,
        "concept_revision_days": 3,
        "video_submission_days": 5,
        "video_review_days": 2,
        "video_revision_days": 3
    }`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/projects/42/schedule", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var result schedule.CreateResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.MilestoneCount != 9 {
		t.Errorf("Expected milestone_count 9, got %d", result.MilestoneCount)
	}
	if len(store.milestones[42]) != 9 {
		t.Errorf("Expected 9 stored milestones, got %d", len(store.milestones[42]))
	}
}

func TestCreateScheduleRejectsBadInput(t *testing.T) {
	router := newTestRouter(t, newStubScheduleStore(), &stubMilestoneStore{})

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"non-numeric project id", "/projects/abc/schedule", `{"publish_date": "2025-07-31T00:00:00Z"}`},
		{"missing publish date", "/projects/42/schedule", `{"concept_review_days": 2}`},
		{"malformed json", "/projects/42/schedule", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, authedRequest(t, http.MethodPost, tt.target, tt.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}

func TestGetScheduleNotFound(t *testing.T) {
	router := newTestRouter(t, newStubScheduleStore(), &stubMilestoneStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/projects/42/schedule", ""))

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "schedule not found") {
		t.Errorf("Expected schedule not found message, got %s", w.Body.String())
	}
}

func TestGetScheduleAnnotated(t *testing.T) {
	store := newStubScheduleStore()
	store.schedules[42] = &model.Schedule{ID: 1, ProjectID: 42, PublishDate: time.Now().AddDate(0, 0, 30)}
	store.milestones[42] = []model.Milestone{
		{ID: 2, ScheduleID: 1, Type: model.MilestoneTypeConceptApproval, DueDate: time.Now().AddDate(0, 0, -2)},
	}
	router := newTestRouter(t, store, &stubMilestoneStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/projects/42/schedule", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view schedule.View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(view.Milestones) != 1 {
		t.Fatalf("Expected 1 milestone, got %d", len(view.Milestones))
	}
	if !view.Milestones[0].IsOverdue {
		t.Error("Expected past-due milestone to be reported overdue")
	}
}

func TestCompleteMilestoneEndpoint(t *testing.T) {
	milestones := &stubMilestoneStore{
		byID: map[int]*model.ProjectMilestone{
			5: {Milestone: model.Milestone{ID: 5, ScheduleID: 1, Title: "Final approval"}, ProjectID: 42},
		},
	}
	router := newTestRouter(t, newStubScheduleStore(), milestones)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/milestones/5/complete", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !milestones.byID[5].IsCompleted {
		t.Error("Expected milestone to be completed")
	}
}

func TestCompleteMilestoneNotFound(t *testing.T) {
	router := newTestRouter(t, newStubScheduleStore(), &stubMilestoneStore{byID: map[int]*model.ProjectMilestone{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/milestones/99/complete", ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestEndpointsRequireToken(t *testing.T) {
	router := newTestRouter(t, newStubScheduleStore(), &stubMilestoneStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/42/schedule", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/projects/42/schedule", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with invalid token, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, newStubScheduleStore(), &stubMilestoneStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
