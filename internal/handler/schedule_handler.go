package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedule-service/internal/model"
	"schedule-service/internal/schedule"
	"schedule-service/pkg/logger"
)

type ScheduleHandler struct {
	svc    *schedule.Service
	logger *zap.Logger
}

func NewScheduleHandler(svc *schedule.Service, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, logger: logger}
}

type createScheduleRequest struct {
	PublishDate           time.Time `json:"publish_date" binding:"required"`
	ConceptSubmissionDays int       `json:"concept_submission_days"`
	ConceptReviewDays     int       `json:"concept_review_days"`
	ConceptRevisionDays   int       `json:"concept_revision_days"`
	VideoSubmissionDays   int       `json:"video_submission_days"`
	VideoReviewDays       int       `json:"video_review_days"`
	VideoRevisionDays     int       `json:"video_revision_days"`
}

// CreateSchedule generates (or wholesale replaces) the production
// timeline for a project.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("CreateSchedule: invalid project id",
			zap.String("project_id", c.Param("id")),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("CreateSchedule: invalid request body",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params := schedule.PlanParams{
		ConceptSubmissionDays: req.ConceptSubmissionDays,
		ConceptReviewDays:     req.ConceptReviewDays,
		ConceptRevisionDays:   req.ConceptRevisionDays,
		VideoSubmissionDays:   req.VideoSubmissionDays,
		VideoReviewDays:       req.VideoReviewDays,
		VideoRevisionDays:     req.VideoRevisionDays,
	}

	result, err := h.svc.Create(c.Request.Context(), projectID, req.PublishDate, params)
	if err != nil {
		log.Error("CreateSchedule: failed to generate schedule",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create schedule"})
		return
	}

	log.Info("CreateSchedule: success",
		zap.Int("project_id", projectID),
		zap.Int("schedule_id", result.ScheduleID),
	)
	c.JSON(http.StatusCreated, result)
}

// GetSchedule returns the project's schedule with milestones annotated
// with is_overdue and days_until_due.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("GetSchedule: invalid project id",
			zap.String("project_id", c.Param("id")),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	view, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, model.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
			return
		}
		log.Error("GetSchedule: failed to fetch schedule",
			zap.Int("project_id", projectID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// CompleteMilestone marks a single milestone completed.
func (h *ScheduleHandler) CompleteMilestone(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	milestoneID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("CompleteMilestone: invalid milestone id",
			zap.String("milestone_id", c.Param("id")),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid milestone id"})
		return
	}

	m, err := h.svc.Complete(c.Request.Context(), milestoneID)
	if err != nil {
		if errors.Is(err, model.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
			return
		}
		log.Error("CompleteMilestone: failed to complete milestone",
			zap.Int("milestone_id", milestoneID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete milestone"})
		return
	}

	log.Info("CompleteMilestone: success", zap.Int("milestone_id", milestoneID))
	c.JSON(http.StatusOK, gin.H{"milestone": m})
}
