package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
	"github.com/calmari/studio-booking-api/pkg/response"
)

type conflictService interface {
	CheckConflicts(ctx context.Context, proposed models.ProposedSchedule) (*models.ConflictVerdict, error)
}

type daySummaryService interface {
	SummarizeDay(ctx context.Context, day models.DayOfWeek) (*models.DaySummary, error)
}

// CheckConflictsRequest wraps the proposed schedule under validation.
type CheckConflictsRequest struct {
	Schedule models.ProposedSchedule `json:"schedule" binding:"required"`
}

// ConflictHandler exposes the conflict engine over HTTP.
type ConflictHandler struct {
	conflicts conflictService
	summaries daySummaryService
}

// NewConflictHandler constructs handler.
func NewConflictHandler(conflicts conflictService, summaries daySummaryService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts, summaries: summaries}
}

// Check godoc
// @Summary Check a proposed schedule for conflicts
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param payload body CheckConflictsRequest true "Proposed schedule"
// @Success 200 {object} response.Envelope
// @Router /schedule-conflicts [post]
func (h *ConflictHandler) Check(c *gin.Context) {
	var req CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	verdict, err := h.conflicts.CheckConflicts(c.Request.Context(), req.Schedule)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, verdict, nil)
}

// DaySummary godoc
// @Summary Summarize duplicates and warnings across a day
// @Tags Conflicts
// @Produce json
// @Param day path string true "Day of week (Monday..Sunday)"
// @Success 200 {object} response.Envelope
// @Router /schedule-duplicates/{day} [get]
func (h *ConflictHandler) DaySummary(c *gin.Context) {
	summary, err := h.summaries.SummarizeDay(c.Request.Context(), models.DayOfWeek(c.Param("day")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
