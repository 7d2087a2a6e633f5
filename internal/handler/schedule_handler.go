package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmari/studio-booking-api/internal/models"
	"github.com/calmari/studio-booking-api/internal/service"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
	"github.com/calmari/studio-booking-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleCandidate, *models.Pagination, error)
	Get(ctx context.Context, scheduleType models.ScheduleType, id int64) (*models.ScheduleCandidate, error)
	Create(ctx context.Context, req service.CreateScheduleRequest) (*service.ScheduleMutationResult, error)
	Update(ctx context.Context, scheduleType models.ScheduleType, id int64, req service.UpdateScheduleRequest) (*service.ScheduleMutationResult, error)
	Delete(ctx context.Context, scheduleType models.ScheduleType, id int64) error
}

// ScheduleHandler manages schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

func scheduleTypeParam(c *gin.Context) (models.ScheduleType, bool) {
	scheduleType := models.ScheduleType(c.Param("type"))
	if scheduleType != models.ScheduleTypeTeacher && scheduleType != models.ScheduleTypeVenue {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "schedule type must be teacher or venue"))
		return "", false
	}
	return scheduleType, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule id"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary List schedules
// @Tags Schedules
// @Produce json
// @Param type query string false "Filter by type (teacher|venue)"
// @Param dayOfWeek query string false "Filter by day"
// @Param teacherId query int false "Filter by teacher"
// @Param venueId query int false "Filter by venue"
// @Param available query bool false "Filter by availability"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter
	filter.Type = models.ScheduleType(c.Query("type"))
	if raw := c.Query("dayOfWeek"); raw != "" {
		day, err := models.ParseDayOfWeek(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid day of week"))
			return
		}
		filter.DayOfWeek = day
	}
	if raw := c.Query("teacherId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.TeacherID = id
		}
	}
	if raw := c.Query("venueId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.VenueID = id
		}
	}
	if raw := c.Query("available"); raw != "" {
		if available, err := strconv.ParseBool(raw); err == nil {
			filter.IsAvailable = &available
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	schedules, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, pagination)
}

// Get godoc
// @Summary Get a schedule
// @Tags Schedules
// @Produce json
// @Param type path string true "Schedule type (teacher|venue)"
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{type}/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	scheduleType, ok := scheduleTypeParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	schedule, err := h.service.Get(c.Request.Context(), scheduleType, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Create godoc
// @Summary Create schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Update schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param type path string true "Schedule type (teacher|venue)"
// @Param id path int true "Schedule ID"
// @Param payload body service.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{type}/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	scheduleType, ok := scheduleTypeParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Update(c.Request.Context(), scheduleType, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete schedule
// @Tags Schedules
// @Produce json
// @Param type path string true "Schedule type (teacher|venue)"
// @Param id path int true "Schedule ID"
// @Success 204
// @Router /schedules/{type}/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	scheduleType, ok := scheduleTypeParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), scheduleType, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
