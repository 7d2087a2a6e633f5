package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmari/studio-booking-api/internal/models"
	"github.com/calmari/studio-booking-api/pkg/response"
)

type directoryService interface {
	ListTeachers(ctx context.Context, activeOnly bool) ([]models.Teacher, error)
	ListVenues(ctx context.Context, activeOnly bool) ([]models.Venue, error)
}

// DirectoryHandler serves the teacher and venue rosters.
type DirectoryHandler struct {
	service directoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(svc directoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

func activeOnlyQuery(c *gin.Context) bool {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	return err == nil && activeOnly
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Directory
// @Produce json
// @Param active query bool false "Active teachers only"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *DirectoryHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.service.ListTeachers(c.Request.Context(), activeOnlyQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// ListVenues godoc
// @Summary List venues
// @Tags Directory
// @Produce json
// @Param active query bool false "Active venues only"
// @Success 200 {object} response.Envelope
// @Router /venues [get]
func (h *DirectoryHandler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context(), activeOnlyQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venues, nil)
}
