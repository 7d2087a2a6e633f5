package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmari/studio-booking-api/internal/models"
	"github.com/calmari/studio-booking-api/internal/service"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
	"github.com/calmari/studio-booking-api/pkg/response"
)

type scheduleServiceMock struct {
	listResp   []models.ScheduleCandidate
	listErr    error
	lastFilter models.ScheduleFilter
	getResp    *models.ScheduleCandidate
	getErr     error
	createResp *service.ScheduleMutationResult
	createErr  error
	deleteErr  error
	deletedID  int64
}

func (m *scheduleServiceMock) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleCandidate, *models.Pagination, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, nil, m.listErr
	}
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, nil
}

func (m *scheduleServiceMock) Get(ctx context.Context, scheduleType models.ScheduleType, id int64) (*models.ScheduleCandidate, error) {
	return m.getResp, m.getErr
}

func (m *scheduleServiceMock) Create(ctx context.Context, req service.CreateScheduleRequest) (*service.ScheduleMutationResult, error) {
	return m.createResp, m.createErr
}

func (m *scheduleServiceMock) Update(ctx context.Context, scheduleType models.ScheduleType, id int64, req service.UpdateScheduleRequest) (*service.ScheduleMutationResult, error) {
	return m.createResp, m.createErr
}

func (m *scheduleServiceMock) Delete(ctx context.Context, scheduleType models.ScheduleType, id int64) error {
	m.deletedID = id
	return m.deleteErr
}

func TestScheduleHandlerListParsesFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleServiceMock{}
	handler := NewScheduleHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/schedules?type=teacher&dayOfWeek=monday&teacherId=5&available=true&page=2&limit=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ScheduleTypeTeacher, mockSvc.lastFilter.Type)
	assert.Equal(t, models.Monday, mockSvc.lastFilter.DayOfWeek)
	assert.Equal(t, int64(5), mockSvc.lastFilter.TeacherID)
	require.NotNil(t, mockSvc.lastFilter.IsAvailable)
	assert.True(t, *mockSvc.lastFilter.IsAvailable)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 10, mockSvc.lastFilter.PageSize)
}

func TestScheduleHandlerGetRejectsBadParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&scheduleServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/schedules/class/1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "type", Value: "class"}, {Key: "id", Value: "1"}}

	handler.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest(http.MethodGet, "/schedules/teacher/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "type", Value: "teacher"}, {Key: "id", Value: "abc"}}

	handler.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	teacherID := int64(5)
	mockSvc := &scheduleServiceMock{createResp: &service.ScheduleMutationResult{
		Schedule: &models.ScheduleCandidate{
			ID:        1,
			Type:      models.ScheduleTypeTeacher,
			DayOfWeek: models.Monday,
			StartTime: "09:00",
			EndTime:   "10:00",
			TeacherID: &teacherID,
		},
	}}
	handler := NewScheduleHandler(mockSvc)

	body := `{"type":"teacher","day_of_week":"Monday","start_time":"09:00","end_time":"10:00","teacher_id":5,"venue_id":2}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data service.ScheduleMutationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Schedule)
	assert.Equal(t, int64(1), envelope.Data.Schedule.ID)
}

func TestScheduleHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verdict := &models.ConflictVerdict{
		HasConflicts: true,
		Conflicts: []models.Conflict{{
			Type:     models.ConflictExactMatch,
			Message:  "Exact duplicate found: Main Studio on Wednesday from 18:00 to 19:00",
			Severity: models.SeverityError,
		}},
	}
	conflictErr := appErrors.Wrap(&models.ScheduleConflictError{Verdict: verdict},
		appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "schedule conflicts detected")
	mockSvc := &scheduleServiceMock{createErr: conflictErr}
	handler := NewScheduleHandler(mockSvc)

	body := `{"type":"venue","day_of_week":"Wednesday","start_time":"18:00","end_time":"19:00","venue_id":2}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrConflict.Code, envelope.Error.Code)
}

func TestScheduleHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleServiceMock{}
	handler := NewScheduleHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/schedules/venue/3", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "type", Value: "venue"}, {Key: "id", Value: "3"}}

	handler.Delete(c)
	// gin defers the status write until the response is flushed; the engine
	// normally does this, but the handler is invoked directly here.
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(3), mockSvc.deletedID)
}
