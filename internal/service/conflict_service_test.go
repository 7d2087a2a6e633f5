package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calmari/studio-booking-api/internal/models"
)

type mockConflictScheduleSource struct {
	teacherCandidates []models.ScheduleCandidate
	venueCandidates   []models.ScheduleCandidate
	teacherErr        error
	venueErr          error
	teacherCalls      int
	venueCalls        int
}

func (m *mockConflictScheduleSource) FindTeacherSchedulesByDayAndTeacher(ctx context.Context, day models.DayOfWeek, teacherID, excludeID int64) ([]models.ScheduleCandidate, error) {
	m.teacherCalls++
	if m.teacherErr != nil {
		return nil, m.teacherErr
	}
	return m.teacherCandidates, nil
}

func (m *mockConflictScheduleSource) FindVenueSchedulesByDayAndVenue(ctx context.Context, day models.DayOfWeek, venueID, excludeID int64) ([]models.ScheduleCandidate, error) {
	m.venueCalls++
	if m.venueErr != nil {
		return nil, m.venueErr
	}
	return m.venueCandidates, nil
}

type mockTeacherStatusSource struct {
	status models.TeacherStatus
	err    error
}

func (m *mockTeacherStatusSource) ActiveStatus(ctx context.Context, id int64) (models.TeacherStatus, error) {
	return m.status, m.err
}

type mockVenueStatusSource struct {
	status models.VenueStatus
	err    error
}

func (m *mockVenueStatusSource) CapacityAndStatus(ctx context.Context, id int64) (models.VenueStatus, error) {
	return m.status, m.err
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func teacherCandidate(id int64, day models.DayOfWeek, start, end string) models.ScheduleCandidate {
	return models.ScheduleCandidate{
		ID:          id,
		Type:        models.ScheduleTypeTeacher,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
		TeacherID:   int64Ptr(5),
		VenueID:     int64Ptr(2),
		TeacherName: strPtr("Alice Smith"),
		VenueName:   strPtr("Main Studio"),
	}
}

func venueCandidate(id int64, day models.DayOfWeek, start, end string, capacity int) models.ScheduleCandidate {
	return models.ScheduleCandidate{
		ID:          id,
		Type:        models.ScheduleTypeVenue,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
		VenueID:     int64Ptr(2),
		Capacity:    capacity,
		VenueName:   strPtr("Main Studio"),
	}
}

func newConflictService(schedules *mockConflictScheduleSource, teachers *mockTeacherStatusSource, venues *mockVenueStatusSource) *ConflictService {
	if teachers == nil {
		teachers = &mockTeacherStatusSource{status: models.TeacherStatus{Name: "Alice Smith", IsActive: true}}
	}
	if venues == nil {
		venues = &mockVenueStatusSource{status: models.VenueStatus{Name: "Main Studio", Capacity: 30, IsActive: true}}
	}
	return NewConflictService(schedules, teachers, venues, zap.NewNop(), nil)
}

func TestCheckConflictsOverlappingTeacherSchedule(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		teacherCandidates: []models.ScheduleCandidate{
			teacherCandidate(11, models.Monday, "09:30", "10:30"),
		},
	}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	})
	require.NoError(t, err)

	assert.True(t, verdict.HasConflicts)
	assert.False(t, verdict.Degraded)
	require.Len(t, verdict.Conflicts, 2)

	assert.Equal(t, models.ConflictTimeOverlap, verdict.Conflicts[0].Type)
	assert.Equal(t, models.SeverityError, verdict.Conflicts[0].Severity)
	assert.Equal(t, "Time overlap with existing teacher schedule: Alice Smith at Main Studio", verdict.Conflicts[0].Message)
	require.Len(t, verdict.Conflicts[0].ConflictingSchedules, 1)
	assert.Equal(t, int64(11), verdict.Conflicts[0].ConflictingSchedules[0].ID)

	assert.Equal(t, models.ConflictTeacherUnavailable, verdict.Conflicts[1].Type)
	assert.Equal(t, models.SeverityError, verdict.Conflicts[1].Severity)
	assert.Equal(t, "Teacher has conflicting schedule at Main Studio", verdict.Conflicts[1].Message)

	// The teacher candidate list is fetched once and shared across rules.
	assert.Equal(t, 1, schedules.teacherCalls)
}

func TestCheckConflictsCleanVenueSchedule(t *testing.T) {
	schedules := &mockConflictScheduleSource{}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeVenue,
		DayOfWeek: models.Tuesday,
		StartTime: "14:00",
		EndTime:   "15:00",
		VenueID:   2,
		Capacity:  10,
	})
	require.NoError(t, err)

	assert.False(t, verdict.HasConflicts)
	assert.Empty(t, verdict.Conflicts)
	assert.False(t, verdict.Degraded)
	assert.Empty(t, verdict.SkippedRules)
}

func TestCheckConflictsIdempotent(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		teacherCandidates: []models.ScheduleCandidate{
			teacherCandidate(11, models.Monday, "09:30", "10:30"),
		},
	}
	service := newConflictService(schedules, nil, nil)
	proposed := models.ProposedSchedule{
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	}

	first, err := service.CheckConflicts(context.Background(), proposed)
	require.NoError(t, err)
	second, err := service.CheckConflicts(context.Background(), proposed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheckConflictsExactMatchVenue(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		venueCandidates: []models.ScheduleCandidate{
			venueCandidate(21, models.Wednesday, "18:00", "19:00", 10),
		},
	}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeVenue,
		DayOfWeek: models.Wednesday,
		StartTime: "18:00",
		EndTime:   "19:00",
		VenueID:   2,
		Capacity:  10,
	})
	require.NoError(t, err)

	require.NotEmpty(t, verdict.Conflicts)
	assert.Equal(t, models.ConflictExactMatch, verdict.Conflicts[0].Type)
	assert.Equal(t, models.SeverityError, verdict.Conflicts[0].Severity)
	assert.Equal(t, "Exact duplicate found: Main Studio on Wednesday from 18:00 to 19:00", verdict.Conflicts[0].Message)
}

func TestCheckConflictsCombinedCapacityWarning(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		venueCandidates: []models.ScheduleCandidate{
			venueCandidate(21, models.Thursday, "10:30", "11:30", 6),
		},
	}
	venues := &mockVenueStatusSource{status: models.VenueStatus{Name: "Main Studio", Capacity: 10, IsActive: true}}
	service := newConflictService(schedules, nil, venues)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeVenue,
		DayOfWeek: models.Thursday,
		StartTime: "10:00",
		EndTime:   "11:00",
		VenueID:   2,
		Capacity:  5,
	})
	require.NoError(t, err)

	var capacityWarnings []models.Conflict
	for _, c := range verdict.Conflicts {
		if c.Type == models.ConflictCapacityExceeded {
			capacityWarnings = append(capacityWarnings, c)
		}
	}
	require.Len(t, capacityWarnings, 1)
	assert.Equal(t, models.SeverityWarning, capacityWarnings[0].Severity)
	assert.Equal(t, "Combined capacity (11) exceeds venue capacity (10)", capacityWarnings[0].Message)
	require.Len(t, capacityWarnings[0].ConflictingSchedules, 1)
}

func TestCheckConflictsCapacityExceedsVenue(t *testing.T) {
	schedules := &mockConflictScheduleSource{}
	venues := &mockVenueStatusSource{status: models.VenueStatus{Name: "Main Studio", Capacity: 10, IsActive: true}}
	service := newConflictService(schedules, nil, venues)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeVenue,
		DayOfWeek: models.Thursday,
		StartTime: "10:00",
		EndTime:   "11:00",
		VenueID:   2,
		Capacity:  15,
	})
	require.NoError(t, err)

	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, models.ConflictCapacityExceeded, verdict.Conflicts[0].Type)
	assert.Equal(t, models.SeverityError, verdict.Conflicts[0].Severity)
	assert.Equal(t, "Schedule capacity (15) exceeds venue capacity (10)", verdict.Conflicts[0].Message)
	assert.Empty(t, verdict.Conflicts[0].ConflictingSchedules)
}

func TestCheckConflictsInactiveTeacher(t *testing.T) {
	schedules := &mockConflictScheduleSource{}
	teachers := &mockTeacherStatusSource{status: models.TeacherStatus{Name: "Alice Smith", IsActive: false}}
	service := newConflictService(schedules, teachers, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	})
	require.NoError(t, err)

	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, models.ConflictTeacherUnavailable, verdict.Conflicts[0].Type)
	assert.Equal(t, "Teacher Alice Smith is not active", verdict.Conflicts[0].Message)
	assert.NotNil(t, verdict.Conflicts[0].ConflictingSchedules)
	assert.Empty(t, verdict.Conflicts[0].ConflictingSchedules)
}

func TestCheckConflictsInactiveVenue(t *testing.T) {
	schedules := &mockConflictScheduleSource{}
	venues := &mockVenueStatusSource{status: models.VenueStatus{Name: "Main Studio", Capacity: 30, IsActive: false}}
	service := newConflictService(schedules, nil, venues)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeVenue,
		DayOfWeek: models.Friday,
		StartTime: "09:00",
		EndTime:   "10:00",
		VenueID:   2,
		Capacity:  10,
	})
	require.NoError(t, err)

	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, models.ConflictVenueUnavailable, verdict.Conflicts[0].Type)
	assert.Equal(t, "Venue Main Studio is not active", verdict.Conflicts[0].Message)
}

func TestCheckConflictsSameTeacherSameDayWarning(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		teacherCandidates: []models.ScheduleCandidate{
			teacherCandidate(11, models.Monday, "14:00", "15:00"),
		},
	}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	})
	require.NoError(t, err)

	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, models.ConflictSameTeacherSameDay, verdict.Conflicts[0].Type)
	assert.Equal(t, models.SeverityWarning, verdict.Conflicts[0].Severity)
	assert.True(t, verdict.HasConflicts)
	assert.False(t, verdict.HasErrors())
}

func TestCheckConflictsExcludesSelfOnEdit(t *testing.T) {
	schedules := &mockConflictScheduleSource{
		teacherCandidates: []models.ScheduleCandidate{
			teacherCandidate(7, models.Monday, "09:00", "10:00"),
		},
	}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		ID:        7,
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	})
	require.NoError(t, err)

	assert.False(t, verdict.HasConflicts)
	assert.Empty(t, verdict.Conflicts)
}

func TestCheckConflictsDegradedOnRepositoryFailure(t *testing.T) {
	schedules := &mockConflictScheduleSource{teacherErr: errors.New("connection reset")}
	service := newConflictService(schedules, nil, nil)

	verdict, err := service.CheckConflicts(context.Background(), models.ProposedSchedule{
		Type:      models.ScheduleTypeTeacher,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		TeacherID: 5,
		VenueID:   2,
	})
	require.NoError(t, err)

	assert.True(t, verdict.Degraded)
	assert.Contains(t, verdict.SkippedRules, ruleExactMatch)
	assert.Contains(t, verdict.SkippedRules, ruleTimeOverlap)
	assert.Contains(t, verdict.SkippedRules, ruleTeacherAvailability)
	assert.Contains(t, verdict.SkippedRules, ruleSameDay)
	// Capacity and venue availability only need venue data, so they still ran.
	assert.NotContains(t, verdict.SkippedRules, ruleCapacity)
	assert.NotContains(t, verdict.SkippedRules, ruleVenueAvailability)
	// The failing fetch is attempted once, not once per rule.
	assert.Equal(t, 1, schedules.teacherCalls)
}

func TestCheckConflictsRejectsInvalidInput(t *testing.T) {
	service := newConflictService(&mockConflictScheduleSource{}, nil, nil)

	cases := []models.ProposedSchedule{
		{Type: "class", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00"},
		{Type: models.ScheduleTypeTeacher, DayOfWeek: "Moonday", StartTime: "09:00", EndTime: "10:00", TeacherID: 5, VenueID: 2},
		{Type: models.ScheduleTypeTeacher, DayOfWeek: models.Monday, StartTime: "9:00", EndTime: "10:00", TeacherID: 5, VenueID: 2},
		{Type: models.ScheduleTypeTeacher, DayOfWeek: models.Monday, StartTime: "10:00", EndTime: "09:00", TeacherID: 5, VenueID: 2},
		{Type: models.ScheduleTypeTeacher, DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00", VenueID: 2},
		{Type: models.ScheduleTypeTeacher, DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00", TeacherID: 5},
		{Type: models.ScheduleTypeVenue, DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00"},
	}
	for _, proposed := range cases {
		verdict, err := service.CheckConflicts(context.Background(), proposed)
		assert.Error(t, err, "expected %+v to be rejected", proposed)
		assert.Nil(t, verdict)
	}
}
