package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
)

type scheduleStore interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleCandidate, int, error)
	FindByID(ctx context.Context, scheduleType models.ScheduleType, id int64) (*models.ScheduleCandidate, error)
	Create(ctx context.Context, schedule *models.ScheduleCandidate) error
	Update(ctx context.Context, schedule *models.ScheduleCandidate) error
	Delete(ctx context.Context, scheduleType models.ScheduleType, id int64) error
}

type conflictChecker interface {
	CheckConflicts(ctx context.Context, proposed models.ProposedSchedule) (*models.ConflictVerdict, error)
}

type summaryInvalidator interface {
	InvalidateDay(ctx context.Context, day models.DayOfWeek)
}

// CreateScheduleRequest describes payload for creating a schedule.
type CreateScheduleRequest struct {
	Type        models.ScheduleType `json:"type" validate:"required,oneof=teacher venue"`
	DayOfWeek   string              `json:"day_of_week" validate:"required"`
	StartTime   string              `json:"start_time" validate:"required"`
	EndTime     string              `json:"end_time" validate:"required"`
	TeacherID   int64               `json:"teacher_id,omitempty"`
	VenueID     int64               `json:"venue_id,omitempty"`
	Capacity    int                 `json:"capacity,omitempty" validate:"omitempty,min=1"`
	MaxBookings int                 `json:"max_bookings,omitempty" validate:"omitempty,min=1"`
	IsAvailable *bool               `json:"is_available,omitempty"`
}

// UpdateScheduleRequest updates an existing schedule. The type is taken from
// the route, not the payload, since rows live in per-type tables.
type UpdateScheduleRequest struct {
	DayOfWeek   string `json:"day_of_week" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	TeacherID   int64  `json:"teacher_id,omitempty"`
	VenueID     int64  `json:"venue_id,omitempty"`
	Capacity    int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
	MaxBookings int    `json:"max_bookings,omitempty" validate:"omitempty,min=1"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

// ScheduleMutationResult carries the persisted record together with any
// advisory warnings the conflict check produced. Error-severity conflicts
// block the mutation entirely and are returned as an error instead.
type ScheduleMutationResult struct {
	Schedule     *models.ScheduleCandidate `json:"schedule"`
	Warnings     []models.Conflict         `json:"warnings,omitempty"`
	Degraded     bool                      `json:"degraded,omitempty"`
	SkippedRules []string                  `json:"skipped_rules,omitempty"`
}

// ScheduleService coordinates schedule CRUD, running the conflict engine
// before every write.
type ScheduleService struct {
	repo      scheduleStore
	conflicts conflictChecker
	summaries summaryInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleStore, conflicts conflictChecker, summaries summaryInvalidator, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, conflicts: conflicts, summaries: summaries, validator: validate, logger: logger}
}

// List returns schedules with pagination metadata.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleCandidate, *models.Pagination, error) {
	schedules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return schedules, pagination, nil
}

// Get loads one schedule by type and id.
func (s *ScheduleService) Get(ctx context.Context, scheduleType models.ScheduleType, id int64) (*models.ScheduleCandidate, error) {
	schedule, err := s.repo.FindByID(ctx, scheduleType, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Create inserts a new schedule after conflict detection. Warnings do not
// block creation; they ride along on the result.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*ScheduleMutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	day, err := models.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day of week")
	}

	proposed := models.ProposedSchedule{
		Type:        req.Type,
		DayOfWeek:   day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TeacherID:   req.TeacherID,
		VenueID:     req.VenueID,
		Capacity:    req.Capacity,
		MaxBookings: req.MaxBookings,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}

	verdict, err := s.conflicts.CheckConflicts(ctx, proposed)
	if err != nil {
		return nil, err
	}
	if verdict.HasErrors() {
		return nil, s.conflictError(verdict)
	}

	schedule := candidateFromProposed(proposed)
	if err := s.repo.Create(ctx, &schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	s.invalidate(ctx, day)

	created, err := s.repo.FindByID(ctx, schedule.Type, schedule.ID)
	if err != nil {
		s.logger.Warn("created schedule reload failed", zap.Int64("id", schedule.ID), zap.Error(err))
		created = &schedule
	}

	return &ScheduleMutationResult{
		Schedule:     created,
		Warnings:     verdict.Warnings(),
		Degraded:     verdict.Degraded,
		SkippedRules: verdict.SkippedRules,
	}, nil
}

// Update modifies an existing schedule after conflict detection, excluding
// the record itself from matches.
func (s *ScheduleService) Update(ctx context.Context, scheduleType models.ScheduleType, id int64, req UpdateScheduleRequest) (*ScheduleMutationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	existing, err := s.Get(ctx, scheduleType, id)
	if err != nil {
		return nil, err
	}

	day, err := models.ParseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day of week")
	}

	proposed := models.ProposedSchedule{
		ID:          existing.ID,
		Type:        scheduleType,
		DayOfWeek:   day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TeacherID:   req.TeacherID,
		VenueID:     req.VenueID,
		Capacity:    req.Capacity,
		MaxBookings: req.MaxBookings,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	if proposed.TeacherID == 0 && existing.TeacherID != nil {
		proposed.TeacherID = *existing.TeacherID
	}
	if proposed.VenueID == 0 && existing.VenueID != nil {
		proposed.VenueID = *existing.VenueID
	}

	verdict, err := s.conflicts.CheckConflicts(ctx, proposed)
	if err != nil {
		return nil, err
	}
	if verdict.HasErrors() {
		return nil, s.conflictError(verdict)
	}

	schedule := candidateFromProposed(proposed)
	if err := s.repo.Update(ctx, &schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	s.invalidate(ctx, existing.DayOfWeek)
	if day != existing.DayOfWeek {
		s.invalidate(ctx, day)
	}

	updated, err := s.repo.FindByID(ctx, scheduleType, id)
	if err != nil {
		s.logger.Warn("updated schedule reload failed", zap.Int64("id", id), zap.Error(err))
		updated = &schedule
	}

	return &ScheduleMutationResult{
		Schedule:     updated,
		Warnings:     verdict.Warnings(),
		Degraded:     verdict.Degraded,
		SkippedRules: verdict.SkippedRules,
	}, nil
}

// Delete removes a schedule entry.
func (s *ScheduleService) Delete(ctx context.Context, scheduleType models.ScheduleType, id int64) error {
	existing, err := s.Get(ctx, scheduleType, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, scheduleType, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	s.invalidate(ctx, existing.DayOfWeek)
	return nil
}

func (s *ScheduleService) conflictError(verdict *models.ConflictVerdict) error {
	domainErr := &models.ScheduleConflictError{Verdict: verdict}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "schedule conflicts detected")
}

func (s *ScheduleService) invalidate(ctx context.Context, day models.DayOfWeek) {
	if s.summaries != nil {
		s.summaries.InvalidateDay(ctx, day)
	}
}

func candidateFromProposed(p models.ProposedSchedule) models.ScheduleCandidate {
	schedule := models.ScheduleCandidate{
		ID:          p.ID,
		Type:        p.Type,
		DayOfWeek:   p.DayOfWeek,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		IsAvailable: p.IsAvailable,
		MaxBookings: p.MaxBookings,
		Capacity:    p.Capacity,
	}
	if p.TeacherID != 0 {
		teacherID := p.TeacherID
		schedule.TeacherID = &teacherID
	}
	if p.VenueID != 0 {
		venueID := p.VenueID
		schedule.VenueID = &venueID
	}
	return schedule
}
