package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
)

type conflictScheduleSource interface {
	FindTeacherSchedulesByDayAndTeacher(ctx context.Context, day models.DayOfWeek, teacherID, excludeID int64) ([]models.ScheduleCandidate, error)
	FindVenueSchedulesByDayAndVenue(ctx context.Context, day models.DayOfWeek, venueID, excludeID int64) ([]models.ScheduleCandidate, error)
}

type teacherStatusSource interface {
	ActiveStatus(ctx context.Context, id int64) (models.TeacherStatus, error)
}

type venueStatusSource interface {
	CapacityAndStatus(ctx context.Context, id int64) (models.VenueStatus, error)
}

// ConflictService evaluates proposed schedules against existing commitments.
// Every check is stateless: candidates are fetched just-in-time per
// invocation and nothing is cached between calls.
type ConflictService struct {
	schedules conflictScheduleSource
	teachers  teacherStatusSource
	venues    venueStatusSource
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewConflictService instantiates ConflictService.
func NewConflictService(schedules conflictScheduleSource, teachers teacherStatusSource, venues venueStatusSource, logger *zap.Logger, metrics *MetricsService) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{schedules: schedules, teachers: teachers, venues: venues, logger: logger, metrics: metrics}
}

// candidateLoader memoizes one repository fetch so the rules that share a
// candidate list do not re-query, while still failing independently.
type candidateLoader struct {
	loaded     bool
	candidates []models.ScheduleCandidate
	err        error
	fetch      func() ([]models.ScheduleCandidate, error)
}

func (l *candidateLoader) get() ([]models.ScheduleCandidate, error) {
	if !l.loaded {
		l.candidates, l.err = l.fetch()
		l.loaded = true
	}
	return l.candidates, l.err
}

// CheckConflicts runs every rule applicable to the proposal's type and merges
// the findings into a single verdict. A rule whose repository lookup fails is
// skipped and recorded on the verdict rather than failing the whole check;
// only invalid input produces an error return.
func (s *ConflictService) CheckConflicts(ctx context.Context, proposed models.ProposedSchedule) (*models.ConflictVerdict, error) {
	if err := validateProposed(proposed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid proposed schedule")
	}

	teacherCands := &candidateLoader{fetch: func() ([]models.ScheduleCandidate, error) {
		return s.schedules.FindTeacherSchedulesByDayAndTeacher(ctx, proposed.DayOfWeek, proposed.TeacherID, proposed.ID)
	}}
	venueCands := &candidateLoader{fetch: func() ([]models.ScheduleCandidate, error) {
		return s.schedules.FindVenueSchedulesByDayAndVenue(ctx, proposed.DayOfWeek, proposed.VenueID, proposed.ID)
	}}

	verdict := &models.ConflictVerdict{Conflicts: []models.Conflict{}}
	run := func(rule string, fn func() ([]models.Conflict, error)) {
		conflicts, err := fn()
		if err != nil {
			s.logger.Warn("conflict rule skipped",
				zap.String("rule", rule),
				zap.String("schedule_type", string(proposed.Type)),
				zap.Error(err))
			verdict.Degraded = true
			verdict.SkippedRules = append(verdict.SkippedRules, rule)
			return
		}
		verdict.Conflicts = append(verdict.Conflicts, conflicts...)
	}

	isTeacher := proposed.Type == models.ScheduleTypeTeacher
	hasVenue := proposed.VenueID != 0

	run(ruleExactMatch, func() ([]models.Conflict, error) {
		switch proposed.Type {
		case models.ScheduleTypeTeacher:
			cands, err := teacherCands.get()
			if err != nil {
				return nil, err
			}
			return exactMatchConflicts(proposed, cands), nil
		case models.ScheduleTypeVenue:
			cands, err := venueCands.get()
			if err != nil {
				return nil, err
			}
			return exactMatchConflicts(proposed, cands), nil
		}
		return nil, nil
	})

	run(ruleTimeOverlap, func() ([]models.Conflict, error) {
		var conflicts []models.Conflict
		if isTeacher {
			cands, err := teacherCands.get()
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, overlapConflicts(proposed, cands, models.ConflictTimeOverlap)...)
		}
		if hasVenue && proposed.Type != models.ScheduleTypeTeacher {
			cands, err := venueCands.get()
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, overlapConflicts(proposed, cands, models.ConflictTimeOverlap)...)
		}
		return conflicts, nil
	})

	if hasVenue {
		run(ruleCapacity, func() ([]models.Conflict, error) {
			venue, err := s.venues.CapacityAndStatus(ctx, proposed.VenueID)
			if err != nil {
				return nil, err
			}
			cands, err := venueCands.get()
			if err != nil {
				return nil, err
			}
			return capacityConflicts(proposed, cands, venue), nil
		})
	}

	if isTeacher {
		run(ruleTeacherAvailability, func() ([]models.Conflict, error) {
			teacher, err := s.teachers.ActiveStatus(ctx, proposed.TeacherID)
			if err != nil {
				return nil, err
			}
			var conflicts []models.Conflict
			if !teacher.IsActive {
				conflicts = append(conflicts, inactiveTeacherConflict(teacher))
			}
			cands, err := teacherCands.get()
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, overlapConflicts(proposed, cands, models.ConflictTeacherUnavailable)...)
			return conflicts, nil
		})
	}

	if hasVenue {
		run(ruleVenueAvailability, func() ([]models.Conflict, error) {
			venue, err := s.venues.CapacityAndStatus(ctx, proposed.VenueID)
			if err != nil {
				return nil, err
			}
			if !venue.IsActive {
				return []models.Conflict{inactiveVenueConflict(venue)}, nil
			}
			return nil, nil
		})
	}

	run(ruleSameDay, func() ([]models.Conflict, error) {
		var conflicts []models.Conflict
		if isTeacher {
			cands, err := teacherCands.get()
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, sameDayWarnings(proposed, cands, models.ConflictSameTeacherSameDay)...)
		}
		if proposed.Type == models.ScheduleTypeVenue && hasVenue {
			cands, err := venueCands.get()
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, sameDayWarnings(proposed, cands, models.ConflictSameVenueSameDay)...)
		}
		return conflicts, nil
	})

	verdict.HasConflicts = len(verdict.Conflicts) > 0

	if s.metrics != nil {
		s.metrics.ObserveConflictCheck(string(proposed.Type), checkOutcome(verdict))
	}

	return verdict, nil
}

func checkOutcome(verdict *models.ConflictVerdict) string {
	switch {
	case verdict.Degraded:
		return "degraded"
	case verdict.HasErrors():
		return "conflicts"
	case verdict.HasConflicts:
		return "warnings"
	default:
		return "clean"
	}
}

func validateProposed(proposed models.ProposedSchedule) error {
	if !proposed.Type.Valid() {
		return fmt.Errorf("invalid schedule type: %q", proposed.Type)
	}
	if err := proposed.Interval().Validate(); err != nil {
		return err
	}
	switch proposed.Type {
	case models.ScheduleTypeTeacher:
		if proposed.TeacherID == 0 {
			return fmt.Errorf("teacher schedule requires a teacher id")
		}
		if proposed.VenueID == 0 {
			return fmt.Errorf("teacher schedule requires a venue id")
		}
	case models.ScheduleTypeVenue:
		if proposed.VenueID == 0 {
			return fmt.Errorf("venue schedule requires a venue id")
		}
	}
	return nil
}
