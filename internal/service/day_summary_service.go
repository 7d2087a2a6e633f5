package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
)

type dayScheduleSource interface {
	FindAllSchedulesForDay(ctx context.Context, day models.DayOfWeek) ([]models.ScheduleCandidate, error)
}

// DaySummaryService computes the batch self-consistency report for one day of
// week: pairwise duplicate and warning counts across every schedule on that
// day. The computation is O(n²) in the day's schedule count, which stays
// small in practice (tens of schedules per day).
type DaySummaryService struct {
	schedules dayScheduleSource
	cache     *CacheService
	logger    *zap.Logger
}

// NewDaySummaryService instantiates DaySummaryService.
func NewDaySummaryService(schedules dayScheduleSource, cache *CacheService, logger *zap.Logger) *DaySummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DaySummaryService{schedules: schedules, cache: cache, logger: logger}
}

func daySummaryCacheKey(day models.DayOfWeek) string {
	return fmt.Sprintf("day_summary:%s", day)
}

// SummarizeDay loads every teacher and venue schedule for the day and counts
// pairwise duplicates (exact matches and time overlaps) and warnings (same
// teacher or same venue at non-overlapping times).
func (s *DaySummaryService) SummarizeDay(ctx context.Context, day models.DayOfWeek) (*models.DaySummary, error) {
	parsed, err := models.ParseDayOfWeek(string(day))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day of week")
	}
	day = parsed

	key := daySummaryCacheKey(day)
	if s.cache.Enabled() {
		var cached models.DaySummary
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	schedules, err := s.schedules.FindAllSchedulesForDay(ctx, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules for day")
	}

	summary := summarize(day, schedules)

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, summary, 0); err != nil {
			s.logger.Warn("day summary cache write failed", zap.String("day", string(day)), zap.Error(err))
		}
	}

	return summary, nil
}

// InvalidateDay evicts the cached summary after a schedule write.
func (s *DaySummaryService) InvalidateDay(ctx context.Context, day models.DayOfWeek) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Delete(ctx, daySummaryCacheKey(day)); err != nil {
		s.logger.Warn("day summary cache invalidation failed", zap.String("day", string(day)), zap.Error(err))
	}
}

func summarize(day models.DayOfWeek, schedules []models.ScheduleCandidate) *models.DaySummary {
	summary := &models.DaySummary{
		DayOfWeek:      day,
		TotalSchedules: len(schedules),
		Schedules:      schedules,
	}

	for i := 0; i < len(schedules); i++ {
		for j := i + 1; j < len(schedules); j++ {
			a, b := schedules[i], schedules[j]
			switch {
			case isExactPair(a, b):
				summary.Duplicates++
			case a.Interval().Overlaps(b.Interval()):
				summary.Duplicates++
			case sameID(a.TeacherID, b.TeacherID):
				summary.Warnings++
			case sameID(a.VenueID, b.VenueID):
				summary.Warnings++
			}
		}
	}

	return summary
}

// isExactPair reports a full duplicate: identical times and identical teacher
// and venue identity, where two absent identities count as equal.
func isExactPair(a, b models.ScheduleCandidate) bool {
	return a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		idEqual(a.TeacherID, b.TeacherID) &&
		idEqual(a.VenueID, b.VenueID)
}

func idEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// sameID requires both ids present and equal; absent ids never match.
func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
