package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
)

type mockDayScheduleSource struct {
	schedules []models.ScheduleCandidate
	err       error
	calls     int
}

func (m *mockDayScheduleSource) FindAllSchedulesForDay(ctx context.Context, day models.DayOfWeek) ([]models.ScheduleCandidate, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.schedules, nil
}

type fakeCacheRepo struct {
	store map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func TestSummarizeDayCountsDuplicatesAndWarnings(t *testing.T) {
	source := &mockDayScheduleSource{schedules: []models.ScheduleCandidate{
		venueCandidate(1, models.Friday, "09:00", "10:00", 10),
		venueCandidate(2, models.Friday, "09:30", "10:30", 10),
		venueCandidate(3, models.Friday, "14:00", "15:00", 10),
	}}
	service := NewDaySummaryService(source, nil, zap.NewNop())

	summary, err := service.SummarizeDay(context.Background(), models.Friday)
	require.NoError(t, err)

	assert.Equal(t, models.Friday, summary.DayOfWeek)
	assert.Equal(t, 3, summary.TotalSchedules)
	// Schedules 1 and 2 overlap.
	assert.Equal(t, 1, summary.Duplicates)
	// Schedule 3 shares a venue with 1 and 2 at a different time.
	assert.Equal(t, 2, summary.Warnings)
	assert.Len(t, summary.Schedules, 3)
}

func TestSummarizeDayExactPair(t *testing.T) {
	a := venueCandidate(1, models.Monday, "18:00", "19:00", 10)
	b := venueCandidate(2, models.Monday, "18:00", "19:00", 10)
	source := &mockDayScheduleSource{schedules: []models.ScheduleCandidate{a, b}}
	service := NewDaySummaryService(source, nil, zap.NewNop())

	summary, err := service.SummarizeDay(context.Background(), models.Monday)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 0, summary.Warnings)
}

func TestSummarizeDayMixedTypes(t *testing.T) {
	source := &mockDayScheduleSource{schedules: []models.ScheduleCandidate{
		teacherCandidate(1, models.Monday, "09:00", "10:00"),
		venueCandidate(2, models.Monday, "09:00", "10:00", 10),
	}}
	service := NewDaySummaryService(source, nil, zap.NewNop())

	summary, err := service.SummarizeDay(context.Background(), models.Monday)
	require.NoError(t, err)

	// Different owner identities, same time: an overlap, not an exact pair.
	assert.Equal(t, 1, summary.Duplicates)
}

func TestSummarizeDayEmpty(t *testing.T) {
	service := NewDaySummaryService(&mockDayScheduleSource{}, nil, zap.NewNop())

	summary, err := service.SummarizeDay(context.Background(), models.Sunday)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalSchedules)
	assert.Equal(t, 0, summary.Duplicates)
	assert.Equal(t, 0, summary.Warnings)
}

func TestSummarizeDayNormalizesCasing(t *testing.T) {
	source := &mockDayScheduleSource{}
	service := NewDaySummaryService(source, nil, zap.NewNop())

	summary, err := service.SummarizeDay(context.Background(), models.DayOfWeek("friday"))
	require.NoError(t, err)
	assert.Equal(t, models.Friday, summary.DayOfWeek)

	_, err = service.SummarizeDay(context.Background(), models.DayOfWeek("Someday"))
	assert.Error(t, err)
}

func TestSummarizeDayUsesCache(t *testing.T) {
	source := &mockDayScheduleSource{schedules: []models.ScheduleCandidate{
		venueCandidate(1, models.Friday, "09:00", "10:00", 10),
	}}
	cacheSvc := NewCacheService(newFakeCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	service := NewDaySummaryService(source, cacheSvc, zap.NewNop())

	first, err := service.SummarizeDay(context.Background(), models.Friday)
	require.NoError(t, err)
	second, err := service.SummarizeDay(context.Background(), models.Friday)
	require.NoError(t, err)

	assert.Equal(t, first.TotalSchedules, second.TotalSchedules)
	assert.Equal(t, 1, source.calls, "second call must be served from cache")
}

func TestInvalidateDayEvictsCachedSummary(t *testing.T) {
	source := &mockDayScheduleSource{schedules: []models.ScheduleCandidate{
		venueCandidate(1, models.Friday, "09:00", "10:00", 10),
	}}
	cacheSvc := NewCacheService(newFakeCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	service := NewDaySummaryService(source, cacheSvc, zap.NewNop())

	_, err := service.SummarizeDay(context.Background(), models.Friday)
	require.NoError(t, err)

	service.InvalidateDay(context.Background(), models.Friday)

	_, err = service.SummarizeDay(context.Background(), models.Friday)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "invalidation must force a reload")
}
