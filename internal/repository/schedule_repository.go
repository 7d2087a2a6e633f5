package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/calmari/studio-booking-api/internal/models"
)

// Candidate projections share one column list so teacher and venue rows can
// be scanned into models.ScheduleCandidate uniformly and UNIONed for day-wide
// queries.
const (
	teacherCandidateSelect = `SELECT ts.id, 'teacher' AS type, ts.day_of_week, ts.start_time, ts.end_time,
		ts.is_available, ts.max_bookings, ts.teacher_id, ts.venue_id, 0 AS capacity,
		t.name AS teacher_name, v.name AS venue_name, ts.created_at, ts.updated_at
	FROM teacher_schedules ts
	JOIN teachers t ON t.id = ts.teacher_id
	LEFT JOIN venues v ON v.id = ts.venue_id`

	venueCandidateSelect = `SELECT vs.id, 'venue' AS type, vs.day_of_week, vs.start_time, vs.end_time,
		vs.is_available, vs.max_bookings, NULL::bigint AS teacher_id, vs.venue_id, vs.capacity,
		NULL::text AS teacher_name, v.name AS venue_name, vs.created_at, vs.updated_at
	FROM venue_schedules vs
	JOIN venues v ON v.id = vs.venue_id`
)

// ScheduleRepository provides persistence for teacher and venue schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindTeacherSchedulesByDayAndTeacher returns a teacher's schedules on a day,
// excluding the given id when editing an existing record. Pass 0 to exclude
// nothing.
func (r *ScheduleRepository) FindTeacherSchedulesByDayAndTeacher(ctx context.Context, day models.DayOfWeek, teacherID, excludeID int64) ([]models.ScheduleCandidate, error) {
	query := teacherCandidateSelect + ` WHERE ts.day_of_week = $1 AND ts.teacher_id = $2 AND ts.id <> $3 ORDER BY ts.start_time, ts.id`
	var candidates []models.ScheduleCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, day, teacherID, excludeID); err != nil {
		return nil, fmt.Errorf("find teacher schedules: %w", err)
	}
	return candidates, nil
}

// FindVenueSchedulesByDayAndVenue returns a venue's schedules on a day,
// excluding the given id when editing an existing record.
func (r *ScheduleRepository) FindVenueSchedulesByDayAndVenue(ctx context.Context, day models.DayOfWeek, venueID, excludeID int64) ([]models.ScheduleCandidate, error) {
	query := venueCandidateSelect + ` WHERE vs.day_of_week = $1 AND vs.venue_id = $2 AND vs.id <> $3 ORDER BY vs.start_time, vs.id`
	var candidates []models.ScheduleCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, day, venueID, excludeID); err != nil {
		return nil, fmt.Errorf("find venue schedules: %w", err)
	}
	return candidates, nil
}

// FindAllSchedulesForDay returns every teacher and venue schedule on a day,
// ordered by start time.
func (r *ScheduleRepository) FindAllSchedulesForDay(ctx context.Context, day models.DayOfWeek) ([]models.ScheduleCandidate, error) {
	query := fmt.Sprintf(`SELECT * FROM ((%s WHERE ts.day_of_week = $1) UNION ALL (%s WHERE vs.day_of_week = $1)) AS candidates ORDER BY start_time, type, id`,
		teacherCandidateSelect, venueCandidateSelect)
	var candidates []models.ScheduleCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, day); err != nil {
		return nil, fmt.Errorf("find schedules for day: %w", err)
	}
	return candidates, nil
}

// List returns schedules matching the filter along with the total count.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleCandidate, int, error) {
	var selects []string
	var conditions []string
	var args []interface{}

	cond := func(column string, value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("%s = $%d", column, len(args))
	}

	if filter.DayOfWeek != "" {
		conditions = append(conditions, cond("day_of_week", filter.DayOfWeek))
	}
	if filter.TeacherID != 0 {
		conditions = append(conditions, cond("teacher_id", filter.TeacherID))
	}
	if filter.VenueID != 0 {
		conditions = append(conditions, cond("venue_id", filter.VenueID))
	}
	if filter.IsAvailable != nil {
		conditions = append(conditions, cond("is_available", *filter.IsAvailable))
	}

	switch filter.Type {
	case models.ScheduleTypeTeacher:
		selects = append(selects, "("+teacherCandidateSelect+")")
	case models.ScheduleTypeVenue:
		selects = append(selects, "("+venueCandidateSelect+")")
	default:
		selects = append(selects, "("+teacherCandidateSelect+")", "("+venueCandidateSelect+")")
	}

	base := "FROM (" + strings.Join(selects, " UNION ALL ") + ") AS candidates"
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT * %s ORDER BY day_of_week, start_time, type, id LIMIT %d OFFSET %d", base, size, offset)
	var candidates []models.ScheduleCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}

	return candidates, total, nil
}

// FindByID loads one schedule of the given type.
func (r *ScheduleRepository) FindByID(ctx context.Context, scheduleType models.ScheduleType, id int64) (*models.ScheduleCandidate, error) {
	var query string
	switch scheduleType {
	case models.ScheduleTypeTeacher:
		query = teacherCandidateSelect + ` WHERE ts.id = $1`
	case models.ScheduleTypeVenue:
		query = venueCandidateSelect + ` WHERE vs.id = $1`
	default:
		return nil, fmt.Errorf("unsupported schedule type %q", scheduleType)
	}

	var candidate models.ScheduleCandidate
	if err := r.db.GetContext(ctx, &candidate, query, id); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Create stores a new schedule row in the table matching its type and fills
// in the generated id.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.ScheduleCandidate) error {
	switch schedule.Type {
	case models.ScheduleTypeTeacher:
		const query = `INSERT INTO teacher_schedules (teacher_id, venue_id, day_of_week, start_time, end_time, is_available, max_bookings, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id`
		if err := r.db.GetContext(ctx, &schedule.ID, query,
			schedule.TeacherID, schedule.VenueID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime, schedule.IsAvailable, schedule.MaxBookings); err != nil {
			return fmt.Errorf("create teacher schedule: %w", err)
		}
	case models.ScheduleTypeVenue:
		const query = `INSERT INTO venue_schedules (venue_id, day_of_week, start_time, end_time, capacity, is_available, max_bookings, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id`
		if err := r.db.GetContext(ctx, &schedule.ID, query,
			schedule.VenueID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime, schedule.Capacity, schedule.IsAvailable, schedule.MaxBookings); err != nil {
			return fmt.Errorf("create venue schedule: %w", err)
		}
	default:
		return fmt.Errorf("unsupported schedule type %q", schedule.Type)
	}
	return nil
}

// Update modifies an existing schedule row.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.ScheduleCandidate) error {
	switch schedule.Type {
	case models.ScheduleTypeTeacher:
		const query = `UPDATE teacher_schedules SET teacher_id = $2, venue_id = $3, day_of_week = $4, start_time = $5, end_time = $6, is_available = $7, max_bookings = $8, updated_at = NOW() WHERE id = $1`
		if _, err := r.db.ExecContext(ctx, query,
			schedule.ID, schedule.TeacherID, schedule.VenueID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime, schedule.IsAvailable, schedule.MaxBookings); err != nil {
			return fmt.Errorf("update teacher schedule: %w", err)
		}
	case models.ScheduleTypeVenue:
		const query = `UPDATE venue_schedules SET venue_id = $2, day_of_week = $3, start_time = $4, end_time = $5, capacity = $6, is_available = $7, max_bookings = $8, updated_at = NOW() WHERE id = $1`
		if _, err := r.db.ExecContext(ctx, query,
			schedule.ID, schedule.VenueID, schedule.DayOfWeek, schedule.StartTime, schedule.EndTime, schedule.Capacity, schedule.IsAvailable, schedule.MaxBookings); err != nil {
			return fmt.Errorf("update venue schedule: %w", err)
		}
	default:
		return fmt.Errorf("unsupported schedule type %q", schedule.Type)
	}
	return nil
}

// Delete removes a schedule row of the given type.
func (r *ScheduleRepository) Delete(ctx context.Context, scheduleType models.ScheduleType, id int64) error {
	var table string
	switch scheduleType {
	case models.ScheduleTypeTeacher:
		table = "teacher_schedules"
	case models.ScheduleTypeVenue:
		table = "venue_schedules"
	default:
		return fmt.Errorf("unsupported schedule type %q", scheduleType)
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id); err != nil {
		return fmt.Errorf("delete %s schedule: %w", scheduleType, err)
	}
	return nil
}
