package models

import "time"

// ScheduleType tags the variant of a schedule record.
type ScheduleType string

const (
	ScheduleTypeTeacher ScheduleType = "teacher"
	ScheduleTypeVenue   ScheduleType = "venue"
	ScheduleTypeGeneral ScheduleType = "general"
)

// Valid reports whether the type is a known variant.
func (t ScheduleType) Valid() bool {
	switch t {
	case ScheduleTypeTeacher, ScheduleTypeVenue, ScheduleTypeGeneral:
		return true
	}
	return false
}

// ScheduleCandidate is a persisted time slot fetched for comparison against a
// proposed slot. Teacher and venue display fields are denormalised so callers
// can render conflicts without further lookups.
type ScheduleCandidate struct {
	ID          int64        `db:"id" json:"id"`
	Type        ScheduleType `db:"type" json:"type"`
	DayOfWeek   DayOfWeek    `db:"day_of_week" json:"day_of_week"`
	StartTime   string       `db:"start_time" json:"start_time"`
	EndTime     string       `db:"end_time" json:"end_time"`
	IsAvailable bool         `db:"is_available" json:"is_available"`
	MaxBookings int          `db:"max_bookings" json:"max_bookings"`
	TeacherID   *int64       `db:"teacher_id" json:"teacher_id,omitempty"`
	VenueID     *int64       `db:"venue_id" json:"venue_id,omitempty"`
	Capacity    int          `db:"capacity" json:"capacity,omitempty"`
	TeacherName *string      `db:"teacher_name" json:"teacher_name,omitempty"`
	VenueName   *string      `db:"venue_name" json:"venue_name,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// Interval returns the candidate's recurring time range.
func (c ScheduleCandidate) Interval() TimeInterval {
	return TimeInterval{DayOfWeek: c.DayOfWeek, StartTime: c.StartTime, EndTime: c.EndTime}
}

// ProposedSchedule is a schedule being validated before persistence. A zero
// ID marks a record that does not exist yet; a non-zero ID excludes the
// record itself from conflict matches when editing.
type ProposedSchedule struct {
	ID          int64        `json:"id,omitempty"`
	Type        ScheduleType `json:"type"`
	DayOfWeek   DayOfWeek    `json:"day_of_week"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	IsAvailable bool         `json:"is_available"`
	MaxBookings int          `json:"max_bookings,omitempty"`
	TeacherID   int64        `json:"teacher_id,omitempty"`
	VenueID     int64        `json:"venue_id,omitempty"`
	Capacity    int          `json:"capacity,omitempty"`
}

// Interval returns the proposal's recurring time range.
func (p ProposedSchedule) Interval() TimeInterval {
	return TimeInterval{DayOfWeek: p.DayOfWeek, StartTime: p.StartTime, EndTime: p.EndTime}
}

// ScheduleFilter describes query params for listing schedules.
type ScheduleFilter struct {
	Type        ScheduleType
	DayOfWeek   DayOfWeek
	TeacherID   int64
	VenueID     int64
	IsAvailable *bool
	Page        int
	PageSize    int
}
