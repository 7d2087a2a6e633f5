package models

// ConflictType classifies a finding against a proposed schedule.
type ConflictType string

const (
	ConflictTimeOverlap        ConflictType = "time_overlap"
	ConflictCapacityExceeded   ConflictType = "capacity_exceeded"
	ConflictTeacherUnavailable ConflictType = "teacher_unavailable"
	ConflictVenueUnavailable   ConflictType = "venue_unavailable"
	ConflictExactMatch         ConflictType = "exact_match"
	ConflictSameTeacherSameDay ConflictType = "same_teacher_same_day"
	ConflictSameVenueSameDay   ConflictType = "same_venue_same_day"
)

// Severity splits findings into blocking errors and advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict is a structured finding that a proposed schedule is incompatible
// with existing data.
type Conflict struct {
	Type                 ConflictType        `json:"type"`
	Message              string              `json:"message"`
	Severity             Severity            `json:"severity"`
	ConflictingSchedules []ScheduleCandidate `json:"conflicting_schedules"`
}

// ConflictVerdict is the aggregated result of a conflict check. Conflicts
// appear in rule evaluation order. Degraded is set when one or more rules
// could not run and were skipped; SkippedRules names them so callers can tell
// a clean verdict from a best-effort one.
type ConflictVerdict struct {
	HasConflicts bool       `json:"has_conflicts"`
	Conflicts    []Conflict `json:"conflicts"`
	Degraded     bool       `json:"degraded,omitempty"`
	SkippedRules []string   `json:"skipped_rules,omitempty"`
}

// HasErrors reports whether any conflict carries error severity. Callers
// gate persistence on this; warnings are advisory only.
func (v *ConflictVerdict) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, c := range v.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the advisory subset of the verdict.
func (v *ConflictVerdict) Warnings() []Conflict {
	if v == nil {
		return nil
	}
	var out []Conflict
	for _, c := range v.Conflicts {
		if c.Severity == SeverityWarning {
			out = append(out, c)
		}
	}
	return out
}

// ScheduleConflictError is returned when a proposed schedule collides with
// existing data badly enough to block persistence.
type ScheduleConflictError struct {
	Verdict *ConflictVerdict `json:"verdict"`
}

// Error implements the error interface.
func (e *ScheduleConflictError) Error() string {
	if e == nil || e.Verdict == nil || len(e.Verdict.Conflicts) == 0 {
		return "schedule conflict"
	}
	return e.Verdict.Conflicts[0].Message
}

// DaySummary is the batch self-consistency report for one day of week.
type DaySummary struct {
	DayOfWeek      DayOfWeek           `json:"day_of_week"`
	TotalSchedules int                 `json:"total_schedules"`
	Duplicates     int                 `json:"duplicates"`
	Warnings       int                 `json:"warnings"`
	Schedules      []ScheduleCandidate `json:"schedules"`
}
