package service

import (
	"fmt"

	"github.com/calmari/studio-booking-api/internal/models"
)

// Rule names reported in ConflictVerdict.SkippedRules when a rule cannot run.
const (
	ruleExactMatch          = "exact_match"
	ruleTimeOverlap         = "time_overlap"
	ruleCapacity            = "capacity"
	ruleTeacherAvailability = "teacher_availability"
	ruleVenueAvailability   = "venue_availability"
	ruleSameDay             = "same_day"
)

func nameOrUnknown(name *string) string {
	if name == nil || *name == "" {
		return "unknown"
	}
	return *name
}

// excludeSelf drops the proposal's own row from a candidate list. Repository
// queries already filter by id, but rules stay correct on unfiltered input.
func excludeSelf(proposed models.ProposedSchedule, candidates []models.ScheduleCandidate) []models.ScheduleCandidate {
	if proposed.ID == 0 {
		return candidates
	}
	out := candidates[:0:0]
	for _, c := range candidates {
		if c.ID == proposed.ID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// exactMatchConflicts flags candidates occupying the identical day and time
// range. Candidates are pre-filtered to the proposal's owning identity.
func exactMatchConflicts(proposed models.ProposedSchedule, candidates []models.ScheduleCandidate) []models.Conflict {
	var conflicts []models.Conflict
	interval := proposed.Interval()
	for _, c := range excludeSelf(proposed, candidates) {
		if !interval.ExactMatch(c.Interval()) {
			continue
		}
		var message string
		if c.Type == models.ScheduleTypeTeacher {
			message = fmt.Sprintf("Exact duplicate found: %s at %s on %s from %s to %s",
				nameOrUnknown(c.TeacherName), nameOrUnknown(c.VenueName), c.DayOfWeek, c.StartTime, c.EndTime)
		} else {
			message = fmt.Sprintf("Exact duplicate found: %s on %s from %s to %s",
				nameOrUnknown(c.VenueName), c.DayOfWeek, c.StartTime, c.EndTime)
		}
		conflicts = append(conflicts, models.Conflict{
			Type:                 models.ConflictExactMatch,
			Message:              message,
			Severity:             models.SeverityError,
			ConflictingSchedules: []models.ScheduleCandidate{c},
		})
	}
	return conflicts
}

// overlapConflicts is the shared overlap scan behind both the time-overlap
// rule and the schedule half of the teacher-availability rule. The tag
// selects which taxonomy entry is emitted; both rules report the same
// underlying candidates.
func overlapConflicts(proposed models.ProposedSchedule, candidates []models.ScheduleCandidate, tag models.ConflictType) []models.Conflict {
	var conflicts []models.Conflict
	interval := proposed.Interval()
	for _, c := range excludeSelf(proposed, candidates) {
		if !interval.Overlaps(c.Interval()) {
			continue
		}
		var message string
		switch {
		case tag == models.ConflictTeacherUnavailable:
			message = fmt.Sprintf("Teacher has conflicting schedule at %s", nameOrUnknown(c.VenueName))
		case c.Type == models.ScheduleTypeTeacher:
			message = fmt.Sprintf("Time overlap with existing teacher schedule: %s at %s",
				nameOrUnknown(c.TeacherName), nameOrUnknown(c.VenueName))
		default:
			message = fmt.Sprintf("Time overlap with existing venue schedule at %s", nameOrUnknown(c.VenueName))
		}
		conflicts = append(conflicts, models.Conflict{
			Type:                 tag,
			Message:              message,
			Severity:             models.SeverityError,
			ConflictingSchedules: []models.ScheduleCandidate{c},
		})
	}
	return conflicts
}

// capacityConflicts checks the proposal against the venue's configured
// capacity: an outright excess is an error, a combined excess across
// overlapping venue schedules is a warning.
func capacityConflicts(proposed models.ProposedSchedule, candidates []models.ScheduleCandidate, venue models.VenueStatus) []models.Conflict {
	demand := proposed.Capacity
	if demand == 0 {
		demand = proposed.MaxBookings
	}

	var conflicts []models.Conflict
	if demand > venue.Capacity {
		conflicts = append(conflicts, models.Conflict{
			Type:                 models.ConflictCapacityExceeded,
			Message:              fmt.Sprintf("Schedule capacity (%d) exceeds venue capacity (%d)", demand, venue.Capacity),
			Severity:             models.SeverityError,
			ConflictingSchedules: []models.ScheduleCandidate{},
		})
	}

	interval := proposed.Interval()
	var overlapping []models.ScheduleCandidate
	total := demand
	for _, c := range excludeSelf(proposed, candidates) {
		if !interval.Overlaps(c.Interval()) {
			continue
		}
		overlapping = append(overlapping, c)
		total += c.Capacity
	}

	if len(overlapping) > 0 && total > venue.Capacity {
		conflicts = append(conflicts, models.Conflict{
			Type:                 models.ConflictCapacityExceeded,
			Message:              fmt.Sprintf("Combined capacity (%d) exceeds venue capacity (%d)", total, venue.Capacity),
			Severity:             models.SeverityWarning,
			ConflictingSchedules: overlapping,
		})
	}

	return conflicts
}

func inactiveTeacherConflict(teacher models.TeacherStatus) models.Conflict {
	return models.Conflict{
		Type:                 models.ConflictTeacherUnavailable,
		Message:              fmt.Sprintf("Teacher %s is not active", teacher.Name),
		Severity:             models.SeverityError,
		ConflictingSchedules: []models.ScheduleCandidate{},
	}
}

func inactiveVenueConflict(venue models.VenueStatus) models.Conflict {
	return models.Conflict{
		Type:                 models.ConflictVenueUnavailable,
		Message:              fmt.Sprintf("Venue %s is not active", venue.Name),
		Severity:             models.SeverityError,
		ConflictingSchedules: []models.ScheduleCandidate{},
	}
}

// sameDayWarnings flags same-owner schedules elsewhere on the same day that
// do not overlap the proposal. These never block creation.
func sameDayWarnings(proposed models.ProposedSchedule, candidates []models.ScheduleCandidate, tag models.ConflictType) []models.Conflict {
	var conflicts []models.Conflict
	interval := proposed.Interval()
	for _, c := range excludeSelf(proposed, candidates) {
		if interval.Overlaps(c.Interval()) {
			continue
		}
		var message string
		if tag == models.ConflictSameTeacherSameDay {
			message = fmt.Sprintf("Teacher %s already has a schedule on %s at %s (%s - %s)",
				nameOrUnknown(c.TeacherName), c.DayOfWeek, nameOrUnknown(c.VenueName), c.StartTime, c.EndTime)
		} else {
			message = fmt.Sprintf("Venue %s already has a schedule on %s (%s - %s)",
				nameOrUnknown(c.VenueName), c.DayOfWeek, c.StartTime, c.EndTime)
		}
		conflicts = append(conflicts, models.Conflict{
			Type:                 tag,
			Message:              message,
			Severity:             models.SeverityWarning,
			ConflictingSchedules: []models.ScheduleCandidate{c},
		})
	}
	return conflicts
}
