package service

import (
	"context"

	"github.com/calmari/studio-booking-api/internal/models"
	appErrors "github.com/calmari/studio-booking-api/pkg/errors"
)

type teacherDirectory interface {
	List(ctx context.Context, activeOnly bool) ([]models.Teacher, error)
}

type venueDirectory interface {
	List(ctx context.Context, activeOnly bool) ([]models.Venue, error)
}

// DirectoryService exposes the teacher and venue rosters the schedule admin
// screens pick from.
type DirectoryService struct {
	teachers teacherDirectory
	venues   venueDirectory
}

// NewDirectoryService instantiates DirectoryService.
func NewDirectoryService(teachers teacherDirectory, venues venueDirectory) *DirectoryService {
	return &DirectoryService{teachers: teachers, venues: venues}
}

// ListTeachers returns teachers, optionally active only.
func (s *DirectoryService) ListTeachers(ctx context.Context, activeOnly bool) ([]models.Teacher, error) {
	teachers, err := s.teachers.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// ListVenues returns venues, optionally active only.
func (s *DirectoryService) ListVenues(ctx context.Context, activeOnly bool) ([]models.Venue, error) {
	venues, err := s.venues.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}
	return venues, nil
}
