package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/calmari/studio-booking-api/internal/models"
)

// TeacherRepository manages read access to teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers, optionally restricted to active ones.
func (r *TeacherRepository) List(ctx context.Context, activeOnly bool) ([]models.Teacher, error) {
	query := `SELECT id, name, email, phone, is_active, created_at, updated_at FROM teachers`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	const query = `SELECT id, name, email, phone, is_active, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ActiveStatus fetches the name and active flag the conflict engine needs.
func (r *TeacherRepository) ActiveStatus(ctx context.Context, id int64) (models.TeacherStatus, error) {
	const query = `SELECT name, is_active FROM teachers WHERE id = $1`
	var status models.TeacherStatus
	if err := r.db.GetContext(ctx, &status, query, id); err != nil {
		return models.TeacherStatus{}, fmt.Errorf("teacher active status: %w", err)
	}
	return status, nil
}
