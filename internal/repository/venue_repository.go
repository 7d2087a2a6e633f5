package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/calmari/studio-booking-api/internal/models"
)

// VenueRepository manages read access to venues.
type VenueRepository struct {
	db *sqlx.DB
}

// NewVenueRepository constructs a VenueRepository.
func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// List returns venues, optionally restricted to active ones.
func (r *VenueRepository) List(ctx context.Context, activeOnly bool) ([]models.Venue, error) {
	query := `SELECT id, name, city, country, capacity, is_active, created_at, updated_at FROM venues`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	var venues []models.Venue
	if err := r.db.SelectContext(ctx, &venues, query); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// FindByID fetches a venue by id.
func (r *VenueRepository) FindByID(ctx context.Context, id int64) (*models.Venue, error) {
	const query = `SELECT id, name, city, country, capacity, is_active, created_at, updated_at FROM venues WHERE id = $1`
	var venue models.Venue
	if err := r.db.GetContext(ctx, &venue, query, id); err != nil {
		return nil, err
	}
	return &venue, nil
}

// CapacityAndStatus fetches the name, configured capacity and active flag the
// conflict engine needs.
func (r *VenueRepository) CapacityAndStatus(ctx context.Context, id int64) (models.VenueStatus, error) {
	const query = `SELECT name, capacity, is_active FROM venues WHERE id = $1`
	var status models.VenueStatus
	if err := r.db.GetContext(ctx, &status, query, id); err != nil {
		return models.VenueStatus{}, fmt.Errorf("venue capacity and status: %w", err)
	}
	return status, nil
}
