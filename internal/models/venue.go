package models

import "time"

// Venue represents a studio location.
type Venue struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	City      *string   `db:"city" json:"city,omitempty"`
	Country   *string   `db:"country" json:"country,omitempty"`
	Capacity  int       `db:"capacity" json:"capacity"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VenueStatus is the slice of venue state the conflict engine needs.
type VenueStatus struct {
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
