package models

import "time"

type Destination struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Place       *string   `json:"place,omitempty" db:"place"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsGarage    bool      `json:"is_garage" db:"is_garage"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Nested places for responses
	Places []Place `json:"places,omitempty"`
}

// Place is unique per (name, destination).
type Place struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Distance      float64   `json:"distance" db:"distance"`
	District      *string   `json:"district,omitempty" db:"district"`
	DestinationID *int64    `json:"destination_id,omitempty" db:"destination_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Destination *Destination `json:"destination,omitempty"`
}
