package models

import "time"

type Dealer struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Pincode   *string   `json:"pincode,omitempty" db:"pincode"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Many-to-many with Place
	PlaceIDs []int64 `json:"place_ids,omitempty"`
	Places   []Place `json:"places,omitempty"`
}
