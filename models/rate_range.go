package models

import (
	"strconv"
	"time"
)

// RateRange is a distance-rate bracket ("slab"). IsMTK true means
// amount = rate * MT*KM, false means flat amount = rate * MT.
type RateRange struct {
	ID        int64     `json:"id" db:"id"`
	FromKM    float64   `json:"from_km" db:"from_km"`
	ToKM      float64   `json:"to_km" db:"to_km"`
	Rate      float64   `json:"rate" db:"rate"`
	IsMTK     bool      `json:"is_mtk" db:"is_mtk"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FormatDistance renders an integer-valued distance without a decimal
// point (50, not 50.0) and a fractional one with its decimal value (52.5).
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

// Label is the display form used on slab headings and FOL slab rows,
// e.g. "50 - 75".
func (r *RateRange) Label() string {
	return FormatDistance(r.FromKM) + " - " + FormatDistance(r.ToKM)
}
