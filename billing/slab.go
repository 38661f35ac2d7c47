package billing

import (
	"errors"

	"shanenterprises/models"
)

// ErrNoSlab means no rate range covers the distance. Callers treat the
// line as unratable and either skip it or surface the error.
var ErrNoSlab = errors.New("no rate range covers the given distance")

// ClassifySlab returns the rate range whose [from_km, to_km] interval
// contains distance, inclusive at both ends. Overlapping ranges are
// rejected at creation time, but for pre-existing data the tie-break is
// deterministic: the smallest interval wins, then the lower from_km,
// then the lower id.
func ClassifySlab(distance float64, ranges []models.RateRange) (*models.RateRange, error) {
	var best *models.RateRange
	for i := range ranges {
		r := &ranges[i]
		if r.FromKM > r.ToKM {
			continue
		}
		if distance < r.FromKM || distance > r.ToKM {
			continue
		}
		if best == nil || narrower(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil, ErrNoSlab
	}
	return best, nil
}

func narrower(a, b *models.RateRange) bool {
	wa := a.ToKM - a.FromKM
	wb := b.ToKM - b.FromKM
	if wa != wb {
		return wa < wb
	}
	if a.FromKM != b.FromKM {
		return a.FromKM < b.FromKM
	}
	return a.ID < b.ID
}

// FindOverlap returns the first existing range whose interval intersects
// r, or nil. Used by the rate-range create handler to reject overlaps.
func FindOverlap(r models.RateRange, existing []models.RateRange) *models.RateRange {
	for i := range existing {
		e := &existing[i]
		if e.ID == r.ID {
			continue
		}
		if r.FromKM <= e.ToKM && e.FromKM <= r.ToKM {
			return e
		}
	}
	return nil
}
