package billing

import (
	"testing"

	"shanenterprises/models"
)

func TestClassifySlabInclusiveBounds(t *testing.T) {
	ranges := []models.RateRange{
		{ID: 1, FromKM: 0, ToKM: 50, Rate: 5},
		{ID: 2, FromKM: 50.5, ToKM: 75, Rate: 8},
		{ID: 3, FromKM: 75.5, ToKM: 100, Rate: 10},
	}

	cases := []struct {
		distance float64
		wantID   int64
	}{
		{0, 1},
		{50, 1},
		{50.5, 2},
		{75, 2},
		{100, 3},
	}
	for _, tc := range cases {
		got, err := ClassifySlab(tc.distance, ranges)
		if err != nil {
			t.Fatalf("ClassifySlab(%v) error: %v", tc.distance, err)
		}
		if got.ID != tc.wantID {
			t.Fatalf("ClassifySlab(%v) = range %d, want %d", tc.distance, got.ID, tc.wantID)
		}
		if tc.distance < got.FromKM || tc.distance > got.ToKM {
			t.Fatalf("ClassifySlab(%v) returned interval [%v, %v] excluding the distance", tc.distance, got.FromKM, got.ToKM)
		}
	}
}

func TestClassifySlabNoMatch(t *testing.T) {
	ranges := []models.RateRange{{ID: 1, FromKM: 10, ToKM: 20}}
	if _, err := ClassifySlab(25, ranges); err != ErrNoSlab {
		t.Fatalf("expected ErrNoSlab, got %v", err)
	}
	if _, err := ClassifySlab(5, nil); err != ErrNoSlab {
		t.Fatalf("expected ErrNoSlab for empty set, got %v", err)
	}
}

func TestClassifySlabSmallestIntervalWins(t *testing.T) {
	ranges := []models.RateRange{
		{ID: 1, FromKM: 0, ToKM: 100, Rate: 5},
		{ID: 2, FromKM: 40, ToKM: 60, Rate: 8},
	}
	got, err := ClassifySlab(50, ranges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("overlap tie-break picked range %d, want the narrower range 2", got.ID)
	}
}

func TestClassifySlabSkipsInvertedInterval(t *testing.T) {
	ranges := []models.RateRange{
		{ID: 1, FromKM: 60, ToKM: 40},
		{ID: 2, FromKM: 0, ToKM: 100},
	}
	got, err := ClassifySlab(50, ranges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("classifier returned inverted range %d", got.ID)
	}
}

func TestFindOverlap(t *testing.T) {
	existing := []models.RateRange{
		{ID: 1, FromKM: 0, ToKM: 50},
		{ID: 2, FromKM: 50.5, ToKM: 75},
	}
	if hit := FindOverlap(models.RateRange{FromKM: 75.5, ToKM: 100}, existing); hit != nil {
		t.Fatalf("disjoint range reported overlap with %d", hit.ID)
	}
	if hit := FindOverlap(models.RateRange{FromKM: 50, ToKM: 60}, existing); hit == nil {
		t.Fatal("expected overlap, got none")
	}
	// Same id is the range being edited, not a conflict.
	if hit := FindOverlap(models.RateRange{ID: 2, FromKM: 50.5, ToKM: 75}, existing); hit != nil {
		t.Fatalf("range overlapped itself (%d)", hit.ID)
	}
}
