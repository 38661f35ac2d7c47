package repository

import (
	"reflect"
	"testing"

	"shanenterprises/models"
)

func TestUnlinkSetFullReplacement(t *testing.T) {
	// Linked {1,2,3}, payload {2,3,4}: 1 unlinked, 4 linked, 2,3 kept.
	got := unlinkSet([]int64{1, 2, 3}, []int64{2, 3, 4})
	if !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("unlinkSet = %v, want [1]", got)
	}
}

func TestUnlinkSetIdempotent(t *testing.T) {
	if got := unlinkSet([]int64{2, 3}, []int64{2, 3}); got != nil {
		t.Fatalf("same set must unlink nothing, got %v", got)
	}
}

func TestUnlinkSetEmptyPayloadUnlinksAll(t *testing.T) {
	got := unlinkSet([]int64{5, 6}, nil)
	if !reflect.DeepEqual(got, []int64{5, 6}) {
		t.Fatalf("unlinkSet = %v, want [5 6]", got)
	}
}

func TestDedupeIDs(t *testing.T) {
	got := dedupeIDs([]int64{4, 2, 4, 0, 2, 9})
	if !reflect.DeepEqual(got, []int64{4, 2, 9}) {
		t.Fatalf("dedupeIDs = %v, want [4 2 9]", got)
	}
}

func TestFOLEntryIDs(t *testing.T) {
	p := &models.FOLPayload{
		Slabs: []models.FOLSlabPayload{
			{
				RangeSlab: "50 - 75",
				Destinations: []models.FOLDestinationPayload{
					{DestinationPlace: "KANNUR", DestinationEntryIDs: []int64{11}},
					{DestinationPlace: "THALASSERY"},
				},
			},
			{
				RangeSlab: "75.5 - 100",
				Destinations: []models.FOLDestinationPayload{
					{DestinationPlace: "KASARGOD", DestinationEntryIDs: []int64{12}},
					{DestinationPlace: "KANNUR", DestinationEntryIDs: []int64{11}},
				},
			},
		},
	}
	got := folEntryIDs(p)
	if !reflect.DeepEqual(got, []int64{11, 12}) {
		t.Fatalf("folEntryIDs = %v, want [11 12]", got)
	}
}

func TestFOLEntryIDsMergedDestinationRow(t *testing.T) {
	// A destination row covering several merged entries must link every
	// one of them, or the later entries stay billable on another bill.
	p := &models.FOLPayload{
		Slabs: []models.FOLSlabPayload{
			{
				RangeSlab: "0 - 50",
				Destinations: []models.FOLDestinationPayload{
					{DestinationPlace: "KOVILPATTI", DestinationEntryIDs: []int64{11, 12}},
				},
			},
		},
	}
	got := folEntryIDs(p)
	if !reflect.DeepEqual(got, []int64{11, 12}) {
		t.Fatalf("folEntryIDs = %v, want [11 12]", got)
	}
}
