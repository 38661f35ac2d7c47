package billing

import (
	"testing"

	"shanenterprises/models"
)

func TestValidateHandlingArithmetic(t *testing.T) {
	cases := []struct {
		name    string
		total   float64
		wantErr bool
	}{
		{"exact", 118.00, false},
		{"off by a paisa", 117.99, true},
		{"over", 118.01, true},
	}
	for _, tc := range cases {
		p := &models.HandlingPayload{
			BillNumber:      "SB/01",
			BillAmount:      100,
			CGST:            9,
			SGST:            9,
			TotalBillAmount: tc.total,
		}
		err := ValidateHandling(p)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected rejection, got none", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidateHandlingFloatNoise(t *testing.T) {
	// 0.1+0.2 style accumulation must still compare equal at 2 decimals.
	p := &models.HandlingPayload{
		BillAmount:      0.1,
		CGST:            0.2,
		SGST:            0,
		TotalBillAmount: 0.3,
	}
	if err := ValidateHandling(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFOLPayloadDuplicateSlab(t *testing.T) {
	p := &models.FOLPayload{
		BillNumber: "SB/02",
		Slabs: []models.FOLSlabPayload{
			{RangeSlab: "50 - 75"},
			{RangeSlab: "50 - 75"},
		},
	}
	if err := ValidateFOLPayload(p); err == nil {
		t.Fatal("duplicate slab label accepted")
	}
	p.Slabs[1].RangeSlab = "75.5 - 100"
	if err := ValidateFOLPayload(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDepotPayloadNeedsEntries(t *testing.T) {
	req := &models.SyncServiceBillRequest{
		BillDate:       "01-04-2025",
		DateOfClearing: "28-03-2025",
		TransportDepot: &models.DepotPayload{BillNumber: "SB/03"},
	}
	if err := ValidateSync(req); err == nil {
		t.Fatal("depot section with no dealer entries accepted")
	}
	req.TransportDepot.DealerEntryIDs = []int64{7}
	if err := ValidateSync(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRangeEntryFOLSlabConsistency(t *testing.T) {
	fol := models.TransportFOL
	depot := models.TransportDepot
	slabID := int64(3)

	cases := []struct {
		name    string
		entry   models.RangeEntry
		parent  *string
		wantErr bool
	}{
		{"flagged with slab under fol", models.RangeEntry{IsTransportFOLSlab: true, TransportFOLSlabID: &slabID}, &fol, false},
		{"flagged without slab", models.RangeEntry{IsTransportFOLSlab: true}, &fol, true},
		{"flagged under depot", models.RangeEntry{IsTransportFOLSlab: true, TransportFOLSlabID: &slabID}, &depot, true},
		{"flagged under untyped parent", models.RangeEntry{IsTransportFOLSlab: true, TransportFOLSlabID: &slabID}, nil, true},
		{"unflagged with slab ref", models.RangeEntry{TransportFOLSlabID: &slabID}, &fol, true},
		{"unflagged clean", models.RangeEntry{}, nil, false},
	}
	for _, tc := range cases {
		err := ValidateRangeEntry(&tc.entry, tc.parent)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidateEntryLink(t *testing.T) {
	billID := int64(1)
	e := &models.DestinationEntry{ServiceBillID: &billID}
	if err := ValidateEntryLink(e); err == nil {
		t.Fatal("linked entry without transport_type accepted")
	}
	tt := models.TransportFOL
	e.TransportType = &tt
	if err := ValidateEntryLink(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
