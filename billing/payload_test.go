package billing

import "testing"

func TestReportToFOLPayloadRoundTrip(t *testing.T) {
	lines := []SlabLine{
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 5, Place: "KOVILPATTI", EntryID: 11, MT: 2, MTK: 100, Amount: 200},
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 6, Place: "TENKASI", EntryID: 12, MT: 3, MTK: 150, Amount: 300},
		{SlabID: 2, SlabLabel: "51 - 100", Rate: 2, DestinationID: 5, Place: "KOVILPATTI", EntryID: 13, MT: 4, MTK: 320, Amount: 640},
	}
	report := AggregateSlabs(lines, 1.5)

	p := ReportToFOLPayload(report, "SB-42")
	if err := ValidateFOLPayload(p); err != nil {
		t.Fatalf("payload built from a report must validate, got %v", err)
	}

	if p.BillNumber != "SB-42" {
		t.Errorf("BillNumber = %q", p.BillNumber)
	}
	if p.RHQty != 1.5 || p.GrandTotalQty != report.GrandTotalQty || p.GrandTotalAmount != report.GrandTotalAmount {
		t.Errorf("report totals not carried into payload")
	}
	if len(p.Slabs) != 2 {
		t.Fatalf("expected 2 slabs, got %d", len(p.Slabs))
	}

	first := p.Slabs[0]
	if first.RangeSlab != "0 - 50" || first.RangeTotalQty != 5 || first.RangeTotalAmount != 500 {
		t.Errorf("first slab = %+v", first)
	}
	if len(first.Destinations) != 2 {
		t.Fatalf("first slab destinations = %d, want 2", len(first.Destinations))
	}
	if len(first.Destinations[0].DestinationEntryIDs) != 1 || first.Destinations[0].DestinationEntryIDs[0] != 11 {
		t.Errorf("entry reference not carried: %v", first.Destinations[0].DestinationEntryIDs)
	}

	// payload slab totals must equal the sum of their destination rows
	for _, slab := range p.Slabs {
		var qty, amt float64
		for _, d := range slab.Destinations {
			qty += d.QtyMT
			amt += d.Amount
		}
		if Round2(qty) != slab.RangeTotalQty || Round2(amt) != slab.RangeTotalAmount {
			t.Errorf("slab %q totals disagree with destination rows", slab.RangeSlab)
		}
	}
}

func TestReportToFOLPayloadCarriesMergedEntries(t *testing.T) {
	// Two entries for the same slab and destination merge into one
	// report row; the payload must reference both so both get linked.
	lines := []SlabLine{
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 5, Place: "KOVILPATTI", EntryID: 11, MT: 2, MTK: 100, Amount: 200},
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 5, Place: "KOVILPATTI", EntryID: 12, MT: 3, MTK: 150, Amount: 300},
	}
	report := AggregateSlabs(lines, 0)

	p := ReportToFOLPayload(report, "SB-43")
	if len(p.Slabs) != 1 || len(p.Slabs[0].Destinations) != 1 {
		t.Fatalf("expected one merged destination row, got %+v", p.Slabs)
	}
	ids := p.Slabs[0].Destinations[0].DestinationEntryIDs
	if len(ids) != 2 || ids[0] != 11 || ids[1] != 12 {
		t.Fatalf("merged row entry ids = %v, want [11 12]", ids)
	}
}
