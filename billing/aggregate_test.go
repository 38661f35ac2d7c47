package billing

import (
	"testing"
)

func line(slabID int64, label string, rate float64, destID int64, place string, entryID int64, mt, km float64) SlabLine {
	mtk, amount := ComputeAmount(rate, true, mt, km)
	return SlabLine{
		SlabID:        slabID,
		SlabLabel:     label,
		Rate:          rate,
		DestinationID: destID,
		Place:         place,
		EntryID:       entryID,
		MT:            mt,
		MTK:           mtk,
		Amount:        amount,
	}
}

func TestAggregateMergesSameSlabDestination(t *testing.T) {
	// Slab "50 - 75", rate 10 per MTK: MT=2,KM=60 and MT=3,KM=65 for the
	// same destination merge into one row.
	lines := []SlabLine{
		line(7, "50 - 75", 10, 1, "KANNUR", 11, 2, 60),
		line(7, "50 - 75", 10, 1, "KANNUR", 12, 3, 65),
	}
	rep := AggregateSlabs(lines, 0)

	if len(rep.Slabs) != 1 {
		t.Fatalf("got %d slabs, want 1", len(rep.Slabs))
	}
	slab := rep.Slabs[0]
	if len(slab.Destinations) != 1 {
		t.Fatalf("got %d destination rows, want 1 merged row", len(slab.Destinations))
	}
	d := slab.Destinations[0]
	if d.QtyMT != 5 {
		t.Errorf("merged MT = %v, want 5", d.QtyMT)
	}
	if d.QtyMTK != 315 {
		t.Errorf("merged MTK = %v, want 315", d.QtyMTK)
	}
	if d.Amount != 3150 {
		t.Errorf("merged amount = %v, want 3150", d.Amount)
	}
	if len(d.EntryIDs) != 2 {
		t.Errorf("merged row tracks %d entry ids, want 2", len(d.EntryIDs))
	}
	if slab.TotalQty != 5 || slab.TotalMTK != 315 || slab.TotalAmount != 3150 {
		t.Errorf("slab totals = %v/%v/%v, want 5/315/3150", slab.TotalQty, slab.TotalMTK, slab.TotalAmount)
	}
}

func TestAggregateKeysOnSlabIdentityNotLabel(t *testing.T) {
	lines := []SlabLine{
		line(1, "50 - 75", 10, 1, "KANNUR", 11, 2, 60),
		line(2, "50 - 75", 12, 1, "KANNUR", 12, 3, 65),
	}
	rep := AggregateSlabs(lines, 0)
	if len(rep.Slabs) != 2 {
		t.Fatalf("distinct slab ids with equal labels collapsed: got %d slabs, want 2", len(rep.Slabs))
	}
}

func TestAggregateRHAddedToQtyOnly(t *testing.T) {
	lines := []SlabLine{
		line(1, "0 - 50", 10, 1, "CALICUT", 11, 4, 40),
	}
	rep := AggregateSlabs(lines, 2.5)
	if rep.RHQty != 2.5 {
		t.Fatalf("rh_qty = %v, want 2.5", rep.RHQty)
	}
	if rep.GrandTotalQty != 6.5 {
		t.Errorf("grand qty = %v, want 4 + RH 2.5 = 6.5", rep.GrandTotalQty)
	}
	if rep.GrandTotalAmount != 1600 {
		t.Errorf("grand amount = %v, want 1600 (RH adds no amount)", rep.GrandTotalAmount)
	}
}

func TestAggregateSortsSlabsByNumericLowerBound(t *testing.T) {
	lines := []SlabLine{
		line(3, "100 - 125", 12, 1, "A", 1, 1, 110),
		line(1, "50 - 75", 10, 2, "B", 2, 1, 60),
		line(2, "75.5 - 100", 11, 3, "C", 3, 1, 80),
	}
	rep := AggregateSlabs(lines, 0)
	want := []string{"50 - 75", "75.5 - 100", "100 - 125"}
	for i, w := range want {
		if rep.Slabs[i].RangeSlab != w {
			t.Fatalf("slab %d = %q, want %q (string sort would put 100 first)", i, rep.Slabs[i].RangeSlab, w)
		}
	}
}

func TestAggregateMalformedLabelSortsFirst(t *testing.T) {
	lines := []SlabLine{
		line(1, "50 - 75", 10, 1, "A", 1, 1, 60),
		line(2, "garbled", 10, 2, "B", 2, 1, 60),
	}
	rep := AggregateSlabs(lines, 0)
	if rep.Slabs[0].RangeSlab != "garbled" {
		t.Fatalf("malformed label should sort as from=0, got order %q first", rep.Slabs[0].RangeSlab)
	}
}

func TestAggregateRoundsAtBoundary(t *testing.T) {
	lines := []SlabLine{
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 1, DestinationID: 1, Place: "A", MT: 1.005, MTK: 10.333, Amount: 10.333},
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 1, DestinationID: 1, Place: "A", MT: 1.005, MTK: 10.333, Amount: 10.333},
	}
	rep := AggregateSlabs(lines, 0)
	d := rep.Slabs[0].Destinations[0]
	// 1.005+1.005 accumulates to 2.01 before rounding; rounding each
	// addend first would give 2.02.
	if d.QtyMT != 2.01 {
		t.Errorf("qty = %v, want 2.01 (rounded after accumulation)", d.QtyMT)
	}
	if d.QtyMTK != 20.67 {
		t.Errorf("mtk = %v, want 20.67", d.QtyMTK)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	rep := AggregateSlabs(nil, 1.5)
	if len(rep.Slabs) != 0 {
		t.Fatalf("expected no slabs, got %d", len(rep.Slabs))
	}
	if rep.GrandTotalQty != 1.5 || rep.GrandTotalAmount != 0 {
		t.Fatalf("grand totals = %v/%v, want 1.5/0", rep.GrandTotalQty, rep.GrandTotalAmount)
	}
}
