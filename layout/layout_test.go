package layout

import (
	"strings"
	"testing"
)

var m = DefaultMetrics{}

func makeTable(rows int) *Table {
	body := Style{FontSize: 9}
	t := &Table{
		Heading:      "TRANSPORTATION",
		HeadingStyle: Style{FontSize: 10, Bold: true},
		Columns:      []float64{120, 70, 80, 80},
		Header: Row{Cells: []Cell{
			{Text: "Destination", Style: body}, {Text: "Qty (MT)", Style: body},
			{Text: "MTxKM", Style: body}, {Text: "Amount", Style: body},
		}},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, Row{Cells: []Cell{
			{Text: "PLACE", Style: body}, {Text: "1.00", Style: body},
			{Text: "60.00", Style: body}, {Text: "600.00", Style: body},
		}})
	}
	return t
}

const pageW = 535.0

// pageFor returns a page height that fits the table's heading, header
// and exactly n body rows.
func pageFor(t *Table, n int) float64 {
	return t.FixedHeight(m, pageW) + float64(n)*t.BodyRowHeight(m, 0) + 0.5
}

func TestSplitAtRowBoundary(t *testing.T) {
	tbl := makeTable(20)
	avail := pageFor(tbl, 12)

	first, rest, ok := tbl.Split(m, pageW, avail)
	if !ok {
		t.Fatal("expected a split")
	}
	f := first.(*Table)
	r := rest.(*Table)
	if len(f.Rows) != 12 {
		t.Fatalf("first part has %d rows, want 12", len(f.Rows))
	}
	if len(r.Rows) != 8 {
		t.Fatalf("rest has %d rows, want 8", len(r.Rows))
	}
	if f.Contd {
		t.Error("first part must keep the original heading")
	}
	if !r.Contd {
		t.Error("continuation part must be marked Contd")
	}
	if got := r.HeadingText(); !strings.HasSuffix(got, "(Contd.)") {
		t.Errorf("continuation heading = %q, want (Contd.) suffix", got)
	}
	if got := f.HeadingText(); strings.Contains(got, "Contd") {
		t.Errorf("first heading = %q, must not be a continuation", got)
	}
}

func TestSplitOfContinuationStaysContinued(t *testing.T) {
	tbl := makeTable(20)
	tbl.Contd = true

	first, rest, ok := tbl.Split(m, pageW, pageFor(tbl, 10))
	if !ok {
		t.Fatal("expected a split")
	}
	if !first.(*Table).Contd {
		t.Error("splitting an already-continued table must keep its continued heading")
	}
	if !rest.(*Table).Contd {
		t.Error("rest must stay continued")
	}
}

func TestSplitDefersWhenHeadingDoesNotFit(t *testing.T) {
	tbl := makeTable(5)
	if _, _, ok := tbl.Split(m, pageW, tbl.FixedHeight(m, pageW)-1); ok {
		t.Fatal("split must refuse when not even heading plus header fits")
	}
}

func TestSplitDefersSingleRowBody(t *testing.T) {
	tbl := makeTable(1)
	// Space for heading and header but not the row.
	if _, _, ok := tbl.Split(m, pageW, tbl.FixedHeight(m, pageW)+1); ok {
		t.Fatal("split must refuse when no whole row fits")
	}
}

func TestSplitSnapsToMergedCellBoundary(t *testing.T) {
	tbl := makeTable(20)
	tbl.Spans = []Span{{Start: 10, End: 14}}

	first, rest, ok := tbl.Split(m, pageW, pageFor(tbl, 12))
	if !ok {
		t.Fatal("expected a split")
	}
	if got := len(first.(*Table).Rows); got != 10 {
		t.Fatalf("split took %d rows, want snap to merged-cell start 10", got)
	}
	r := rest.(*Table)
	if len(r.Spans) != 1 || r.Spans[0].Start != 0 || r.Spans[0].End != 4 {
		t.Fatalf("rest spans = %+v, want re-based {0 4}", r.Spans)
	}
}

func TestPaginateFlowsAcrossThreePages(t *testing.T) {
	tbl := makeTable(20)
	pageH := pageFor(tbl, 8)

	pages, err := Paginate([]Block{tbl}, pageW, pageH, m)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	counts := []int{}
	contd := []bool{}
	for _, p := range pages {
		if len(p.Blocks) != 1 {
			t.Fatalf("page has %d blocks, want 1", len(p.Blocks))
		}
		pt := p.Blocks[0].Block.(*Table)
		counts = append(counts, len(pt.Rows))
		contd = append(contd, pt.Contd)
	}
	if counts[0] != 8 || counts[1] != 8 || counts[2] != 4 {
		t.Fatalf("row distribution = %v, want [8 8 4]", counts)
	}
	if contd[0] || !contd[1] || !contd[2] {
		t.Fatalf("continuation flags = %v, want [false true true]", contd)
	}
}

func TestPaginateDefersBlockThatFitsFreshPage(t *testing.T) {
	tbl := makeTable(6)
	pageH := pageFor(tbl, 6)
	// The paragraph leaves less than the table's heading height on page
	// one, so the whole table must move to page two instead of splitting.
	para := &Paragraph{Text: "Ref:- letter", Style: Style{FontSize: 9}, SpaceAfter: pageH - tbl.FixedHeight(m, pageW) + 1}

	pages, err := Paginate([]Block{para, tbl}, pageW, pageH, m)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	pt := pages[1].Blocks[0].Block.(*Table)
	if len(pt.Rows) != 6 || pt.Contd {
		t.Fatalf("deferred table: rows=%d contd=%v, want whole uncontinued table", len(pt.Rows), pt.Contd)
	}
}

func TestPaginatePageBreak(t *testing.T) {
	a := &Paragraph{Text: "section one", Style: Style{FontSize: 9}}
	b := &Paragraph{Text: "section two", Style: Style{FontSize: 9}}
	pages, err := Paginate([]Block{a, PageBreak{}, b}, pageW, 800, m)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
}

func TestPaginateUnfittableBlockErrors(t *testing.T) {
	tbl := makeTable(3)
	// Page shorter than the heading: must error, not loop.
	if _, err := Paginate([]Block{tbl}, pageW, tbl.FixedHeight(m, pageW)/2, m); err != ErrCannotFit {
		t.Fatalf("expected ErrCannotFit, got %v", err)
	}
}

func TestPaginateRoundTripRowCount(t *testing.T) {
	tbl := makeTable(37)
	pages, err := Paginate([]Block{tbl}, pageW, pageFor(tbl, 5), m)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	total := 0
	for _, p := range pages {
		for _, pb := range p.Blocks {
			total += len(pb.Block.(*Table).Rows)
		}
	}
	if total != 37 {
		t.Fatalf("rows across pages = %d, want 37 (no row lost or duplicated)", total)
	}
}
