package importer

import (
	"bytes"
	"testing"

	"shanenterprises/models"

	"github.com/xuri/excelize/v2"
)

func testRanges() []models.RateRange {
	return []models.RateRange{
		{ID: 1, FromKM: 0, ToKM: 50, Rate: 100, IsMTK: false},
		{ID: 2, FromKM: 51, ToKM: 100, Rate: 2, IsMTK: true},
	}
}

func testDealers() []*models.Dealer {
	return []*models.Dealer{
		{ID: 10, Code: "GAR001", Name: "ALPHA AGENCIES"},
		{ID: 11, Code: "GAR002", Name: "BETA TRADERS"},
	}
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []string{"MDA NO", "DATE", "DEALER CODE", "DESPATCHED TO", "KM", "NO BAGS", "MT", "REMARKS"}
	all := append([][]string{header}, rows...)
	for i, row := range all {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestParseWorkbookGroupsRowsBySlab(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"MDA-1", "2025-04-01", "GAR001", "KOVILPATTI", "40", "200", "10", ""},
		{"MDA-2", "2025-04-02", "GAR002", "SANKARANKOVIL", "45", "100", "5", ""},
		{"MDA-3", "2025-04-03", "GAR001", "TENKASI", "80", "300", "15", ""},
	})

	res, err := ParseWorkbook(buf, 7, testRanges(), testDealers())
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("expected no skipped rows, got %v", res.Skipped)
	}
	if res.Entry.DestinationID != 7 {
		t.Errorf("DestinationID = %d, want 7", res.Entry.DestinationID)
	}
	if len(res.Entry.Ranges) != 2 {
		t.Fatalf("expected 2 range entries, got %d", len(res.Entry.Ranges))
	}

	first := res.Entry.Ranges[0]
	if *first.RateRangeID != 1 {
		t.Errorf("first slab id = %d, want 1", *first.RateRangeID)
	}
	if *first.TotalBags != 300 || *first.TotalMT != 15 {
		t.Errorf("first slab totals = %d bags %.2f MT, want 300 bags 15 MT", *first.TotalBags, *first.TotalMT)
	}
	// flat slab: amount = rate * MT
	if *first.TotalAmount != 1500 {
		t.Errorf("first slab amount = %.2f, want 1500", *first.TotalAmount)
	}
	if len(first.DealerEntries) != 2 {
		t.Errorf("first slab dealer entries = %d, want 2", len(first.DealerEntries))
	}

	second := res.Entry.Ranges[1]
	if *second.RateRangeID != 2 {
		t.Errorf("second slab id = %d, want 2", *second.RateRangeID)
	}
	// MTK slab: amount = rate * MT * KM = 2 * 15 * 80
	if *second.TotalMTK != 1200 || *second.TotalAmount != 2400 {
		t.Errorf("second slab = %.2f MTK %.2f amount, want 1200 / 2400", *second.TotalMTK, *second.TotalAmount)
	}
}

func TestParseWorkbookSkipsBadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"MDA-1", "2025-04-01", "GAR999", "KOVILPATTI", "40", "200", "10", ""},
		{"MDA-2", "2025-04-02", "GAR001", "TENKASI", "900", "100", "5", ""},
		{"MDA-3", "2025-04-03", "GAR001", "TENKASI", "abc", "100", "5", ""},
		{"MDA-4", "2025-04-04", "GAR002", "SANKARANKOVIL", "30", "80", "4", "PART LOAD"},
	})

	res, err := ParseWorkbook(buf, 1, testRanges(), testDealers())
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(res.Skipped) != 3 {
		t.Fatalf("expected 3 skipped rows, got %v", res.Skipped)
	}
	if len(res.Entry.Ranges) != 1 || len(res.Entry.Ranges[0].DealerEntries) != 1 {
		t.Fatalf("expected one surviving dealer entry")
	}
	de := res.Entry.Ranges[0].DealerEntries[0]
	if de.Remarks == nil || *de.Remarks != "PART LOAD" {
		t.Errorf("remarks not carried through")
	}
	if de.Description != "FACTOMFOS" {
		t.Errorf("description = %q, want FACTOMFOS", de.Description)
	}
}

func TestParseWorkbookIgnoresBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"", "", "", "", "", "", "", ""},
		{"MDA-1", "2025-04-01", "gar001", "KOVILPATTI", "40", "200", "10", ""},
	})

	res, err := ParseWorkbook(buf, 1, testRanges(), testDealers())
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("blank row should not be reported, got %v", res.Skipped)
	}
	// dealer codes match case-insensitively
	if len(res.Entry.Ranges) != 1 || len(res.Entry.Ranges[0].DealerEntries) != 1 {
		t.Fatalf("expected one dealer entry")
	}
}
