// Package importer turns dealer despatch workbooks into destination
// entries. The expected sheet layout is one despatch per row:
//
//	MDA NO | DATE | DEALER CODE | DESPATCHED TO | KM | NO BAGS | MT | REMARKS
//
// with a single header row. Rows are classified into rate slabs by
// distance and grouped into one range entry per slab.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"shanenterprises/billing"
	"shanenterprises/models"

	"github.com/xuri/excelize/v2"
)

// RowIssue records a workbook row that could not be imported and why.
type RowIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result carries the assembled entry plus the rows that were skipped.
type Result struct {
	Entry   *models.DestinationEntry `json:"entry"`
	Skipped []RowIssue               `json:"skipped,omitempty"`
}

const headerRows = 1

// ParseWorkbook reads the first sheet and assembles a destination entry
// for destinationID. Rows with unknown dealer codes or distances no
// slab covers are reported in Skipped, not fatal.
func ParseWorkbook(r io.Reader, destinationID int64, ranges []models.RateRange, dealers []*models.Dealer) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	dealerByCode := map[string]*models.Dealer{}
	for _, d := range dealers {
		dealerByCode[strings.ToUpper(d.Code)] = d
	}

	result := &Result{Entry: &models.DestinationEntry{DestinationID: destinationID}}
	// one range entry per slab, keyed by slab id, first-seen order
	slabEntry := map[int64]*models.RangeEntry{}
	var slabOrder []int64

	for i, row := range rows {
		if i < headerRows {
			continue
		}
		line, issue := parseRow(i+1, row, dealerByCode)
		if issue != nil {
			result.Skipped = append(result.Skipped, *issue)
			continue
		}
		if line == nil {
			continue // blank row
		}

		slab, err := billing.ClassifySlab(*line.KM, ranges)
		if err != nil {
			result.Skipped = append(result.Skipped, RowIssue{
				Row:    i + 1,
				Reason: fmt.Sprintf("no rate range covers %s km", models.FormatDistance(*line.KM)),
			})
			continue
		}

		mtk, amount := billing.ComputeAmount(slab.Rate, slab.IsMTK, line.MT, *line.KM)
		line.Rate = slab.Rate
		line.MTK = mtk
		line.Amount = amount

		re, ok := slabEntry[slab.ID]
		if !ok {
			slabID := slab.ID
			re = &models.RangeEntry{
				RateRangeID: &slabID,
				Rate:        slab.Rate,
				TotalBags:   new(int),
				TotalMT:     new(float64),
				TotalMTK:    new(float64),
				TotalAmount: new(float64),
			}
			slabEntry[slab.ID] = re
			slabOrder = append(slabOrder, slab.ID)
		}
		*re.TotalBags += line.NoBags
		*re.TotalMT += line.MT
		*re.TotalMTK += mtk
		*re.TotalAmount += amount
		re.DealerEntries = append(re.DealerEntries, *line)
	}

	for _, id := range slabOrder {
		re := slabEntry[id]
		*re.TotalMT = billing.Round2(*re.TotalMT)
		*re.TotalMTK = billing.Round2(*re.TotalMTK)
		*re.TotalAmount = billing.Round2(*re.TotalAmount)
		result.Entry.Ranges = append(result.Entry.Ranges, *re)
	}
	return result, nil
}

func parseRow(n int, row []string, dealerByCode map[string]*models.Dealer) (*models.DealerEntry, *RowIssue) {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	blank := true
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, nil
	}

	code := strings.ToUpper(get(2))
	dealer, ok := dealerByCode[code]
	if !ok {
		return nil, &RowIssue{Row: n, Reason: fmt.Sprintf("unknown dealer code %q", code)}
	}

	km, err := strconv.ParseFloat(get(4), 64)
	if err != nil || km < 0 {
		return nil, &RowIssue{Row: n, Reason: "invalid km value"}
	}
	bags, err := strconv.Atoi(get(5))
	if err != nil {
		return nil, &RowIssue{Row: n, Reason: "invalid bag count"}
	}
	mt, err := strconv.ParseFloat(get(6), 64)
	if err != nil || mt < 0 {
		return nil, &RowIssue{Row: n, Reason: "invalid MT value"}
	}

	de := &models.DealerEntry{
		DealerID:    &dealer.ID,
		MDANumber:   get(0),
		Date:        get(1),
		KM:          &km,
		NoBags:      bags,
		MT:          mt,
		Description: "FACTOMFOS",
	}
	if v := get(3); v != "" {
		de.DespatchedTo = &v
	}
	if v := get(7); v != "" {
		de.Remarks = &v
	}
	return de, nil
}
