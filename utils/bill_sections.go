package utils

import (
	"fmt"
	"strings"

	"shanenterprises/billing"
	"shanenterprises/layout"
	"shanenterprises/models"
)

// A4 content box in points after 30pt margins.
const (
	PageWidth  = 535.0
	PageHeight = 782.0
)

const (
	hsnHandling  = "9967"
	hsnTransport = "9965"
)

var (
	titleStyle   = layout.Style{FontSize: 12, Bold: true, Align: layout.AlignCenter}
	headingStyle = layout.Style{FontSize: 10, Bold: true, Align: layout.AlignCenter}
	labelStyle   = layout.Style{FontSize: 9, Bold: true}
	bodyStyle    = layout.Style{FontSize: 9}
	numStyle     = layout.Style{FontSize: 9, Align: layout.AlignRight}
	numBoldStyle = layout.Style{FontSize: 9, Bold: true, Align: layout.AlignRight}
	headerStyle  = layout.Style{FontSize: 9, Bold: true, Align: layout.AlignCenter}
)

func amount(v float64) string { return fmt.Sprintf("%.2f", v) }
func qty(v float64) string    { return fmt.Sprintf("%.2f", v) }

// BuildBillBlocks lays the bill's sections out in fixed order, each
// section opening on a fresh page under the company letterhead. Absent
// sections are omitted entirely.
func BuildBillBlocks(profile *models.CompanyProfile, bill *models.ServiceBill, depotLines []*models.DealerEntry) []layout.Block {
	var blocks []layout.Block
	first := true

	appendSection := func(section []layout.Block) {
		if !first {
			blocks = append(blocks, layout.PageBreak{})
		}
		first = false
		blocks = append(blocks, letterheadBlocks(profile)...)
		blocks = append(blocks, section...)
	}

	if bill.Handling != nil {
		appendSection(handlingBlocks(bill))
	}
	if bill.TransportDepot != nil {
		appendSection(depotBlocks(bill, depotLines))
	}
	if bill.TransportFOL != nil {
		appendSection(folBlocks(bill))
	}
	return blocks
}

func letterheadBlocks(p *models.CompanyProfile) []layout.Block {
	if p == nil {
		return nil
	}
	var blocks []layout.Block
	blocks = append(blocks, &layout.Paragraph{Text: p.CompanyName, Style: layout.Style{FontSize: 14, Bold: true, Align: layout.AlignCenter}})
	if p.Tagline != "" {
		blocks = append(blocks, &layout.Paragraph{Text: p.Tagline, Style: layout.Style{FontSize: 9, Align: layout.AlignCenter}})
	}
	addr := p.Address
	if p.City != "" {
		addr += ", " + p.City
	}
	if p.State != "" {
		addr += ", " + p.State
	}
	if p.Pincode != "" {
		addr += " - " + p.Pincode
	}
	blocks = append(blocks, &layout.Paragraph{Text: addr, Style: layout.Style{FontSize: 9, Align: layout.AlignCenter}})

	contacts := ""
	for _, m := range p.Mobile {
		if contacts != "" {
			contacts += ", "
		}
		contacts += m.Number
		if m.Label != "" {
			contacts += " (" + m.Label + ")"
		}
	}
	line := "GSTIN: " + p.GSTIN
	if contacts != "" {
		line += "   Mobile: " + contacts
	}
	blocks = append(blocks,
		&layout.Paragraph{Text: line, Style: layout.Style{FontSize: 9, Align: layout.AlignCenter}, SpaceAfter: 6},
	)
	return blocks
}

func billHeaderBlocks(bill *models.ServiceBill, billNumber, title string) []layout.Block {
	blocks := []layout.Block{
		&layout.Paragraph{Text: title, Style: titleStyle, SpaceAfter: 6},
		&layout.Paragraph{Text: fmt.Sprintf("BILL NO: %s    DATED: %s", billNumber, bill.BillDate), Style: labelStyle, SpaceAfter: 4},
	}
	if bill.ToAddress != nil && *bill.ToAddress != "" {
		blocks = append(blocks, &layout.Paragraph{Text: "TO: " + *bill.ToAddress, Style: bodyStyle, SpaceAfter: 4})
	}
	if bill.LetterNote != nil && *bill.LetterNote != "" {
		blocks = append(blocks, &layout.Paragraph{Text: "Ref: " + *bill.LetterNote, Style: bodyStyle, SpaceAfter: 4})
	}
	if bill.DateOfClearing != "" {
		blocks = append(blocks, &layout.Paragraph{
			Text:       fmt.Sprintf("Being clearing and forwarding charges of %s cleared on %s.", bill.Product, bill.DateOfClearing),
			Style:      bodyStyle,
			SpaceAfter: 6,
		})
	}
	return blocks
}

func claimBlocks(total float64) []layout.Block {
	words := strings.TrimSuffix(NumberToCurrencyWords(total), " Only")
	return []layout.Block{
		&layout.Spacer{H: 6},
		&layout.Paragraph{
			Text:       fmt.Sprintf("We are claiming for Rs. %.2f (%s) only.", total, words),
			Style:      labelStyle,
			SpaceAfter: 4,
		},
	}
}

func handlingBlocks(bill *models.ServiceBill) []layout.Block {
	h := bill.Handling
	hsn := hsnHandling
	if bill.HSNSACCode != nil && *bill.HSNSACCode != "" {
		hsn = *bill.HSNSACCode
	}
	particulars := "HANDLING CHARGES"
	if h.Particulars != nil && *h.Particulars != "" {
		particulars = *h.Particulars
	}

	table := &layout.Table{
		HeadingStyle: headingStyle,
		Columns:      []float64{205, 80, 80, 80, 90},
		Header: layout.Row{Cells: []layout.Cell{
			{Text: "PARTICULARS", Style: headerStyle},
			{Text: "HSN/SAC", Style: headerStyle},
			{Text: "QTY (MT)", Style: headerStyle},
			{Text: "RATE", Style: headerStyle},
			{Text: "AMOUNT", Style: headerStyle},
		}},
		Rows: []layout.Row{
			{Cells: []layout.Cell{
				{Text: particulars, Style: bodyStyle},
				{Text: hsn, Style: numStyle},
				{Text: qty(h.TotalQty), Style: numStyle},
				{Text: amount(h.Rate), Style: numStyle},
				{Text: amount(h.BillAmount), Style: numStyle},
			}},
			{Cells: []layout.Cell{
				{Text: "CGST", Style: bodyStyle}, {}, {}, {},
				{Text: amount(h.CGST), Style: numStyle},
			}},
			{Cells: []layout.Cell{
				{Text: "SGST", Style: bodyStyle}, {}, {}, {},
				{Text: amount(h.SGST), Style: numStyle},
			}},
			{Cells: []layout.Cell{
				{Text: "TOTAL", Style: labelStyle}, {}, {}, {},
				{Text: amount(h.TotalBillAmount), Style: numBoldStyle},
			}},
		},
	}

	blocks := billHeaderBlocks(bill, h.BillNumber, "TAX BILL OF HANDLING SERVICES")
	blocks = append(blocks, table)
	blocks = append(blocks, claimBlocks(h.TotalBillAmount)...)
	return blocks
}

func depotBlocks(bill *models.ServiceBill, lines []*models.DealerEntry) []layout.Block {
	d := bill.TransportDepot

	table := &layout.Table{
		Heading:      "HSN/SAC: " + hsnTransport,
		HeadingStyle: labelStyle,
		Columns:      []float64{30, 65, 55, 90, 90, 35, 45, 50, 35, 40},
		Header: layout.Row{Cells: []layout.Cell{
			{Text: "SL", Style: headerStyle},
			{Text: "MDA NO", Style: headerStyle},
			{Text: "DATE", Style: headerStyle},
			{Text: "DEALER", Style: headerStyle},
			{Text: "DESPATCHED TO", Style: headerStyle},
			{Text: "KM", Style: headerStyle},
			{Text: "BAGS", Style: headerStyle},
			{Text: "QTY (MT)", Style: headerStyle},
			{Text: "RATE", Style: headerStyle},
			{Text: "AMOUNT", Style: headerStyle},
		}},
	}

	for i, de := range lines {
		dealerName := ""
		if de.Dealer != nil {
			dealerName = de.Dealer.Name
		}
		despatched := ""
		if de.DespatchedTo != nil {
			despatched = *de.DespatchedTo
		}
		km := ""
		if de.KM != nil {
			km = models.FormatDistance(*de.KM)
		}
		table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
			{Text: fmt.Sprintf("%d", i+1), Style: numStyle},
			{Text: de.MDANumber, Style: bodyStyle},
			{Text: de.Date, Style: bodyStyle},
			{Text: dealerName, Style: bodyStyle},
			{Text: despatched, Style: bodyStyle},
			{Text: km, Style: numStyle},
			{Text: fmt.Sprintf("%d", de.NoBags), Style: numStyle},
			{Text: qty(de.MT), Style: numStyle},
			{Text: amount(de.Rate), Style: numStyle},
			{Text: amount(de.Amount), Style: numStyle},
		}})
	}

	// average rate is display only; blank when nothing was despatched
	avgRate := ""
	if r, ok := billing.RatePerMT(d.TotalDepotAmount, d.TotalDepotQty); ok {
		avgRate = amount(r)
	}
	table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
		{}, {}, {}, {},
		{Text: "TOTAL", Style: labelStyle},
		{}, {},
		{Text: qty(d.TotalDepotQty), Style: numBoldStyle},
		{Text: avgRate, Style: numStyle},
		{Text: amount(d.TotalDepotAmount), Style: numBoldStyle},
	}})

	blocks := billHeaderBlocks(bill, d.BillNumber, "TAX BILL OF TRANSPORTATION (DEPOT)")
	blocks = append(blocks, table)
	blocks = append(blocks, claimBlocks(d.TotalDepotAmount)...)
	return blocks
}

func folBlocks(bill *models.ServiceBill) []layout.Block {
	f := bill.TransportFOL

	table := &layout.Table{
		Heading:      "HSN/SAC: " + hsnTransport,
		HeadingStyle: labelStyle,
		Columns:      []float64{30, 85, 50, 150, 70, 75, 75},
		Header: layout.Row{Cells: []layout.Cell{
			{Text: "SL", Style: headerStyle},
			{Text: "RANGE SLAB (KM)", Style: headerStyle},
			{Text: "RATE", Style: headerStyle},
			{Text: "DESTINATION", Style: headerStyle},
			{Text: "QTY (MT)", Style: headerStyle},
			{Text: "QTY (MTK)", Style: headerStyle},
			{Text: "AMOUNT", Style: headerStyle},
		}},
	}

	for i, slab := range f.Slabs {
		start := len(table.Rows)
		for j, dest := range slab.Destinations {
			sl, label, rate := "", "", ""
			if j == 0 {
				sl = fmt.Sprintf("%d", i+1)
				label = slab.RangeSlab
				rate = amount(slab.Rate)
			}
			table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
				{Text: sl, Style: numStyle},
				{Text: label, Style: bodyStyle},
				{Text: rate, Style: numStyle},
				{Text: dest.DestinationPlace, Style: bodyStyle},
				{Text: qty(dest.QtyMT), Style: numStyle},
				{Text: qty(dest.QtyMTK), Style: numStyle},
				{Text: amount(dest.Amount), Style: numStyle},
			}})
		}
		sl, label, rate := "", "", ""
		if len(slab.Destinations) == 0 {
			sl = fmt.Sprintf("%d", i+1)
			label = slab.RangeSlab
			rate = amount(slab.Rate)
		}
		table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
			{Text: sl, Style: numStyle},
			{Text: label, Style: bodyStyle},
			{Text: rate, Style: numStyle},
			{Text: "TOTAL", Style: labelStyle},
			{Text: qty(slab.RangeTotalQty), Style: numBoldStyle},
			{Text: qty(slab.RangeTotalMTK), Style: numBoldStyle},
			{Text: amount(slab.RangeTotalAmount), Style: numBoldStyle},
		}})
		table.Spans = append(table.Spans, layout.Span{Start: start, End: len(table.Rows) - 1})
	}

	if f.RHQty != 0 {
		table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
			{}, {}, {},
			{Text: "R.H. QTY", Style: labelStyle},
			{Text: qty(f.RHQty), Style: numStyle},
			{}, {},
		}})
	}
	table.Rows = append(table.Rows, layout.Row{Cells: []layout.Cell{
		{}, {}, {},
		{Text: "GRAND TOTAL", Style: labelStyle},
		{Text: qty(f.GrandTotalQty), Style: numBoldStyle},
		{},
		{Text: amount(f.GrandTotalAmount), Style: numBoldStyle},
	}})

	blocks := billHeaderBlocks(bill, f.BillNumber, "TAX BILL OF TRANSPORTATION")
	blocks = append(blocks, table)
	blocks = append(blocks, claimBlocks(f.GrandTotalAmount)...)
	return blocks
}
