package billing

import "shanenterprises/models"

// ReportToFOLPayload turns an aggregation report into the FOL section
// payload the synchronizer accepts, so a previewed report can be synced
// exactly as shown. Destination groups that merged several entries carry
// every entry id so the sync links them all.
func ReportToFOLPayload(report *SlabReport, billNumber string) *models.FOLPayload {
	p := &models.FOLPayload{
		BillNumber:       billNumber,
		RHQty:            report.RHQty,
		GrandTotalQty:    report.GrandTotalQty,
		GrandTotalAmount: report.GrandTotalAmount,
	}
	for _, slab := range report.Slabs {
		sp := models.FOLSlabPayload{
			RangeSlab:        slab.RangeSlab,
			Rate:             slab.Rate,
			RangeTotalQty:    slab.TotalQty,
			RangeTotalMTK:    slab.TotalMTK,
			RangeTotalAmount: slab.TotalAmount,
		}
		for _, d := range slab.Destinations {
			dp := models.FOLDestinationPayload{
				DestinationPlace: d.Place,
				QtyMT:            d.QtyMT,
				QtyMTK:           d.QtyMTK,
				Amount:           d.Amount,
			}
			dp.DestinationEntryIDs = append(dp.DestinationEntryIDs, d.EntryIDs...)
			sp.Destinations = append(sp.Destinations, dp)
		}
		p.Slabs = append(p.Slabs, sp)
	}
	return p
}
