package billing

import (
	"sort"
	"strconv"
	"strings"

	"shanenterprises/config"

	"github.com/sirupsen/logrus"
)

// SlabLine is one range-entry contribution: a slab, a destination and
// that destination's rollups within the slab.
type SlabLine struct {
	SlabID        int64
	SlabLabel     string
	Rate          float64
	DestinationID int64
	Place         string
	EntryID       int64 // originating destination entry, 0 when none
	MT            float64
	MTK           float64
	Amount        float64
}

type DestinationGroup struct {
	DestinationID int64   `json:"destination_id"`
	Place         string  `json:"destination_place"`
	EntryIDs      []int64 `json:"destination_entry_ids,omitempty"`
	QtyMT         float64 `json:"qty_mt"`
	QtyMTK        float64 `json:"qty_mtk"`
	Amount        float64 `json:"amount"`
}

type SlabGroup struct {
	SlabID       int64              `json:"slab_id"`
	RangeSlab    string             `json:"range_slab"`
	Rate         float64            `json:"rate"`
	Destinations []DestinationGroup `json:"destinations"`
	TotalQty     float64            `json:"range_total_qty"`
	TotalMTK     float64            `json:"range_total_mtk"`
	TotalAmount  float64            `json:"range_total_amount"`
}

// SlabReport is the grouped FOL/depot rollup. GrandTotalQty includes the
// RH adjustment; GrandTotalAmount does not (RH carries no amount).
type SlabReport struct {
	Slabs            []SlabGroup `json:"slabs"`
	RHQty            float64     `json:"rh_qty"`
	GrandTotalQty    float64     `json:"grand_total_qty"`
	GrandTotalMTK    float64     `json:"grand_total_mtk"`
	GrandTotalAmount float64     `json:"grand_total_amount"`
}

// AggregateSlabs groups lines by slab identity, then by destination
// within each slab, summing MT, MT*KM and amount. Slabs are sorted by
// the numeric lower bound of their display label; destinations keep
// first-seen order. All outputs are rounded to two decimals at this
// boundary, never during accumulation.
func AggregateSlabs(lines []SlabLine, rhQty float64) *SlabReport {
	slabOrder := []int64{}
	slabs := map[int64]*SlabGroup{}
	destIndex := map[int64]map[int64]int{}

	for _, l := range lines {
		sg, ok := slabs[l.SlabID]
		if !ok {
			sg = &SlabGroup{SlabID: l.SlabID, RangeSlab: l.SlabLabel, Rate: l.Rate}
			slabs[l.SlabID] = sg
			destIndex[l.SlabID] = map[int64]int{}
			slabOrder = append(slabOrder, l.SlabID)
		}

		idx, ok := destIndex[l.SlabID][l.DestinationID]
		if !ok {
			sg.Destinations = append(sg.Destinations, DestinationGroup{
				DestinationID: l.DestinationID,
				Place:         l.Place,
			})
			idx = len(sg.Destinations) - 1
			destIndex[l.SlabID][l.DestinationID] = idx
		}
		dg := &sg.Destinations[idx]
		dg.QtyMT += l.MT
		dg.QtyMTK += l.MTK
		dg.Amount += l.Amount
		if l.EntryID != 0 && !containsID(dg.EntryIDs, l.EntryID) {
			dg.EntryIDs = append(dg.EntryIDs, l.EntryID)
		}
	}

	report := &SlabReport{RHQty: rhQty}
	for _, id := range slabOrder {
		sg := slabs[id]
		for i := range sg.Destinations {
			d := &sg.Destinations[i]
			sg.TotalQty += d.QtyMT
			sg.TotalMTK += d.QtyMTK
			sg.TotalAmount += d.Amount
			d.QtyMT = Round2(d.QtyMT)
			d.QtyMTK = Round2(d.QtyMTK)
			d.Amount = Round2(d.Amount)
		}
		report.GrandTotalQty += sg.TotalQty
		report.GrandTotalMTK += sg.TotalMTK
		report.GrandTotalAmount += sg.TotalAmount
		sg.TotalQty = Round2(sg.TotalQty)
		sg.TotalMTK = Round2(sg.TotalMTK)
		sg.TotalAmount = Round2(sg.TotalAmount)
		report.Slabs = append(report.Slabs, *sg)
	}

	sort.SliceStable(report.Slabs, func(i, j int) bool {
		return slabLowerBound(report.Slabs[i].RangeSlab) < slabLowerBound(report.Slabs[j].RangeSlab)
	})

	report.GrandTotalQty = Round2(report.GrandTotalQty + rhQty)
	report.GrandTotalMTK = Round2(report.GrandTotalMTK)
	report.GrandTotalAmount = Round2(report.GrandTotalAmount)
	return report
}

// slabLowerBound parses the "<from> - <to>" label. Malformed labels sort
// as from=0 and are logged so bad data surfaces.
func slabLowerBound(label string) float64 {
	from := strings.TrimSpace(strings.SplitN(label, "-", 2)[0])
	v, err := strconv.ParseFloat(from, 64)
	if err != nil {
		config.GetLogger().WithFields(logrus.Fields{
			"module": "billing",
			"label":  label,
		}).Warn("malformed slab label, sorting as 0")
		return 0
	}
	return v
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
