package models

import "time"

const (
	TransportDepot = "TRANSPORT_DEPOT"
	TransportFOL   = "TRANSPORT_FOL"
)

// DestinationEntry is one shipment record tied to a Destination. When it
// is linked to a ServiceBill its TransportType must be set, and it can
// never be linked to more than one bill at a time.
type DestinationEntry struct {
	ID            int64     `json:"id" db:"id"`
	DestinationID int64     `json:"destination_id" db:"destination_id"`
	LetterNote    *string   `json:"letter_note,omitempty" db:"letter_note"`
	BillNumber    *string   `json:"bill_number,omitempty" db:"bill_number"`
	Date          string    `json:"date" db:"date"`
	ToAddress     *string   `json:"to_address,omitempty" db:"to_address"`
	ServiceBillID *int64    `json:"service_bill_id,omitempty" db:"service_bill_id"`
	TransportType *string   `json:"transport_type,omitempty" db:"transport_type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Destination *Destination `json:"destination,omitempty"`
	Ranges      []RangeEntry `json:"ranges,omitempty"`
}

// RangeEntry holds one slab's rollup inside a shipment. If
// TransportFOLSlabID is set the parent entry must be TRANSPORT_FOL.
type RangeEntry struct {
	ID                 int64    `json:"id" db:"id"`
	DestinationEntryID int64    `json:"destination_entry_id" db:"destination_entry_id"`
	RateRangeID        *int64   `json:"rate_range_id,omitempty" db:"rate_range_id"`
	Rate               float64  `json:"rate" db:"rate"`
	TotalBags          *int     `json:"total_bags,omitempty" db:"total_bags"`
	TotalMT            *float64 `json:"total_mt,omitempty" db:"total_mt"`
	TotalMTK           *float64 `json:"total_mtk,omitempty" db:"total_mtk"`
	TotalAmount        *float64 `json:"total_amount,omitempty" db:"total_amount"`
	IsTransportFOLSlab bool     `json:"is_transport_fol_slab" db:"is_transport_fol_slab"`
	TransportFOLSlabID *int64   `json:"transport_fol_slab_id,omitempty" db:"transport_fol_slab_id"`

	RateRange    *RateRange    `json:"rate_range,omitempty"`
	DealerEntries []DealerEntry `json:"dealer_entries,omitempty"`
}

// DealerEntry is one dealer's line item under a RangeEntry. Its
// ServiceBillID link is independent of the parent entry's link and is
// what the depot section bills against.
type DealerEntry struct {
	ID            int64    `json:"id" db:"id"`
	RangeEntryID  int64    `json:"range_entry_id" db:"range_entry_id"`
	DealerID      *int64   `json:"dealer_id,omitempty" db:"dealer_id"`
	DespatchedTo  *string  `json:"despatched_to,omitempty" db:"despatched_to"`
	KM            *float64 `json:"km,omitempty" db:"km"`
	NoBags        int      `json:"no_bags" db:"no_bags"`
	Rate          float64  `json:"rate" db:"rate"`
	MT            float64  `json:"mt" db:"mt"`
	MTK           float64  `json:"mtk" db:"mtk"`
	Amount        float64  `json:"amount" db:"amount"`
	MDANumber     string   `json:"mda_number" db:"mda_number"`
	Date          string   `json:"date" db:"date"`
	Description   string   `json:"description" db:"description"`
	Remarks       *string  `json:"remarks,omitempty" db:"remarks"`
	ServiceBillID *int64   `json:"service_bill_id,omitempty" db:"service_bill_id"`

	Dealer *Dealer `json:"dealer,omitempty"`
}
