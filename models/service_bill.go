package models

import "time"

// ServiceBill is the billing envelope. It owns at most one of each
// section; sections are synced together in one transaction.
type ServiceBill struct {
	ID             int64      `json:"id" db:"id"`
	BillDate       string     `json:"bill_date" db:"bill_date"`
	ToAddress      *string    `json:"to_address,omitempty" db:"to_address"`
	LetterNote     *string    `json:"letter_note,omitempty" db:"letter_note"`
	DateOfClearing string     `json:"date_of_clearing" db:"date_of_clearing"`
	Product        string     `json:"product" db:"product"`
	HSNSACCode     *string    `json:"hsn_sac_code,omitempty" db:"hsn_sac_code"`
	Year           *string    `json:"year,omitempty" db:"year"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at" db:"updated_at"`
	PdfCreatedAt   *time.Time `json:"pdf_created_at,omitempty" db:"pdf_created_at"`
	PdfPath        *string    `json:"pdf_path,omitempty" db:"pdf_path"`

	Handling       *HandlingBillSection   `json:"handling,omitempty"`
	TransportDepot *TransportDepotSection `json:"transport_depot,omitempty"`
	TransportFOL   *TransportFOLSection   `json:"transport_fol,omitempty"`
}

type HandlingBillSection struct {
	ID              int64   `json:"id" db:"id"`
	ServiceBillID   int64   `json:"service_bill_id" db:"service_bill_id"`
	BillNumber      string  `json:"bill_number" db:"bill_number"`
	Particulars     *string `json:"particulars,omitempty" db:"particulars"`
	TotalQty        float64 `json:"total_qty" db:"total_qty"`
	Rate            float64 `json:"rate" db:"rate"`
	BillAmount      float64 `json:"bill_amount" db:"bill_amount"`
	CGST            float64 `json:"cgst" db:"cgst"`
	SGST            float64 `json:"sgst" db:"sgst"`
	TotalBillAmount float64 `json:"total_bill_amount" db:"total_bill_amount"`
}

type TransportDepotSection struct {
	ID               int64   `json:"id" db:"id"`
	ServiceBillID    int64   `json:"service_bill_id" db:"service_bill_id"`
	BillNumber       string  `json:"bill_number" db:"bill_number"`
	TotalDepotQty    float64 `json:"total_depot_qty" db:"total_depot_qty"`
	TotalDepotAmount float64 `json:"total_depot_amount" db:"total_depot_amount"`
}

type TransportFOLSection struct {
	ID               int64   `json:"id" db:"id"`
	ServiceBillID    int64   `json:"service_bill_id" db:"service_bill_id"`
	BillNumber       string  `json:"bill_number" db:"bill_number"`
	RHQty            float64 `json:"rh_qty" db:"rh_qty"`
	GrandTotalQty    float64 `json:"grand_total_qty" db:"grand_total_qty"`
	GrandTotalAmount float64 `json:"grand_total_amount" db:"grand_total_amount"`

	Slabs []TransportFOLSlab `json:"slabs,omitempty"`
}

// TransportFOLSlab is one slab's rollup within a FOL section, unique
// per (section, range_slab).
type TransportFOLSlab struct {
	ID               int64   `json:"id" db:"id"`
	FOLSectionID     int64   `json:"fol_section_id" db:"fol_section_id"`
	RangeSlab        string  `json:"range_slab" db:"range_slab"`
	Rate             float64 `json:"rate" db:"rate"`
	RangeTotalQty    float64 `json:"range_total_qty" db:"range_total_qty"`
	RangeTotalMTK    float64 `json:"range_total_mtk" db:"range_total_mtk"`
	RangeTotalAmount float64 `json:"range_total_amount" db:"range_total_amount"`

	Destinations []TransportFOLDestination `json:"destinations,omitempty"`
}

type TransportFOLDestination struct {
	ID                 int64   `json:"id" db:"id"`
	SlabID             int64   `json:"slab_id" db:"slab_id"`
	DestinationPlace   string  `json:"destination_place" db:"destination_place"`
	QtyMT              float64 `json:"qty_mt" db:"qty_mt"`
	QtyMTK             float64 `json:"qty_mtk" db:"qty_mtk"`
	Amount             float64 `json:"amount" db:"amount"`
	DestinationEntryID *int64  `json:"destination_entry_id,omitempty" db:"destination_entry_id"`
}

// ---------------- Sync payloads ----------------

// SyncServiceBillRequest is the "synchronize bill" payload: the bill's
// scalar fields plus the three optional section payloads.
type SyncServiceBillRequest struct {
	ID             int64   `json:"id"`
	BillDate       string  `json:"bill_date" validate:"required"`
	ToAddress      *string `json:"to_address"`
	LetterNote     *string `json:"letter_note"`
	DateOfClearing string  `json:"date_of_clearing" validate:"required"`
	Product        string  `json:"product"`
	HSNSACCode     *string `json:"hsn_sac_code"`
	Year           *string `json:"year"`

	Handling       *HandlingPayload `json:"handling"`
	TransportDepot *DepotPayload    `json:"transport_depot"`
	TransportFOL   *FOLPayload      `json:"transport_fol"`
}

type HandlingPayload struct {
	BillNumber      string  `json:"bill_number" validate:"required"`
	Particulars     *string `json:"particulars"`
	TotalQty        float64 `json:"total_qty"`
	Rate            float64 `json:"rate"`
	BillAmount      float64 `json:"bill_amount"`
	CGST            float64 `json:"cgst"`
	SGST            float64 `json:"sgst"`
	TotalBillAmount float64 `json:"total_bill_amount"`
}

// DepotPayload lists the dealer entries the depot section should cover.
// The ID list is a full replacement: omitted entries are unlinked.
type DepotPayload struct {
	BillNumber       string  `json:"bill_number" validate:"required"`
	TotalDepotQty    float64 `json:"total_depot_qty"`
	TotalDepotAmount float64 `json:"total_depot_amount"`
	DealerEntryIDs   []int64 `json:"dealer_entry_ids"`
}

type FOLPayload struct {
	BillNumber       string           `json:"bill_number" validate:"required"`
	RHQty            float64          `json:"rh_qty"`
	GrandTotalQty    float64          `json:"grand_total_qty"`
	GrandTotalAmount float64          `json:"grand_total_amount"`
	Slabs            []FOLSlabPayload `json:"slabs" validate:"dive"`
}

type FOLSlabPayload struct {
	RangeSlab        string                  `json:"range_slab" validate:"required"`
	Rate             float64                 `json:"rate"`
	RangeTotalQty    float64                 `json:"range_total_qty"`
	RangeTotalMTK    float64                 `json:"range_total_mtk"`
	RangeTotalAmount float64                 `json:"range_total_amount"`
	Destinations     []FOLDestinationPayload `json:"destinations" validate:"dive"`
}

// FOLDestinationPayload may cover several destination entries when the
// preview merged rows for the same slab and destination; every id is
// linked to the bill so none stays billable elsewhere.
type FOLDestinationPayload struct {
	DestinationPlace    string  `json:"destination_place" validate:"required"`
	QtyMT               float64 `json:"qty_mt"`
	QtyMTK              float64 `json:"qty_mtk"`
	Amount              float64 `json:"amount"`
	DestinationEntryIDs []int64 `json:"destination_entry_ids,omitempty"`
}
