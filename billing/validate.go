package billing

import (
	"fmt"

	"shanenterprises/models"

	"github.com/shopspring/decimal"
)

// ValidationError describes a caller-fixable invariant violation,
// naming the section and field that failed.
type ValidationError struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Message)
}

// ValidateHandling checks the handling arithmetic invariant:
// total_bill_amount == bill_amount + cgst + sgst, compared exactly at
// two decimals.
func ValidateHandling(p *models.HandlingPayload) error {
	want := decimal.NewFromFloat(p.BillAmount).
		Add(decimal.NewFromFloat(p.CGST)).
		Add(decimal.NewFromFloat(p.SGST)).
		Round(2)
	got := decimal.NewFromFloat(p.TotalBillAmount).Round(2)
	if !want.Equal(got) {
		return &ValidationError{
			Section: "handling",
			Field:   "total_bill_amount",
			Message: fmt.Sprintf("expected %s (bill_amount + cgst + sgst), got %s", want, got),
		}
	}
	return nil
}

// ValidateFOLPayload rejects empty and duplicate slab labels before any
// slab rows are written.
func ValidateFOLPayload(p *models.FOLPayload) error {
	seen := map[string]bool{}
	for _, slab := range p.Slabs {
		if slab.RangeSlab == "" {
			return &ValidationError{Section: "transport_fol", Field: "range_slab", Message: "slab label is required"}
		}
		if seen[slab.RangeSlab] {
			return &ValidationError{
				Section: "transport_fol",
				Field:   "range_slab",
				Message: fmt.Sprintf("duplicate slab label %q in section", slab.RangeSlab),
			}
		}
		seen[slab.RangeSlab] = true
	}
	return nil
}

// ValidateDepotPayload rejects a depot section that would bill nothing:
// a section must keep at least one dealer entry linked.
func ValidateDepotPayload(p *models.DepotPayload) error {
	if len(p.DealerEntryIDs) == 0 {
		return &ValidationError{
			Section: "transport_depot",
			Field:   "dealer_entry_ids",
			Message: "a depot section needs at least one dealer entry",
		}
	}
	return nil
}

// ValidateSync runs every payload-level check before the synchronizer
// touches storage.
func ValidateSync(req *models.SyncServiceBillRequest) error {
	if req.Handling != nil {
		if err := ValidateHandling(req.Handling); err != nil {
			return err
		}
	}
	if req.TransportDepot != nil {
		if err := ValidateDepotPayload(req.TransportDepot); err != nil {
			return err
		}
	}
	if req.TransportFOL != nil {
		if err := ValidateFOLPayload(req.TransportFOL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRangeEntry enforces the FOL-slab consistency invariant: a
// range entry flagged as a FOL slab must reference one and sit under a
// TRANSPORT_FOL entry; an unflagged one must not reference any.
func ValidateRangeEntry(re *models.RangeEntry, parentTransportType *string) error {
	if re.IsTransportFOLSlab {
		if re.TransportFOLSlabID == nil {
			return &ValidationError{
				Section: "range_entry",
				Field:   "transport_fol_slab_id",
				Message: "required when is_transport_fol_slab is set",
			}
		}
		if parentTransportType == nil || *parentTransportType != models.TransportFOL {
			return &ValidationError{
				Section: "range_entry",
				Field:   "is_transport_fol_slab",
				Message: "parent destination entry must have transport_type TRANSPORT_FOL",
			}
		}
		return nil
	}
	if re.TransportFOLSlabID != nil {
		return &ValidationError{
			Section: "range_entry",
			Field:   "transport_fol_slab_id",
			Message: "must be empty when is_transport_fol_slab is not set",
		}
	}
	return nil
}

// ValidateEntryLink checks the linkage invariant on a destination entry:
// a bill-linked entry must carry a transport type.
func ValidateEntryLink(e *models.DestinationEntry) error {
	if e.ServiceBillID != nil && e.TransportType == nil {
		return &ValidationError{
			Section: "destination_entry",
			Field:   "transport_type",
			Message: "required when the entry is assigned to a service bill",
		}
	}
	return nil
}
