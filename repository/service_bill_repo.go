package repository

import (
	"time"

	"shanenterprises/billing"
	"shanenterprises/models"
)

// ServiceBillRepository owns the bill envelope and its three sections.
// SyncServiceBill is the only write path for sections: it applies the
// whole request in one transaction so the bill, its sections and every
// entry link land together or not at all.
type ServiceBillRepository interface {
	SyncServiceBill(req *models.SyncServiceBillRequest) (*models.ServiceBill, error)
	GetServiceBills(filters map[string]interface{}, single bool) ([]*models.ServiceBill, error)
	DeleteServiceBill(id int64) error
	UpdatePDFInfo(id int64, path string, createdAt time.Time) error

	// FOLLinesForEntries loads the slab contributions of the given
	// destination entries for aggregation previews.
	FOLLinesForEntries(entryIDs []int64) ([]billing.SlabLine, error)

	// DepotLinesForBill loads the dealer entries billed by the bill's
	// depot section, dealer and destination attached.
	DepotLinesForBill(billID int64) ([]*models.DealerEntry, error)
}
