package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shanenterprises/billing"
	"shanenterprises/models"
	"shanenterprises/repository"
)

// stubBillRepo serves canned FOL lines for preview tests.
type stubBillRepo struct {
	lines []billing.SlabLine
	err   error
}

func (s *stubBillRepo) SyncServiceBill(req *models.SyncServiceBillRequest) (*models.ServiceBill, error) {
	return nil, nil
}
func (s *stubBillRepo) GetServiceBills(filters map[string]interface{}, single bool) ([]*models.ServiceBill, error) {
	return nil, nil
}
func (s *stubBillRepo) DeleteServiceBill(id int64) error                          { return nil }
func (s *stubBillRepo) UpdatePDFInfo(id int64, path string, t time.Time) error    { return nil }
func (s *stubBillRepo) DepotLinesForBill(billID int64) ([]*models.DealerEntry, error) { return nil, nil }
func (s *stubBillRepo) FOLLinesForEntries(entryIDs []int64) ([]billing.SlabLine, error) {
	return s.lines, s.err
}

func TestPreviewFOLAggregatesLines(t *testing.T) {
	repo := &stubBillRepo{lines: []billing.SlabLine{
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 5, Place: "KOVILPATTI", EntryID: 1, MT: 2, MTK: 80, Amount: 200},
		{SlabID: 1, SlabLabel: "0 - 50", Rate: 100, DestinationID: 5, Place: "KOVILPATTI", EntryID: 2, MT: 3, MTK: 195, Amount: 300},
	}}
	h := NewServiceBillHandler(repo)

	req := httptest.NewRequest("POST", "/service-bills/preview-fol",
		strings.NewReader(`{"entry_ids":[1,2],"rh_qty":1.5}`))
	w := httptest.NewRecorder()
	h.PreviewFOL(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var report billing.SlabReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(report.Slabs) != 1 {
		t.Fatalf("slabs = %d, want 1", len(report.Slabs))
	}
	if len(report.Slabs[0].Destinations) != 1 {
		t.Errorf("same destination must merge into one group")
	}
	if report.Slabs[0].Destinations[0].QtyMT != 5 {
		t.Errorf("merged qty = %.2f, want 5", report.Slabs[0].Destinations[0].QtyMT)
	}
	if report.GrandTotalQty != 6.5 {
		t.Errorf("grand total qty = %.2f, want 6.5 including RH", report.GrandTotalQty)
	}
}

func TestPreviewFOLRequiresEntryIDs(t *testing.T) {
	h := NewServiceBillHandler(&stubBillRepo{})

	req := httptest.NewRequest("POST", "/service-bills/preview-fol", strings.NewReader(`{"entry_ids":[]}`))
	w := httptest.NewRecorder()
	h.PreviewFOL(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPreviewFOLMapsNotFound(t *testing.T) {
	h := NewServiceBillHandler(&stubBillRepo{err: &repository.NotFoundError{Entity: "destination_entry", ID: 99}})

	req := httptest.NewRequest("POST", "/service-bills/preview-fol", strings.NewReader(`{"entry_ids":[99]}`))
	w := httptest.NewRecorder()
	h.PreviewFOL(w, req)

	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestSyncBillRejectsBadArithmetic(t *testing.T) {
	h := NewServiceBillHandler(&passthroughRepo{})

	body := `{
		"bill_date": "01-04-2025",
		"date_of_clearing": "28-03-2025",
		"handling": {
			"bill_number": "H-01",
			"bill_amount": 100, "cgst": 9, "sgst": 9,
			"total_bill_amount": 117.99
		}
	}`
	req := httptest.NewRequest("POST", "/service-bills", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.SyncBill(w, req)

	if w.Code != 422 {
		t.Fatalf("status = %d, want 422 for broken handling arithmetic", w.Code)
	}
}

// passthroughRepo runs the payload-level validation the real repo runs
// before touching storage.
type passthroughRepo struct {
	stubBillRepo
}

func (p *passthroughRepo) SyncServiceBill(req *models.SyncServiceBillRequest) (*models.ServiceBill, error) {
	if err := billing.ValidateSync(req); err != nil {
		return nil, err
	}
	return &models.ServiceBill{ID: 1}, nil
}
