package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"shanenterprises/billing"
	"shanenterprises/config"
	"shanenterprises/models"
	"shanenterprises/repository"
	"shanenterprises/utils"

	"github.com/go-playground/validator/v10"
)

type ServiceBillHandler struct {
	Repo     repository.ServiceBillRepository
	Validate *validator.Validate
}

func NewServiceBillHandler(repo repository.ServiceBillRepository) *ServiceBillHandler {
	return &ServiceBillHandler{
		Repo:     repo,
		Validate: validator.New(),
	}
}

// SyncBill applies a full bill payload in one shot: scalars, all three
// sections and every entry link change together or not at all.
func (h *ServiceBillHandler) SyncBill(w http.ResponseWriter, r *http.Request) {
	var req models.SyncServiceBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid bill payload: " + err.Error(),
		})
		return
	}

	bill, err := h.Repo.SyncServiceBill(&req)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(bill)
}

// GetBills lists bills, query params become filters
func (h *ServiceBillHandler) GetBills(w http.ResponseWriter, r *http.Request) {
	filters := queryFilters(r)

	list, err := h.Repo.GetServiceBills(filters, false)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if list == nil {
		list = []*models.ServiceBill{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetBillByID handler
func (h *ServiceBillHandler) GetBillByID(w http.ResponseWriter, r *http.Request, id string) {
	billID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid bill ID", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.GetServiceBills(map[string]interface{}{"id": billID}, true)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if len(list) == 0 {
		http.Error(w, "Service bill not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list[0])
}

// DeleteBill removes the bill named by ?id= and releases everything it
// billed
func (h *ServiceBillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "missing bill id", http.StatusBadRequest)
		return
	}
	billID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid bill id", http.StatusBadRequest)
		return
	}

	// Remember the uploaded PDF so it can be cleaned up after the delete.
	var pdfURL string
	if list, err := h.Repo.GetServiceBills(map[string]interface{}{"id": billID}, true); err == nil && len(list) == 1 && list[0].PdfPath != nil {
		pdfURL = *list[0].PdfPath
	}

	if err := h.Repo.DeleteServiceBill(billID); err != nil {
		writeRepoError(w, err)
		return
	}

	if strings.HasPrefix(pdfURL, "http") {
		if err := utils.DeleteFromR2(pdfURL); err != nil {
			config.LogError("handlers", "DeleteBill", "delete remote pdf", err)
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Service bill deleted successfully"})
}

type previewFOLRequest struct {
	EntryIDs []int64 `json:"entry_ids" validate:"required,min=1"`
	RHQty    float64 `json:"rh_qty"`
}

// PreviewFOL aggregates the chosen entries into the slab/destination
// report the FOL section would bill, without writing anything. The
// operator reviews this before syncing.
func (h *ServiceBillHandler) PreviewFOL(w http.ResponseWriter, r *http.Request) {
	var req previewFOLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "entry_ids is required",
		})
		return
	}

	lines, err := h.Repo.FOLLinesForEntries(req.EntryIDs)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	report := billing.AggregateSlabs(lines, req.RHQty)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}
