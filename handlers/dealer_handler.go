package handlers

import (
	"encoding/json"
	"net/http"

	"shanenterprises/models"
	"shanenterprises/repository"
)

type DealerHandler struct {
	Repo repository.DealerRepository
}

// SaveDealer creates or updates a dealer. New dealers get the next
// sequential code; codes are never client-supplied.
func (h *DealerHandler) SaveDealer(w http.ResponseWriter, r *http.Request) {
	var dealer models.Dealer
	if err := json.NewDecoder(r.Body).Decode(&dealer); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dealer.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SaveDealer(&dealer); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dealer)
}

// GetDealers lists dealers, query params become filters
func (h *DealerHandler) GetDealers(w http.ResponseWriter, r *http.Request) {
	filters := queryFilters(r)

	list, err := h.Repo.GetDealers(filters)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if list == nil {
		list = []*models.Dealer{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DeleteDealers removes the dealers named by ?ids=
func (h *DealerHandler) DeleteDealers(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		http.Error(w, "missing or invalid ids", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteDealers(ids); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Dealers deleted successfully"})
}
