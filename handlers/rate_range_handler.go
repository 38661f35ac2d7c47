package handlers

import (
	"encoding/json"
	"net/http"

	"shanenterprises/models"
	"shanenterprises/repository"
)

type RateRangeHandler struct {
	Repo repository.RateRangeRepository
}

// SaveRateRange creates or updates a distance slab. Overlapping slabs
// are rejected so every distance classifies to at most one.
func (h *RateRangeHandler) SaveRateRange(w http.ResponseWriter, r *http.Request) {
	var rr models.RateRange
	if err := json.NewDecoder(r.Body).Decode(&rr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.SaveRateRange(&rr); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rr)
}

// GetRateRanges lists slabs ordered by lower bound
func (h *RateRangeHandler) GetRateRanges(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetRateRanges()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if list == nil {
		list = []models.RateRange{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DeleteRateRanges removes the slabs named by ?ids=
func (h *RateRangeHandler) DeleteRateRanges(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		http.Error(w, "missing or invalid ids", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteRateRanges(ids); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Rate ranges deleted successfully"})
}
