package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shanenterprises/importer"
	"shanenterprises/models"
	"shanenterprises/repository"
)

type EntryHandler struct {
	Repo       repository.EntryRepository
	RateRepo   repository.RateRangeRepository
	DealerRepo repository.DealerRepository
}

// SaveEntry creates or updates a destination entry with its range and
// dealer entries
func (h *EntryHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.DestinationEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if entry.DestinationID == 0 {
		http.Error(w, "destination_id is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SaveEntry(&entry); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}

// GetEntries lists entries, query params become filters. ?unbilled=true
// narrows to entries not yet assigned to any bill.
func (h *EntryHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	filters := queryFilters(r)
	delete(filters, "unbilled")

	list, err := h.Repo.GetEntries(filters, false)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if r.URL.Query().Get("unbilled") == "true" {
		unbilled := list[:0]
		for _, e := range list {
			if e.ServiceBillID == nil {
				unbilled = append(unbilled, e)
			}
		}
		list = unbilled
	}
	if list == nil {
		list = []*models.DestinationEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetEntryByID handler
func (h *EntryHandler) GetEntryByID(w http.ResponseWriter, r *http.Request, id string) {
	entryID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid entry ID", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.GetEntries(map[string]interface{}{"id": entryID}, true)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if len(list) == 0 {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list[0])
}

// DeleteEntries removes the entries named by ?ids=
func (h *EntryHandler) DeleteEntries(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		http.Error(w, "missing or invalid ids", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteEntries(ids); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Entries deleted successfully"})
}

// ImportEntries accepts a multipart despatch workbook and saves the
// assembled entry. Unimportable rows come back in the response so the
// operator can fix the sheet, but they never block the good rows.
func (h *EntryHandler) ImportEntries(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	destinationID, err := strconv.ParseInt(r.FormValue("destination_id"), 10, 64)
	if err != nil || destinationID == 0 {
		http.Error(w, "destination_id is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ranges, err := h.RateRepo.GetRateRanges()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	dealers, err := h.DealerRepo.GetDealers(nil)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	result, err := importer.ParseWorkbook(file, destinationID, ranges, dealers)
	if err != nil {
		http.Error(w, "failed to parse workbook: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(result.Entry.Ranges) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{
			Success: false,
			Message: "No importable rows in workbook",
			Data:    result.Skipped,
		})
		return
	}

	if err := h.Repo.SaveEntry(result.Entry); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Entries imported successfully",
		Data:    result,
	})
}
