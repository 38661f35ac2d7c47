package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shanenterprises/models"
	"shanenterprises/repository"
)

type DestinationHandler struct {
	Repo      repository.DestinationRepository
	PlaceRepo repository.PlaceRepository
}

// SaveDestination creates a destination when no id is passed, updates otherwise
func (h *DestinationHandler) SaveDestination(w http.ResponseWriter, r *http.Request) {
	var dest models.Destination
	if err := json.NewDecoder(r.Body).Decode(&dest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dest.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SaveDestination(&dest); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dest)
}

// GetDestinations lists destinations, query params become filters
func (h *DestinationHandler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	filters := queryFilters(r)

	list, err := h.Repo.GetDestinations(filters)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if list == nil {
		list = []*models.Destination{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DeleteDestinations removes the destinations named by ?ids=
func (h *DestinationHandler) DeleteDestinations(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		http.Error(w, "missing or invalid ids", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteDestinations(ids); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Destinations deleted successfully"})
}

// SavePlace creates or updates a place under a destination
func (h *DestinationHandler) SavePlace(w http.ResponseWriter, r *http.Request) {
	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if place.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.PlaceRepo.SavePlace(&place); err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(place)
}

// GetPlaces lists places, query params become filters
func (h *DestinationHandler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	filters := queryFilters(r)

	list, err := h.PlaceRepo.GetPlaces(filters)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if list == nil {
		list = []*models.Place{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DeletePlaces removes the places named by ?ids=
func (h *DestinationHandler) DeletePlaces(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		http.Error(w, "missing or invalid ids", http.StatusBadRequest)
		return
	}

	if err := h.PlaceRepo.DeletePlaces(ids); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Places deleted successfully"})
}

// queryFilters converts query params into repository filters, numbers
// kept numeric so id filters bind correctly
func queryFilters(r *http.Request) map[string]interface{} {
	filters := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if key == "ids" || len(values) == 0 || values[0] == "" {
			continue
		}
		if intVal, err := strconv.Atoi(values[0]); err == nil {
			filters[key] = intVal
		} else {
			filters[key] = values[0]
		}
	}
	return filters
}
