package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"shanenterprises/billing"
	"shanenterprises/repository"
)

// ApiResponse is the common JSON envelope
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeRepoError maps repository and validation errors onto HTTP
// statuses: missing rows 404, uniqueness conflicts 409, invariant
// violations 422, anything else 500.
func writeRepoError(w http.ResponseWriter, err error) {
	var nf *repository.NotFoundError
	var cf *repository.ConflictError
	var ve *billing.ValidationError
	switch {
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: nf.Error()})
	case errors.As(err, &cf):
		writeJSON(w, http.StatusConflict, ApiResponse{Success: false, Message: cf.Error()})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, ApiResponse{Success: false, Message: ve.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Message: err.Error()})
	}
}

// parseIDList reads a comma separated ?ids= query value
func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.New("invalid id list")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
