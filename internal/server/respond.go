package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jokebox/jokebox/pkg/logger"
	"github.com/jokebox/jokebox/pkg/types"
)

// errorResponse is the JSON body for all non-2xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", logger.Err(err))
	}
}

// writeError writes an error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps a store error to its HTTP status. Validation errors
// are the boundary's job and should not normally reach this point; they map
// to 400 as a backstop. Anything unrecognized is a storage fault: logged and
// surfaced as 500, never swallowed into a false success.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, "joke not found")
	case errors.Is(err, types.ErrDuplicateID):
		writeError(w, http.StatusConflict, "joke with this ID already exists")
	case errors.Is(err, types.ErrNoSteps):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, types.ErrInvalidCategory),
		errors.Is(err, types.ErrInvalidType),
		errors.Is(err, types.ErrInvalidRole),
		errors.Is(err, types.ErrInvalidRating),
		errors.Is(err, types.ErrInvalidPosition),
		errors.Is(err, types.ErrDuplicatePosition),
		errors.Is(err, types.ErrInvalidContent),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidCount),
		errors.Is(err, types.ErrInvalidOffset):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("storage fault", logger.Err(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
