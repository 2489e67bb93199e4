package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

// writeJSON writes v as the response body with the right content type.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps a forms error onto an HTTP status with a
// human-readable message.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *forms.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, forms.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, forms.ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	case errors.Is(err, forms.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pathID parses the named mux var as a uuid.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}
