package handlers

import (
	"net/http"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

// GetFieldTypes returns the field type catalog in display order.
func GetFieldTypes(w http.ResponseWriter, r *http.Request) {
	types, err := forms.NewRegistry(config.DB).ListTypes()
	if err != nil {
		http.Error(w, "failed to fetch field types", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types)
}
