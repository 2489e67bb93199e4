package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/middleware"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

func ledger() *forms.Ledger {
	return forms.NewLedger(config.DB)
}

type assignReq struct {
	ClientID       uuid.UUID `json:"clientId"`
	FormTemplateID uuid.UUID `json:"formTemplateId"`
	Notes          string    `json:"notes,omitempty"`
}

// CreateAssignment binds a template to a client. Assigning the same template
// twice to one client is a conflict.
func CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	assignment, err := ledger().Assign(req.ClientID, req.FormTemplateID, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

// GetClientAssignments lists a client's assignments, newest first, enriched
// with template naming and the latest submission date. Client users may only
// read their own organization.
func GetClientAssignments(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	if scope := middleware.GetClientID(r); scope != "" && scope != clientID.String() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	overviews, err := ledger().ListByClient(clientID)
	if err != nil {
		http.Error(w, "failed to fetch assignments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, overviews)
}

// GetAssignment returns one assignment with its nested submissions.
func GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid assignment id", http.StatusBadRequest)
		return
	}
	assignment, err := ledger().GetAssignment(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if scope := middleware.GetClientID(r); scope != "" && scope != assignment.ClientID.String() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// DeleteAssignment unassigns a template from a client.
func DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid assignment id", http.StatusBadRequest)
		return
	}
	if err := ledger().Unassign(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
