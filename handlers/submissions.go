package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/middleware"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

func store() *forms.Store {
	return forms.NewStore(config.DB, config.SubmissionPolicy())
}

type submissionReq struct {
	FormAssignmentID uuid.UUID       `json:"formAssignmentId"`
	DataJson         json.RawMessage `json:"dataJson"`
}

// CreateSubmission records filled-in answers against an assignment. Required
// fields are checked here at the boundary against the template schema; the
// store keeps the payload opaque.
func CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assignment, err := ledger().GetAssignment(req.FormAssignmentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if scope := middleware.GetClientID(r); scope != "" && scope != assignment.ClientID.String() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := checkRequiredFields(assignment.FormTemplateID, req.DataJson); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	submission, err := store().Submit(req.FormAssignmentID, middleware.GetUserID(r), req.DataJson)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

// checkRequiredFields verifies every required template field has a non-blank
// answer keyed by its label.
func checkRequiredFields(templateID uuid.UUID, data json.RawMessage) error {
	template, err := catalog().GetTemplate(templateID)
	if err != nil {
		return fmt.Errorf("form template not found")
	}

	var answers map[string]interface{}
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("submission data must be a JSON object")
	}

	var missing []string
	for _, f := range template.Fields {
		if !f.IsRequired {
			continue
		}
		v, ok := answers[f.Label]
		if !ok || v == nil {
			missing = append(missing, f.Label)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetLatestSubmission returns the newest submission for an assignment.
func GetLatestSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "assignmentId")
	if err != nil {
		http.Error(w, "invalid assignment id", http.StatusBadRequest)
		return
	}
	submission, err := store().GetLatest(assignmentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submission)
}

// GetSubmissionsByAssignment lists submissions for an assignment, newest first.
func GetSubmissionsByAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "assignmentId")
	if err != nil {
		http.Error(w, "invalid assignment id", http.StatusBadRequest)
		return
	}
	submissions, err := store().ListByAssignment(assignmentID)
	if err != nil {
		http.Error(w, "failed to fetch submissions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// GetSubmissionDetails returns one submission with its assignment and
// template context.
func GetSubmissionDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}
	submission, err := store().GetDetails(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submission)
}
