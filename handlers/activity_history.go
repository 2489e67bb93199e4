package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// GetActivityBySubmission returns a submission's audit trail, newest first.
func GetActivityBySubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathID(r, "submissionId")
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}
	history, err := store().ListActivityBySubmission(submissionID)
	if err != nil {
		http.Error(w, "failed to fetch activity history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// GetActivityByUser returns everything one user did, newest first.
func GetActivityByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "user id is required", http.StatusBadRequest)
		return
	}
	history, err := store().ListActivityByUser(userID)
	if err != nil {
		http.Error(w, "failed to fetch activity history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
