package handlers

import (
	"net/http"
	"os"
)

// UploadSubmissionFile routes to the appropriate storage backend based on
// environment. Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or K_SERVICE
// (Cloud Run).
func UploadSubmissionFile(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		uploadSubmissionFileGCS(w, r)
	} else {
		uploadSubmissionFileLocal(w, r)
	}
}

// ListSubmissionFiles returns a submission's attachments.
func ListSubmissionFiles(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}
	files, err := store().ListFiles(submissionID)
	if err != nil {
		http.Error(w, "failed to fetch files", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, files)
}
