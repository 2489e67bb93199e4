package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// uploadSubmissionFileGCS stores an attachment in the configured Google
// Cloud Storage bucket, used in production.
func uploadSubmissionFileGCS(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}

	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		http.Error(w, "GCS_BUCKET not configured", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := r.Context()
	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "failed to init storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	objectName := fmt.Sprintf("submissions/%s/%s-%s",
		submissionID, time.Now().Format("20060102-150405"), header.Filename)

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := wc.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)
	record, err := store().AttachFile(submissionID, url, header.Filename)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}
