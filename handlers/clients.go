package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/models"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

// GetClients lists all client organizations.
func GetClients(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := config.DB.Order("name asc").Find(&clients).Error; err != nil {
		http.Error(w, "failed to fetch clients", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

type createClientReq struct {
	Name          string   `json:"name"`
	ContactEmails []string `json:"contactEmails,omitempty"`
}

// CreateClient registers a new client organization.
func CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "client name is required", http.StatusBadRequest)
		return
	}
	client := models.Client{
		Name:          req.Name,
		ContactEmails: req.ContactEmails,
	}
	if err := config.DB.Create(&client).Error; err != nil {
		http.Error(w, "failed to create client", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// GetClient returns one client.
func GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// DeleteClient removes a client. Refused while assignments remain, so
// nothing is silently lost.
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	if err := forms.NewLedger(config.DB).DeleteClient(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
