package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

func catalog() *forms.Catalog {
	return forms.NewCatalog(config.DB, forms.NewRegistry(config.DB))
}

// GetAllTemplates lists template summaries.
func GetAllTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := catalog().ListTemplates()
	if err != nil {
		http.Error(w, "failed to fetch templates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// GetTemplate returns one template with fields in display order.
func GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	template, err := catalog().GetTemplate(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

// CreateTemplate creates a template with its field schema.
func CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input forms.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	template, err := catalog().CreateTemplate(input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

// UpdateTemplate reconciles a template's fields against the posted set.
func UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	var input forms.TemplateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	template, err := catalog().UpdateTemplate(id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

// DeleteTemplate removes a template and its fields.
func DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	if err := catalog().DeleteTemplate(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloneTemplate copies a template and saves the copy as a new template.
func CloneTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	c := catalog()
	draft, err := c.CloneTemplate(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	saved, err := c.SaveClone(draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
