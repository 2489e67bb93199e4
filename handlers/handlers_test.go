package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/middleware"
	"github.com/edwinjebakumar/clientportal/models"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
	"github.com/edwinjebakumar/clientportal/routes"
)

// setupAPI points the package-level DB at an in-memory database and returns
// the assembled router plus an admin bearer token.
func setupAPI(t *testing.T) (http.Handler, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FieldType{}, &models.BaseTemplate{},
		&models.FormTemplate{}, &models.FormField{}, &models.Client{},
		&models.FormAssignment{}, &models.Submission{}, &models.SubmissionFile{},
		&models.ActivityHistory{}))
	require.NoError(t, forms.NewRegistry(db).Seed())
	config.DB = db

	token, err := middleware.GenerateToken("admin-1", models.RoleAdmin, "Admin", "admin@clientportal.com", "")
	require.NoError(t, err)
	return routes.RegisterRoutes(), token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTemplateEndpoints(t *testing.T) {
	handler, token := setupAPI(t)

	payload := map[string]interface{}{
		"name":        "KYC",
		"description": "Know your customer",
		"fields": []map[string]interface{}{
			{"label": "Full Name", "fieldTypeName": "Text", "isRequired": true, "fieldOrder": 0},
			{"label": "Country", "fieldTypeName": "Dropdown", "isRequired": true,
				"options": json.RawMessage(`["NL","IN"]`), "fieldOrder": 1},
		},
	}

	rec := doJSON(t, handler, "POST", "/api/v1/admin/templates", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.FormTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Fields, 2)

	rec = doJSON(t, handler, "GET", "/api/v1/templates/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// choice field without options is a client error
	bad := map[string]interface{}{
		"name": "Broken",
		"fields": []map[string]interface{}{
			{"label": "Pick", "fieldTypeName": "Dropdown", "fieldOrder": 0},
		},
	}
	rec = doJSON(t, handler, "POST", "/api/v1/admin/templates", token, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// clone gets a "Copy of" name and its own id
	rec = doJSON(t, handler, "POST", "/api/v1/admin/templates/"+created.ID.String()+"/clone", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var clone models.FormTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clone))
	assert.Equal(t, "Copy of KYC", clone.Name)
	assert.NotEqual(t, created.ID, clone.ID)

	// unknown id is not found
	rec = doJSON(t, handler, "GET", "/api/v1/templates/00000000-0000-0000-0000-000000000001", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// without a token nothing is reachable
	rec = doJSON(t, handler, "GET", "/api/v1/templates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAssignmentAndSubmissionEndpoints(t *testing.T) {
	handler, token := setupAPI(t)

	rec := doJSON(t, handler, "POST", "/api/v1/admin/clients", token,
		map[string]interface{}{"name": "EdCorp"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var client models.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))

	rec = doJSON(t, handler, "POST", "/api/v1/admin/templates", token, map[string]interface{}{
		"name": "KYC",
		"fields": []map[string]interface{}{
			{"label": "Full Name", "fieldTypeName": "Text", "isRequired": true, "fieldOrder": 0},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var template models.FormTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &template))

	assign := map[string]interface{}{
		"clientId":       client.ID,
		"formTemplateId": template.ID,
	}
	rec = doJSON(t, handler, "POST", "/api/v1/admin/assignments", token, assign)
	require.Equal(t, http.StatusCreated, rec.Code)
	var assignment models.FormAssignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignment))
	assert.Equal(t, models.AssignmentStatusPending, assignment.Status)

	// duplicate pair is a conflict
	rec = doJSON(t, handler, "POST", "/api/v1/admin/assignments", token, assign)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// client delete blocked while the assignment exists
	rec = doJSON(t, handler, "DELETE", "/api/v1/admin/clients/"+client.ID.String(), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// required field missing -> client error with a readable message
	rec = doJSON(t, handler, "POST", "/api/v1/submissions", token, map[string]interface{}{
		"formAssignmentId": assignment.ID,
		"dataJson":         json.RawMessage(`{}`),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Full Name")

	rec = doJSON(t, handler, "POST", "/api/v1/submissions", token, map[string]interface{}{
		"formAssignmentId": assignment.ID,
		"dataJson":         json.RawMessage(`{"Full Name":"John Doe"}`),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var submission models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submission))

	rec = doJSON(t, handler, "GET", "/api/v1/submissions/latest/"+assignment.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, submission.ID, latest.ID)
	assert.JSONEq(t, `{"Full Name":"John Doe"}`, string(latest.DataJson))

	rec = doJSON(t, handler, "GET", fmt.Sprintf("/api/v1/clients/%s/assignments", client.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var overviews []forms.AssignmentOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overviews))
	require.Len(t, overviews, 1)
	assert.Equal(t, models.AssignmentStatusSubmitted, overviews[0].Status)
	assert.NotNil(t, overviews[0].LastSubmissionDate)

	rec = doJSON(t, handler, "GET", "/api/v1/activity/submission/"+submission.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.ActivityHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionSubmit, history[0].ActionType)
}

func TestClientScopedAccess(t *testing.T) {
	handler, adminToken := setupAPI(t)

	rec := doJSON(t, handler, "POST", "/api/v1/admin/clients", adminToken,
		map[string]interface{}{"name": "EdCorp"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var client models.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))

	otherToken, err := middleware.GenerateToken("u9", models.RoleClient, "Eve", "eve@other.com",
		"11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)

	// a client user cannot read another organization's assignments
	rec = doJSON(t, handler, "GET", fmt.Sprintf("/api/v1/clients/%s/assignments", client.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// nor reach admin endpoints
	rec = doJSON(t, handler, "POST", "/api/v1/admin/clients", otherToken,
		map[string]interface{}{"name": "Rogue"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
