package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/edwinjebakumar/clientportal/handlers"
	"github.com/edwinjebakumar/clientportal/middleware"
	"github.com/edwinjebakumar/clientportal/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/fieldtypes", handlers.GetFieldTypes).Methods("GET")

	// Templates (read side is open to every authenticated user)
	api.HandleFunc("/templates", handlers.GetAllTemplates).Methods("GET")
	api.HandleFunc("/templates/{id}", handlers.GetTemplate).Methods("GET")

	// Clients and assignments (client users are scoped to their own org)
	api.HandleFunc("/clients/{id}", handlers.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id}/assignments", handlers.GetClientAssignments).Methods("GET")
	api.HandleFunc("/assignments/{id}", handlers.GetAssignment).Methods("GET")

	// Submissions and audit trail
	api.HandleFunc("/submissions", handlers.CreateSubmission).Methods("POST")
	api.HandleFunc("/submissions/latest/{assignmentId}", handlers.GetLatestSubmission).Methods("GET")
	api.HandleFunc("/submissions/byAssignment/{assignmentId}", handlers.GetSubmissionsByAssignment).Methods("GET")
	api.HandleFunc("/submissions/details/{id}", handlers.GetSubmissionDetails).Methods("GET")
	api.HandleFunc("/submissions/{id}/files", handlers.UploadSubmissionFile).Methods("POST")
	api.HandleFunc("/submissions/{id}/files", handlers.ListSubmissionFiles).Methods("GET")
	api.HandleFunc("/activity/submission/{submissionId}", handlers.GetActivityBySubmission).Methods("GET")
	api.HandleFunc("/activity/user/{userId}", handlers.GetActivityByUser).Methods("GET")

	// =====================================================
	// Admin Routes (require Admin role)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.RequireRole([]string{models.RoleAdmin}, next)
	})

	admin.HandleFunc("/templates", handlers.CreateTemplate).Methods("POST")
	admin.HandleFunc("/templates/{id}", handlers.UpdateTemplate).Methods("PUT")
	admin.HandleFunc("/templates/{id}", handlers.DeleteTemplate).Methods("DELETE")
	admin.HandleFunc("/templates/{id}/clone", handlers.CloneTemplate).Methods("POST")
	admin.HandleFunc("/templates/{id}/export", handlers.ExportTemplateSubmissions).Methods("GET")

	admin.HandleFunc("/clients", handlers.GetClients).Methods("GET")
	admin.HandleFunc("/clients", handlers.CreateClient).Methods("POST")
	admin.HandleFunc("/clients/{id}", handlers.DeleteClient).Methods("DELETE")

	admin.HandleFunc("/assignments", handlers.CreateAssignment).Methods("POST")
	admin.HandleFunc("/assignments/{id}", handlers.DeleteAssignment).Methods("DELETE")

	return r
}
