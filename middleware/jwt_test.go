package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "Admin", "Ada", "ada@example.com", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got *Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTMiddleware(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil {
		t.Fatal("claims not attached to context")
	}
	if got.UserID != "user-1" || got.Role != "Admin" || got.Email != "ada@example.com" {
		t.Errorf("unexpected claims: %+v", got)
	}
}

func TestJWTMiddlewareRejections(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			JWTMiddleware(inner).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	token, err := GenerateToken("user-2", "Client", "Bob", "bob@example.com", "client-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := JWTMiddleware(RequireRole([]string{"Admin"}, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	)))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for Client role, got %d", rec.Code)
	}
}
