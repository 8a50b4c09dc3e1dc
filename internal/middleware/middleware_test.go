package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veselicnik/srecke-backend/internal/auth"
	"github.com/veselicnik/srecke-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]*models.Identity

func (s stubVerifier) Verify(_ context.Context, token string) (*models.Identity, error) {
	if token == "down" {
		return nil, auth.ErrGateUnavailable
	}
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, auth.ErrInvalidToken
}

func newProtectedRouter(v auth.Verifier) *gin.Engine {
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	r.GET("/me", AuthMiddleware(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentIdentity(c).UserID, "token": BearerToken(c)})
	})
	r.DELETE("/admin", AuthMiddleware(v), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	router := newProtectedRouter(stubVerifier{
		"user-token":  {UserID: "u1", UserType: "normal"},
		"admin-token": {UserID: "a1", UserType: models.UserTypeAdmin},
	})

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
	}{
		{"missing header", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/me", "Basic abc", http.StatusUnauthorized},
		{"empty token", http.MethodGet, "/me", "Bearer ", http.StatusUnauthorized},
		{"rejected token", http.MethodGet, "/me", "Bearer nope", http.StatusUnauthorized},
		{"gate unavailable", http.MethodGet, "/me", "Bearer down", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/me", "Bearer user-token", http.StatusOK},
		{"non-admin on admin route", http.MethodDelete, "/admin", "Bearer user-token", http.StatusForbidden},
		{"admin on admin route", http.MethodDelete, "/admin", "Bearer admin-token", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, CorrelationID(c)) })

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		got := w.Header().Get(CorrelationIDHeader)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("Expected a UUID, got %q", got)
		}
		if w.Body.String() != got {
			t.Errorf("Expected context and header to match, got %q and %q", w.Body.String(), got)
		}
	})

	t.Run("keeps the caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(CorrelationIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(CorrelationIDHeader); got != "abc-123" {
			t.Errorf("Expected abc-123, got %q", got)
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://veselicnik.si"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://veselicnik.si")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://veselicnik.si" {
		t.Errorf("Expected the origin to be echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin for an unknown origin, got %q", got)
	}
}
