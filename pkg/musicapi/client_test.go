package musicapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veselicnik/srecke-backend/internal/models"
)

func TestCreateRequest(t *testing.T) {
	var gotAuth string
	var gotBody models.MusicRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/music/requests" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"r1","song_name":"Na Golici"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0)
	resp, err := c.CreateRequest(context.Background(), "tok", &models.MusicRequest{
		SongName: "Na Golici", Artist: "Avsenik", VeselicaID: "ev1",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Expected forwarded bearer token, got %q", gotAuth)
	}
	if gotBody.VeselicaID != "ev1" || gotBody.SongName != "Na Golici" {
		t.Errorf("Unexpected body: %+v", gotBody)
	}
	m, ok := resp.(map[string]interface{})
	if !ok || m["id"] != "r1" {
		t.Errorf("Unexpected response: %#v", resp)
	}
}

func TestCreateRequestErrorStatus(t *testing.T) {
	long := strings.Repeat("x", 1000)

	tests := []struct {
		name        string
		status      int
		body        string
		wantContain string
		maxLen      int
	}{
		{"empty body", http.StatusServiceUnavailable, "", "music service returned 503", 0},
		{"body is kept", http.StatusBadRequest, `{"detail":"song_name is required"}`, `returned 400: {"detail":"song_name is required"}`, 0},
		{"long body is truncated", http.StatusInternalServerError, long, "returned 500: xxx", 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, 0).CreateRequest(context.Background(), "tok", &models.MusicRequest{SongName: "x"})
			if err == nil {
				t.Fatalf("Expected an error for a %d response", tt.status)
			}
			if !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("Expected error to contain %q, got %q", tt.wantContain, err.Error())
			}
			if tt.maxLen > 0 && len(err.Error()) > tt.maxLen {
				t.Errorf("Expected a truncated error, got %d chars", len(err.Error()))
			}
		})
	}
}
