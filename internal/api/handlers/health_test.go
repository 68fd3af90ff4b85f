package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/expenseflow/spaserver/internal/config"
)

func TestHealthHandler(t *testing.T) {
	cfg := &config.Config{
		Port:     3000,
		BuildDir: "./build",
	}

	handler := HealthHandler(cfg, "1.2.3")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] != "1.2.3" {
		t.Errorf("version field = %q, want 1.2.3", body["version"])
	}
	if body["buildDir"] != "./build" {
		t.Errorf("buildDir field = %q, want ./build", body["buildDir"])
	}
}
