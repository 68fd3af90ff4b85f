package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/expenseflow/spaserver/internal/config"
)

// okHandler is a simple handler that returns 200 OK for testing middleware.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func testConfig() *config.Config {
	return &config.Config{
		Port:             3000,
		BuildDir:         "./build",
		LiveReloadOrigin: "ws://localhost:*",
		FontStyleOrigin:  "https://fonts.googleapis.com",
		FontOrigin:       "https://fonts.gstatic.com",
	}
}

func TestSecurityHeaders_SetsCSP(t *testing.T) {
	handler := SecurityHeaders(testConfig())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	if csp == "" {
		t.Fatal("Content-Security-Policy header not set")
	}

	for _, directive := range []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"font-src 'self' https://fonts.gstatic.com",
		"img-src 'self' data:",
		"connect-src 'self' ws://localhost:*",
	} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing directive %q, got %q", directive, csp)
		}
	}
}

func TestSecurityHeaders_SetsBaselineHeaders(t *testing.T) {
	handler := SecurityHeaders(testConfig())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/static/app.js", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
	}

	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestSecurityHeaders_EmptyExtraOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.LiveReloadOrigin = ""

	handler := SecurityHeaders(cfg)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "connect-src 'self'") {
		t.Errorf("CSP missing connect-src, got %q", csp)
	}
	if strings.Contains(csp, "connect-src 'self' ") {
		t.Errorf("connect-src should have no trailing source, got %q", csp)
	}
}
