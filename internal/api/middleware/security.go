package middleware

import (
	"net/http"
	"strings"

	"github.com/expenseflow/spaserver/internal/config"
)

// SecurityHeaders sets baseline security headers on every response. The CSP
// restricts scripts, styles, fonts, images, and connections to 'self' plus
// the configured font origins and the local live-reload websocket origin.
func SecurityHeaders(cfg *config.Config) func(http.Handler) http.Handler {
	csp := buildCSP(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

func buildCSP(cfg *config.Config) string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self'",
		// 'unsafe-inline' because the build injects inline style attributes.
		joinSources("style-src 'self' 'unsafe-inline'", cfg.FontStyleOrigin),
		joinSources("font-src 'self'", cfg.FontOrigin),
		"img-src 'self' data:",
		joinSources("connect-src 'self'", cfg.LiveReloadOrigin),
	}
	return strings.Join(directives, "; ")
}

func joinSources(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + " " + extra
}
