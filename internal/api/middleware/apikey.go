package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
)

// APIKeyMiddleware guards mutating admin routes. The expected key comes from
// the INTERNAL_API_KEY environment variable; requests present it in the
// X-API-Key header. Comparison is constant time.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "admin API disabled", "No API key configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
