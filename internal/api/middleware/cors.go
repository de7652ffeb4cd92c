package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the tracker's browser frontend.
// X-API-Key is allowed so the admin screens can reach the guarded
// operational endpoints from another origin.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-API-Key",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
