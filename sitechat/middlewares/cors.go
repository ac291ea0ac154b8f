package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the embeddable widget call the API from the listed origins.
// "*" allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", TraceHeader},
		ExposedHeaders: []string{TraceHeader, "Retry-After"},
		MaxAge:         300,
	})
}
