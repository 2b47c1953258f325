package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// AllowCors wraps the whole api handler. Credentials are allowed so the
// access token cookie reaches the server.
func AllowCors(origins []string, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(h)
}
