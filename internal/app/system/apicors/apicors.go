// Package apicors provides the CORS middleware for the JSON API.
//
// The API authenticates writes with a bearer key, never cookies, so
// credentials are not allowed and an empty origin list means any origin.
//
//	r.Use(apicors.Middleware(appCfg.CORSAllowedOrigins))
package apicors

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Middleware returns CORS middleware for the given origins.
// An empty list (or a "*" entry) allows every origin.
func Middleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}
