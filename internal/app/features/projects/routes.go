package projects

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the project endpoints.
//
// Reads are public. writeGuard wraps every write; bootstrap passes the
// API key check followed by the write rate limiter.
func Routes(h *Handler, writeGuard ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/featured", h.Featured)
	r.Get("/{id}", h.Get)

	r.Group(func(wr chi.Router) {
		wr.Use(writeGuard...)
		wr.Post("/", h.Create)
		wr.Put("/{id}", h.Update)
		wr.Delete("/{id}", h.Delete)
		wr.Post("/{id}/images", h.UploadImage)
	})

	return r
}
