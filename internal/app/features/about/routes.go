package about

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the about endpoints. writeGuard wraps
// POST and PUT.
func Routes(h *Handler, writeGuard ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Get("/skills", h.Skills)
	r.Get("/contact", h.Contact)

	r.Group(func(wr chi.Router) {
		wr.Use(writeGuard...)
		wr.Post("/", h.Create)
		wr.Put("/", h.Update)
	})

	return r
}
