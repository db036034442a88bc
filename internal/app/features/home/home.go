// internal/app/features/home/home.go
package home

import (
	"net/http"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"go.uber.org/zap"
)

// Version is reported by the info endpoints.
const Version = "1.0.0"

// Handler provides the API info endpoints.
type Handler struct {
	name   string
	store  storehealth.Checker
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new home Handler. name is the service name shown in
// the info payload.
func NewHandler(name string, store storehealth.Checker, logger *zap.Logger) *Handler {
	return &Handler{
		name:   name,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Info is the body of GET /.
type Info struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Store     string            `json:"mongodb"`
}

// Echo is the body of GET /api/test.
type Echo struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Store     string `json:"mongodb"`
}

// Index describes the API. Mounted at /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, Info{
		Message: h.name + " API",
		Version: Version,
		Endpoints: map[string]string{
			"projects": "/api/projects",
			"about":    "/api/about",
			"test":     "/api/test",
			"health":   "/health",
		},
		Store: storehealth.State(r.Context(), h.store),
	})
}

// Test is a liveness echo that also reports the store state. Mounted at
// /api/test.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, Echo{
		Message:   h.name + " backend is running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Status:    "active",
		Store:     storehealth.State(r.Context(), h.store),
	})
}
