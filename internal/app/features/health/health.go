// internal/app/features/health/health.go
package health

import (
	"net/http"

	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the probe endpoints.
type Handler struct {
	store  storehealth.Checker
	logger *zap.Logger
}

func NewHandler(store storehealth.Checker, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Response is the body of /health.
type Response struct {
	Status   string            `json:"status"`
	Fallback bool              `json:"fallback"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns /health, /health/ready and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the Kubernetes-style /ready, /readyz and /livez.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check reports store connectivity. The API keeps serving project reads
// from sample data when MongoDB is down, so a missing store is "degraded"
// with a 200, not a failure.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Services: map[string]string{}}

	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Fallback = true
		resp.Services["mongodb"] = "unavailable"
	} else {
		resp.Services["mongodb"] = "ok"
	}

	jsonutil.JSON(w, http.StatusOK, resp)
}

// Ready fails while the store is unreachable so load balancers can prefer
// an instance with live data.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Live always answers.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
