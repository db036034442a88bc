// Package projects provides the portfolio project API.
//
// Endpoints (mounted at /api/projects):
//   - GET    /             - paginated, filtered listing
//   - GET    /featured     - featured and completed projects, at most 6
//   - GET    /{id}         - single project
//   - POST   /             - create (API key)
//   - PUT    /{id}         - full replace (API key)
//   - DELETE /{id}         - delete (API key)
//   - POST   /{id}/images  - upload an image (API key)
//
// The three read endpoints degrade to the embedded sample projects when the
// store is unreachable or a read fails; writes never do.
package projects

import (
	"context"
	"errors"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratafolio/internal/app/system/inputval"
	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/normalize"
	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of projectstore.Store the handlers use.
type Store interface {
	List(ctx context.Context, f projectstore.Filter, page, limit int) ([]models.Project, int64, error)
	Featured(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Replace(ctx context.Context, id string, p models.Project) (models.Project, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, img models.ProjectImage) (models.Project, error)
}

// DefaultMaxUpload bounds an image upload when no limit is configured.
const DefaultMaxUpload int64 = 10 << 20

// Handler serves the project endpoints.
type Handler struct {
	store     Store
	health    storehealth.Checker
	files     storage.Store
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
	maxUpload int64
}

// NewHandler creates a project Handler. files may be nil, in which case
// image uploads answer 500.
func NewHandler(
	store Store,
	health storehealth.Checker,
	files storage.Store,
	errLog *errorsfeature.ErrorLogger,
	maxUpload int64,
	logger *zap.Logger,
) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{
		store:     store,
		health:    health,
		files:     files,
		errLog:    errLog,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// List handles GET /.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "projects.list")
	defer cancel()

	res := h.list(ctx, params)

	writeResult(w, r, res, &jsonutil.Envelope{
		Success:    true,
		Data:       res.Data,
		Pagination: jsonutil.NewPagination(params.page, params.limit, res.Total),
	})
}

// Featured handles GET /featured.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "projects.featured")
	defer cancel()

	res := h.featured(ctx)
	writeResult(w, r, res, &jsonutil.Envelope{Success: true, Data: res.Data})
}

// Get handles GET /{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "projects.get")
	defer cancel()

	res, err := h.get(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, projectstore.ErrNotFound) {
		jsonutil.NotFound(w, "Project not found")
		return
	}
	writeResult(w, r, res, &jsonutil.Envelope{Success: true, Data: res.Data})
}

// Create handles POST /.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProject(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "projects.create")
	defer cancel()

	created, err := h.store.Create(ctx, p)
	if err != nil {
		h.errLog.Internal(w, r, "Failed to create project", err)
		return
	}

	h.logger.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("title", created.Title))
	jsonutil.Created(w, created, "Project created successfully")
}

// Update handles PUT /{id}. The body replaces every editable field.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.decodeProject(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "projects.update")
	defer cancel()

	updated, err := h.store.Replace(ctx, id, p)
	if errors.Is(err, projectstore.ErrNotFound) {
		jsonutil.NotFound(w, "Project not found")
		return
	}
	if err != nil {
		h.errLog.Internal(w, r, "Failed to update project", err)
		return
	}

	jsonutil.OKMessage(w, updated, "Project updated successfully")
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "projects.delete")
	defer cancel()

	err := h.store.Delete(ctx, id)
	if errors.Is(err, projectstore.ErrNotFound) {
		jsonutil.NotFound(w, "Project not found")
		return
	}
	if err != nil {
		h.errLog.Internal(w, r, "Failed to delete project", err)
		return
	}

	h.logger.Info("project deleted", zap.String("project_id", id))
	jsonutil.OKMessage(w, nil, "Project deleted successfully")
}

// decodeProject reads, cleans and validates a project body. It writes the
// 400 response itself and reports false when the body is unusable.
func (h *Handler) decodeProject(w http.ResponseWriter, r *http.Request) (models.Project, bool) {
	var p models.Project
	if err := jsonutil.Decode(r, &p); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return p, false
	}

	// Identity and timestamps are server-owned.
	p.ID = primitive.NilObjectID
	p.CreatedAt, p.UpdatedAt = time.Time{}, time.Time{}

	normalize.Project(&p)
	p.LongDescription = htmlsanitize.Field(p.LongDescription)
	p.ApplyDefaults()

	if res := inputval.ValidateProject(p); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return p, false
	}
	return p, true
}
