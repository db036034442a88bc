// Package about provides the profile API.
//
// Endpoints (mounted at /api/about):
//   - GET  /         - the active profile
//   - POST /         - create a profile and make it the only active one (API key)
//   - PUT  /         - partial update of the active profile (API key)
//   - GET  /skills   - skills, flat and grouped by category
//   - GET  /contact  - contact details and social links
//
// There is no sample-data fallback here: store errors answer 500.
package about

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	aboutstore "github.com/dalemusser/stratafolio/internal/app/store/about"
	"github.com/dalemusser/stratafolio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratafolio/internal/app/system/inputval"
	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/normalize"
	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of aboutstore.Store the handlers use.
type Store interface {
	GetActive(ctx context.Context) (models.About, error)
	Create(ctx context.Context, a models.About) (models.About, error)
	ReplaceActive(ctx context.Context, a models.About) (models.About, error)
}

// protectedFields cannot be changed through PUT.
var protectedFields = []string{"_id", "isActive", "createdAt", "updatedAt"}

// Handler serves the about endpoints.
type Handler struct {
	store  Store
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates an about Handler.
func NewHandler(store Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{store: store, errLog: errLog, logger: logger}
}

// SkillsResponse is the body of GET /skills.
type SkillsResponse struct {
	All        []models.Skill            `json:"all"`
	ByCategory map[string][]models.Skill `json:"byCategory"`
}

// ContactResponse is the body of GET /contact.
type ContactResponse struct {
	Contact     models.Contact      `json:"contact"`
	SocialLinks []models.SocialLink `json:"socialLinks"`
}

// active loads the active profile, writing the 404 or 500 itself when it
// cannot.
func (h *Handler) active(w http.ResponseWriter, r *http.Request) (models.About, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.logger, "about.get_active")
	defer cancel()

	a, err := h.store.GetActive(ctx)
	if errors.Is(err, aboutstore.ErrNotFound) {
		jsonutil.NotFound(w, "No active profile found")
		return a, false
	}
	if err != nil {
		h.errLog.Internal(w, r, "Failed to load profile", err)
		return a, false
	}
	a.ApplyDefaults()
	return a, true
}

// Get handles GET /.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.active(w, r)
	if !ok {
		return
	}
	jsonutil.OK(w, a)
}

// Skills handles GET /skills.
func (h *Handler) Skills(w http.ResponseWriter, r *http.Request) {
	a, ok := h.active(w, r)
	if !ok {
		return
	}
	jsonutil.OK(w, SkillsResponse{
		All:        a.Skills,
		ByCategory: models.SkillGroups(a.Skills),
	})
}

// Contact handles GET /contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	a, ok := h.active(w, r)
	if !ok {
		return
	}
	jsonutil.OK(w, ContactResponse{Contact: a.Contact, SocialLinks: a.SocialLinks})
}

// Create handles POST /.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var a models.About
	if err := jsonutil.Decode(r, &a); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	a.ID = primitive.NilObjectID
	a.CreatedAt, a.UpdatedAt = time.Time{}, time.Time{}

	if !prepare(w, &a) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "about.create")
	defer cancel()

	created, err := h.store.Create(ctx, a)
	if err != nil {
		h.errLog.Internal(w, r, "Failed to create profile", err)
		return
	}

	h.logger.Info("profile created", zap.String("about_id", created.ID.Hex()))
	jsonutil.Created(w, created, "Profile created successfully")
}

// Update handles PUT /. Top-level fields present in the body replace the
// stored ones; the result is validated as a whole before it is written.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := jsonutil.Decode(r, &patch); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	current, ok := h.active(w, r)
	if !ok {
		return
	}

	next, err := merge(current, patch)
	if err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if !prepare(w, &next) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.logger, "about.update")
	defer cancel()

	updated, err := h.store.ReplaceActive(ctx, next)
	if errors.Is(err, aboutstore.ErrNotFound) {
		// Another profile became active between the read and the write.
		jsonutil.NotFound(w, "No active profile found")
		return
	}
	if err != nil {
		h.errLog.Internal(w, r, "Failed to update profile", err)
		return
	}

	jsonutil.OKMessage(w, updated, "Profile updated successfully")
}

// merge overlays patch on the JSON form of current. Protected fields keep
// their stored values.
func merge(current models.About, patch map[string]json.RawMessage) (models.About, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return models.About{}, err
	}
	stored := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &stored); err != nil {
		return models.About{}, err
	}
	doc := maps.Clone(stored)
	for k, v := range patch {
		doc[k] = v
	}
	for _, k := range protectedFields {
		if v, ok := stored[k]; ok {
			doc[k] = v
		} else {
			delete(doc, k)
		}
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return models.About{}, err
	}
	var next models.About
	if err := json.Unmarshal(merged, &next); err != nil {
		return models.About{}, err
	}
	return next, nil
}

// prepare cleans and validates a, writing the 400 itself on failure.
func prepare(w http.ResponseWriter, a *models.About) bool {
	normalize.About(a)
	a.Bio = htmlsanitize.Field(a.Bio)
	a.ApplyDefaults()

	if res := inputval.ValidateAbout(*a); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return false
	}
	return true
}
