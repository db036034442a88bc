package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/stratafolio/internal/app/resources"
	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/accesslog"
	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.uber.org/zap"
)

// Source tells whether a read was served from the store or the samples.
type Source int

const (
	Live Source = iota
	Fallback
)

// Reasons carried in the message of a fallback response.
const (
	ReasonNotConnected = "Sample data (store not connected)"
	ReasonStoreError   = "Sample data (store error)"
)

// Result is the outcome of a read path. Reason is empty for Live results.
type Result[T any] struct {
	Data   T
	Source Source
	Reason string
	// Total is the unpaginated match count; listings only.
	Total int64
}

// IsFallback reports whether the data came from the samples.
func (r Result[T]) IsFallback() bool { return r.Source == Fallback }

// writeResult writes env, marking it as placeholder data when res fell back.
func writeResult[T any](w http.ResponseWriter, r *http.Request, res Result[T], env *jsonutil.Envelope) {
	if res.IsFallback() {
		env.Fallback = true
		env.Message = res.Reason
		accesslog.MarkFallback(r.Context())
	}
	jsonutil.JSON(w, http.StatusOK, env)
}

// connected asks the health checker before touching the store.
func (h *Handler) connected(ctx context.Context) bool {
	return storehealth.Connected(ctx, h.health)
}

func (h *Handler) storeFailed(ctx context.Context, op string, err error) {
	h.logger.Warn("project read failed; serving sample data",
		zap.String("op", op),
		zap.String("request_id", accesslog.RequestID(ctx)),
		zap.Error(err))
	accesslog.SetError(ctx, "store", err)
}

func (h *Handler) list(ctx context.Context, p listParams) Result[[]models.Project] {
	if !h.connected(ctx) {
		return fallbackList(p, ReasonNotConnected)
	}
	items, total, err := h.store.List(ctx, p.filter, p.page, p.limit)
	if err != nil {
		h.storeFailed(ctx, "list", err)
		return fallbackList(p, ReasonStoreError)
	}
	return Result[[]models.Project]{Data: items, Source: Live, Total: total}
}

func (h *Handler) featured(ctx context.Context) Result[[]models.Project] {
	if !h.connected(ctx) {
		return fallbackFeatured(ReasonNotConnected)
	}
	items, err := h.store.Featured(ctx)
	if err != nil {
		h.storeFailed(ctx, "featured", err)
		return fallbackFeatured(ReasonStoreError)
	}
	if len(items) > models.FeaturedLimit {
		items = items[:models.FeaturedLimit]
	}
	return Result[[]models.Project]{Data: items, Source: Live}
}

// get returns projectstore.ErrNotFound when neither the store nor, on
// fallback, the samples hold id.
func (h *Handler) get(ctx context.Context, id string) (Result[models.Project], error) {
	if !h.connected(ctx) {
		return fallbackGet(id, ReasonNotConnected)
	}
	p, err := h.store.GetByID(ctx, id)
	switch {
	case err == nil:
		return Result[models.Project]{Data: p, Source: Live}, nil
	case errors.Is(err, projectstore.ErrNotFound):
		return Result[models.Project]{}, err
	default:
		h.storeFailed(ctx, "get", err)
		return fallbackGet(id, ReasonStoreError)
	}
}

// fallbackList applies the listing filter, order and page to the samples.
func fallbackList(p listParams, reason string) Result[[]models.Project] {
	matched := make([]models.Project, 0)
	for _, s := range resources.MustSampleProjects() {
		if p.filter.Matches(s) {
			matched = append(matched, s)
		}
	}
	models.SortForListing(matched)

	total := int64(len(matched))
	start := len(matched)
	if p.page-1 <= len(matched)/p.limit {
		start = min((p.page-1)*p.limit, len(matched))
	}
	end := min(start+p.limit, len(matched))
	return Result[[]models.Project]{
		Data:   matched[start:end],
		Source: Fallback,
		Reason: reason,
		Total:  total,
	}
}

func fallbackFeatured(reason string) Result[[]models.Project] {
	out := make([]models.Project, 0, models.FeaturedLimit)
	for _, s := range resources.MustSampleProjects() {
		if s.Featured && s.Status == models.ProjectStatusCompleted {
			out = append(out, s)
		}
	}
	models.SortFeatured(out)
	if len(out) > models.FeaturedLimit {
		out = out[:models.FeaturedLimit]
	}
	return Result[[]models.Project]{Data: out, Source: Fallback, Reason: reason}
}

func fallbackGet(id string, reason string) (Result[models.Project], error) {
	for _, s := range resources.MustSampleProjects() {
		if s.ID.Hex() == id {
			return Result[models.Project]{Data: s, Source: Fallback, Reason: reason}, nil
		}
	}
	return Result[models.Project]{}, projectstore.ErrNotFound
}
