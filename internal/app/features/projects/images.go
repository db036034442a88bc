package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/app/system/normalize"
	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadImage handles POST /{id}/images.
//
// Multipart fields: file (required, image/*), alt, isMain. When isMain is
// true every other image of the project loses its main flag.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if h.files == nil {
		h.errLog.Internal(w, r, "Image storage is not configured", errors.New("no file storage"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.errLog.Log(r, "failed to parse multipart form", err)
		jsonutil.BadRequest(w, fmt.Sprintf("Upload is malformed or larger than %d MB", h.maxUpload>>20))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "Image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		jsonutil.BadRequest(w, "File must be an image")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "projects.upload_image")
	defer cancel()

	// Refuse before storing anything when the project is gone.
	if _, err := h.store.GetByID(ctx, id); err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			jsonutil.NotFound(w, "Project not found")
			return
		}
		h.errLog.Internal(w, r, "Failed to load project", err)
		return
	}

	path, err := h.storeImage(ctx, header.Filename, file, contentType)
	if err != nil {
		h.errLog.Internal(w, r, "Failed to store image", err)
		return
	}

	isMain, _ := strconv.ParseBool(normalize.QueryParam(r.FormValue("isMain")))
	img := models.ProjectImage{
		URL:    h.files.URL(path),
		Alt:    normalize.Text(r.FormValue("alt")),
		IsMain: isMain,
	}

	updated, err := h.store.AddImage(ctx, id, img)
	if err != nil {
		// Clean up the stored file on DB error, even past the deadline.
		if delErr := h.files.Delete(context.WithoutCancel(ctx), path); delErr != nil {
			h.logger.Warn("failed to remove orphaned image", zap.String("path", path), zap.Error(delErr))
		}
		if errors.Is(err, projectstore.ErrNotFound) {
			jsonutil.NotFound(w, "Project not found")
			return
		}
		h.errLog.Internal(w, r, "Failed to attach image", err)
		return
	}

	h.logger.Info("project image uploaded",
		zap.String("project_id", id),
		zap.String("path", path),
		zap.Int64("size", header.Size))
	jsonutil.Created(w, updated, "Image uploaded successfully")
}

// storeImage writes an upload under projects/YYYY/MM/<uuid><ext> and returns
// the storage path.
func (h *Handler) storeImage(ctx context.Context, filename string, file io.Reader, contentType string) (string, error) {
	now := time.Now().UTC()
	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("projects/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.New().String()[:8], ext)

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := h.files.Put(ctx, path, file, opts); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return path, nil
}
