package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yamier22/motion-library/internal/domain"
	"github.com/Yamier22/motion-library/internal/http/response"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/storage"
)

type ModelHandler struct {
	log   *logger.Logger
	store *storage.Store
}

func NewModelHandler(log *logger.Logger, store *storage.Store) *ModelHandler {
	return &ModelHandler{log: log.With("handler", "model"), store: store}
}

// List returns every model description under the models root.
func (h *ModelHandler) List(c *gin.Context) {
	models, err := h.store.ListModels()
	if err != nil {
		h.log.Error("Failed to list models", "error", err)
		respondStoreError(c, err)
		return
	}
	for i := range models {
		if _, err := h.store.ModelThumbnail(models[i].ID); err == nil {
			models[i].ThumbnailURL = fmt.Sprintf("/api/models/%s/thumbnail", models[i].ID)
		}
	}
	response.RespondOK(c, domain.ModelListResponse{Models: models, Total: len(models)})
}

// Upload stores a model description file posted as multipart form data.
func (h *ModelHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("missing file field: %w", err))
		return
	}
	src, err := file.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	meta, err := h.store.SaveModel(file.Filename, content, c.PostForm("model_name"))
	if err != nil {
		h.log.Warn("Model upload rejected", "filename", file.Filename, "error", err)
		respondStoreError(c, err)
		return
	}
	if _, err := h.store.ModelThumbnail(meta.ID); err == nil {
		meta.ThumbnailURL = fmt.Sprintf("/api/models/%s/thumbnail", meta.ID)
	}
	h.log.Info("Model uploaded", "id", meta.ID, "filename", meta.Filename)
	response.RespondOK(c, domain.ModelUploadResponse{
		Success: true,
		Message: fmt.Sprintf("Model %s uploaded successfully", meta.Filename),
		Model:   &meta,
	})
}

// Download streams the model description file itself.
func (h *ModelHandler) Download(c *gin.Context) {
	path, err := h.store.GetModel(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	name := filepath.Base(path)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", assetContentType(name))
	c.File(path)
}

// Delete removes the model description file. Auxiliary files in the model's
// directory are left in place.
func (h *ModelHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteModel(id); err != nil {
		respondStoreError(c, err)
		return
	}
	h.log.Info("Model deleted", "id", id)
	response.RespondOK(c, gin.H{"success": true, "message": "Model deleted successfully"})
}

// Files lists every file in the model's directory, relative to the models root.
func (h *ModelHandler) Files(c *gin.Context) {
	files, err := h.store.ModelDirectoryFiles(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"files": files, "total": len(files)})
}

// File streams one file from the model's directory, e.g. a mesh referenced by
// the model description. The path is resolved against the owning directory and
// anything that escapes it is refused.
func (h *ModelHandler) File(c *gin.Context) {
	// Gin's catch-all parameter keeps its leading slash; the path the
	// client asked for is relative to the model's directory.
	requested := strings.TrimPrefix(c.Param("filepath"), "/")
	path, err := h.store.ModelFile(c.Param("id"), requested)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Type", assetContentType(path))
	c.File(path)
}

// Thumbnail serves the cached preview image for the model, if one exists.
func (h *ModelHandler) Thumbnail(c *gin.Context) {
	path, err := h.store.ModelThumbnail(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Type", assetContentType(path))
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
