package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Yamier22/motion-library/internal/domain"
	"github.com/Yamier22/motion-library/internal/http/response"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/storage"
)

type TrajectoryHandler struct {
	log   *logger.Logger
	store *storage.Store
}

func NewTrajectoryHandler(log *logger.Logger, store *storage.Store) *TrajectoryHandler {
	return &TrajectoryHandler{log: log.With("handler", "trajectory"), store: store}
}

// List returns trajectory metadata, optionally filtered by category.
func (h *TrajectoryHandler) List(c *gin.Context) {
	trajectories, err := h.store.ListTrajectories(c.Query("category"))
	if err != nil {
		h.log.Error("Failed to list trajectories", "error", err)
		respondStoreError(c, err)
		return
	}
	for i := range trajectories {
		if _, err := h.store.TrajectoryThumbnail(trajectories[i].ID); err == nil {
			trajectories[i].ThumbnailURL = fmt.Sprintf("/api/trajectories/%s/thumbnail", trajectories[i].ID)
		}
	}
	response.RespondOK(c, domain.TrajectoryListResponse{Trajectories: trajectories, Total: len(trajectories)})
}

// Upload stores a trajectory file posted as multipart form data. An optional
// category field places it in a subdirectory of the trajectories root.
func (h *TrajectoryHandler) Upload(c *gin.Context) {
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

	meta, err := h.store.SaveTrajectory(file.Filename, content, c.PostForm("category"))
	if err != nil {
		h.log.Warn("Trajectory upload rejected", "filename", file.Filename, "error", err)
		respondStoreError(c, err)
		return
	}
	if _, err := h.store.TrajectoryThumbnail(meta.ID); err == nil {
		meta.ThumbnailURL = fmt.Sprintf("/api/trajectories/%s/thumbnail", meta.ID)
	}
	h.log.Info("Trajectory uploaded", "id", meta.ID, "filename", meta.Filename, "category", meta.Category)
	response.RespondOK(c, domain.TrajectoryUploadResponse{
		Success:    true,
		Message:    fmt.Sprintf("Trajectory %s uploaded successfully", meta.Filename),
		Trajectory: &meta,
	})
}

// Download streams the raw trajectory file.
func (h *TrajectoryHandler) Download(c *gin.Context) {
	path, err := h.store.GetTrajectory(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	name := filepath.Base(path)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", assetContentType(name))
	c.File(path)
}

// Delete removes the trajectory file.
func (h *TrajectoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteTrajectory(id); err != nil {
		respondStoreError(c, err)
		return
	}
	h.log.Info("Trajectory deleted", "id", id)
	response.RespondOK(c, gin.H{"success": true, "message": "Trajectory deleted successfully"})
}

// Thumbnail serves the cached preview animation for the trajectory.
func (h *TrajectoryHandler) Thumbnail(c *gin.Context) {
	path, err := h.store.TrajectoryThumbnail(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Type", assetContentType(path))
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
