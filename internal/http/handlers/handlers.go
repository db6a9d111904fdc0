package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yamier22/motion-library/internal/http/response"
	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
)

// respondStoreError maps storage sentinel errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, apperrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

// assetContentType picks a Content-Type for files served straight off disk.
func assetContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return "application/xml"
	case ".stl":
		return "model/stl"
	case ".obj", ".dae", ".mesh":
		return "model/mesh"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".npy", ".npz":
		return "application/octet-stream"
	default:
		return "application/octet-stream"
	}
}
