package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidtube/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveUpload writes the multipart file under field into dir and returns its
// path. A missing file yields "" and no error.
func saveUpload(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperr.Validation("failed to read " + field + " file")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", apperr.Validation("invalid image format for " + field + ", only jpg, jpeg, png, gif, webp are allowed")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", apperr.Internal("failed to prepare upload directory", err)
	}

	path := filepath.Join(dir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperr.Internal("failed to save upload", err)
	}
	return path, nil
}

// removeUpload deletes a temp file the blob store may not have consumed.
func removeUpload(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
