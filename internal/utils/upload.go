package utils

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-dev/tavola/internal/types"
)

// SaveUpload stores the multipart file in field under dir and returns its
// public path. It returns "" without error when no file was sent.
func SaveUpload(ctx *gin.Context, field, dir string) (string, error) {
	file, err := ctx.FormFile(field)

	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := ctx.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return path.Join(types.UploadsPrefix, name), nil
}

// RemoveUpload deletes a file previously stored by SaveUpload.
func RemoveUpload(dir, publicPath string) {
	if publicPath == "" {
		return
	}

	name := path.Base(publicPath)

	if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to remove upload %s: %v", name, err)
	}
}
