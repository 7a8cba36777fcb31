package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/registreehq/registree-api/internal/apperr"
	"github.com/registreehq/registree-api/internal/dto"
)

// maxUploadFiles caps a single multipart request.
const maxUploadFiles = 25

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Uploader pushes a staged local file to the object store.
type Uploader interface {
	Upload(ctx context.Context, filePath string, deleteAfter bool) (string, error)
}

type UploadHandler struct {
	uploader  Uploader
	uploadDir string
}

func NewUploadHandler(uploader Uploader, uploadDir string) *UploadHandler {
	return &UploadHandler{uploader: uploader, uploadDir: uploadDir}
}

// UploadFiles accepts up to 25 image files under the multipart key "files[]",
// stages them locally and moves them into the object store.
func (h *UploadHandler) UploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperr.BadRequest("Invalid multipart form")
	}
	files := form.File["files[]"]
	if len(files) == 0 {
		return apperr.BadRequest("No files were uploaded")
	}
	if len(files) > maxUploadFiles {
		return apperr.BadRequest("A maximum of 25 files are allowed")
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return err
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExtensions[ext] {
			return apperr.BadRequest("Only image files are allowed")
		}
		localPath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
		if err := c.SaveFile(file, localPath); err != nil {
			return err
		}
		url, err := h.uploader.Upload(c.Context(), localPath, true)
		if err != nil {
			return err
		}
		urls = append(urls, url)
	}

	return c.Status(fiber.StatusOK).JSON(dto.UploadResponse{
		Success: true,
		Code:    fiber.StatusOK,
		Message: "Files uploaded",
		Data:    urls,
	})
}
