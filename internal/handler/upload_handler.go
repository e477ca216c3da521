package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

// UploadHandler stores admin-uploaded media (testimonial photos, team photos,
// site imagery) and returns the public URL.
type UploadHandler struct {
	fileRepo    domain.FileRepository
	maxUploadMB int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(fileRepo domain.FileRepository, maxUploadMB int64) *UploadHandler {
	return &UploadHandler{
		fileRepo:    fileRepo,
		maxUploadMB: maxUploadMB,
	}
}

// Upload handles POST /v1/admin/upload
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid multipart form: " + err.Error(),
		})
	}

	files := form.File["file"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'file' field in form data",
		})
	}

	file := files[0]

	maxBytes := h.maxUploadMB * 1024 * 1024
	if file.Size > maxBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file size exceeds maximum of %dMB", h.maxUploadMB),
		})
	}

	if !isValidImageType(file) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file type, only JPEG, PNG and WebP images are allowed",
		})
	}

	fileHandle, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer fileHandle.Close()

	// Large uploads may be spooled to disk, where a single Read can come up short
	data := make([]byte, file.Size)
	if _, err := io.ReadFull(fileHandle, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	// Uploaded names are untrusted; keep only the extension
	filename := fmt.Sprintf("%s%s", ulid.Make().String(), strings.ToLower(filepath.Ext(file.Filename)))
	contentType := file.Header.Get("Content-Type")

	url, err := h.fileRepo.Upload(c.UserContext(), data, filename, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to store file: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}

// isValidImageType checks if the uploaded file is a valid image type
func isValidImageType(file *multipart.FileHeader) bool {
	switch file.Header.Get("Content-Type") {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}
