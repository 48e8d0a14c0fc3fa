package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nilesh-dagdi/CampusMart/internal/imagehost"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5 MB

// UploadHandler forwards listing photos to the external image host.
type UploadHandler struct {
	Host *imagehost.Client
}

func NewUploadHandler(host *imagehost.Client) *UploadHandler {
	return &UploadHandler{Host: host}
}

// UploadImage - POST /api/upload
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	// Validate file type (simple check extension)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only .jpg, .jpeg, and .png files are allowed",
		})
	}

	if file.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image must be smaller than 5 MB",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	url, err := h.Host.Upload(c.Context(), filename, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
