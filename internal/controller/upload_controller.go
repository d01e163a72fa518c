package controller

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/mathieustrosberg/restaurant-app/pkg/utils/image"
	"github.com/mathieustrosberg/restaurant-app/pkg/utils/storage"
)

type Uploader interface {
	Upload(file *multipart.FileHeader) (storage.UploadResult, error)
}

type UploadController struct {
	storage Uploader
}

func NewUploadController(storage Uploader) *UploadController {
	return &UploadController{storage: storage}
}

// Upload accepts a multipart "file" field, validates and stores it, and
// returns the public URL.
func (ctl *UploadController) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	result, err := ctl.storage.Upload(file)
	if err != nil {
		switch {
		case errors.Is(err, image.ErrTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "File too large, maximum is 5MB",
			})
		case errors.Is(err, image.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file type, use JPG, PNG or WebP",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not upload file",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
