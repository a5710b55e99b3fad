package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/services"
)

// PhotoHandler handles HTTP requests for the photo import job.
type PhotoHandler struct {
	service *services.PhotoImportService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *services.PhotoImportService) *PhotoHandler {
	return &PhotoHandler{
		service: service,
	}
}

// RegisterRoutes registers the photo import route with the Fiber app.
func (h *PhotoHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/jpa_get_photos", h.HandleImport)
}

// HandleImport triggers the import job. Failures still answer 200; the
// envelope's status field carries the outcome, and the underlying error
// message is surfaced as-is.
func (h *PhotoHandler) HandleImport(c *fiber.Ctx) error {
	total, err := h.service.ImportPhotos()
	if err != nil {
		log.Printf("Error importing photos: %v", err)
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Se importaron %d fotos", total),
	})
}
