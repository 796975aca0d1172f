package handlers

import (
	"docuflow/internal/dto"
	"docuflow/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExtractionHandler struct {
	store  storage.Store
	logger *zap.Logger
}

func NewExtractionHandler(store storage.Store, logger *zap.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		store:  store,
		logger: logger,
	}
}

// Update replaces the data blob of an extraction, e.g. after the user edits
// fields in the review table.
func (h *ExtractionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "extracted data")
	if err != nil {
		return err
	}

	var req dto.UpdateExtractedDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	ed, ok := h.store.UpdateExtractedData(c.Context(), id, storage.ExtractedDataUpdate{
		Data: req.Data,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Extracted data not found",
		})
	}
	return c.JSON(ed)
}

// Verify marks an extraction as human-checked.
func (h *ExtractionHandler) Verify(c *fiber.Ctx) error {
	id, err := parseID(c, "extracted data")
	if err != nil {
		return err
	}

	ed, ok := h.store.VerifyExtractedData(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Extracted data not found",
		})
	}
	return c.JSON(ed)
}
