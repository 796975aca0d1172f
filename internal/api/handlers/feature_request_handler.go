package handlers

import (
	"docuflow/internal/dto"
	"docuflow/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FeatureRequestHandler struct {
	store  storage.Store
	logger *zap.Logger
}

func NewFeatureRequestHandler(store storage.Store, logger *zap.Logger) *FeatureRequestHandler {
	return &FeatureRequestHandler{
		store:  store,
		logger: logger,
	}
}

// List returns every feature request, newest first.
func (h *FeatureRequestHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.ListFeatureRequests(c.Context()))
}

func (h *FeatureRequestHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFeatureRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid feature request data",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid feature request data",
		})
	}

	fr := h.store.CreateFeatureRequest(c.Context(), storage.NewFeatureRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		UserID:      req.UserID,
	})
	return c.Status(fiber.StatusCreated).JSON(fr)
}
