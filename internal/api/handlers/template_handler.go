package handlers

import (
	"docuflow/internal/dto"
	"docuflow/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	store  storage.Store
	logger *zap.Logger
}

func NewTemplateHandler(store storage.Store, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		store:  store,
		logger: logger,
	}
}

// List returns every template, most used first.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.ListTemplates(c.Context()))
}

func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "template")
	if err != nil {
		return err
	}

	template, ok := h.store.GetTemplate(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Template not found",
		})
	}
	return c.JSON(template)
}

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid template data",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid template data",
		})
	}

	template := h.store.CreateTemplate(c.Context(), storage.NewTemplate{
		Name:         req.Name,
		Description:  req.Description,
		DocumentType: req.DocumentType,
		BankName:     req.BankName,
		Fields:       req.Fields,
		UserID:       req.UserID,
	})
	return c.Status(fiber.StatusCreated).JSON(template)
}

// Update merges the provided fields into the stored template.
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "template")
	if err != nil {
		return err
	}

	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid template data",
		})
	}

	template, ok := h.store.UpdateTemplate(c.Context(), id, storage.TemplateUpdate{
		Name:         req.Name,
		Description:  req.Description,
		DocumentType: req.DocumentType,
		BankName:     req.BankName,
		Fields:       req.Fields,
		UserID:       req.UserID,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Template not found",
		})
	}
	return c.JSON(template)
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "template")
	if err != nil {
		return err
	}

	if !h.store.DeleteTemplate(c.Context(), id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Template not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
