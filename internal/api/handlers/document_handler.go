package handlers

import (
	"context"
	"errors"
	"strconv"

	"docuflow/internal/dto"
	"docuflow/internal/service"
	"docuflow/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	store      storage.Store
	docService *service.DocumentService
	processor  *service.ProcessorService
	exporter   *service.ExportService
	logger     *zap.Logger
}

func NewDocumentHandler(
	store storage.Store,
	docService *service.DocumentService,
	processor *service.ProcessorService,
	exporter *service.ExportService,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		store:      store,
		docService: docService,
		processor:  processor,
		exporter:   exporter,
		logger:     logger,
	}
}

// List returns every document, newest upload first.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.ListDocuments(c.Context()))
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	document, ok := h.store.GetDocument(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Document not found",
		})
	}
	return c.JSON(document)
}

// Upload accepts a multipart PDF plus optional name and templateId fields.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return h.uploadError(c, service.ErrNoFile)
	}

	var templateID *int
	if raw := c.FormValue("templateId"); raw != "" && raw != "none" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid template ID",
			})
		}
		templateID = &id
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to open file",
		})
	}
	defer src.Close()

	result, err := h.docService.Upload(c.Context(), src, service.UploadInput{
		OriginalFilename: file.Filename,
		ContentType:      file.Header.Get("Content-Type"),
		Size:             file.Size,
		Name:             c.FormValue("name"),
		TemplateID:       templateID,
	})
	if err != nil {
		return h.uploadError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadDocumentResponse{
		Message:  "File uploaded successfully",
		Document: result.Document,
		FilePath: result.FilePath,
	})
}

func (h *DocumentHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
		})
	case errors.Is(err, service.ErrInvalidContentType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only PDF files are allowed",
		})
	case errors.Is(err, service.ErrFileTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File exceeds the maximum allowed size",
		})
	default:
		h.logger.Error("Failed to upload document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to upload document",
		})
	}
}

// ServeFile streams the stored bytes back with the original content type.
func (h *DocumentHandler) ServeFile(c *fiber.Ctx) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	doc, f, err := h.docService.OpenFile(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Document not found",
			})
		case errors.Is(err, service.ErrFileMissing):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "File not found or inaccessible",
			})
		default:
			h.logger.Error("Failed to serve document file", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch document file",
			})
		}
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+doc.OriginalFilename+`"`)
	return c.SendStream(f)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	if err := h.docService.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Document not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Process runs the stub extraction for the document with the given template.
func (h *DocumentHandler) Process(c *fiber.Ctx) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	var req dto.ProcessDocumentRequest
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

	ed, err := h.processor.Process(c.Context(), id, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Document not found",
			})
		case errors.Is(err, service.ErrTemplateNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Template not found",
			})
		default:
			h.logger.Error("Failed to process document", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to process document",
			})
		}
	}

	return c.JSON(dto.ProcessDocumentResponse{Success: true, ExtractedData: ed})
}

// GetData returns the extraction associated with the document.
func (h *DocumentHandler) GetData(c *fiber.Ctx) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	if _, ok := h.store.GetDocument(c.Context(), id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Document not found",
		})
	}

	ed, ok := h.store.GetExtractedDataByDocument(c.Context(), id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No extracted data found for this document",
		})
	}
	return c.JSON(ed)
}

func (h *DocumentHandler) ExportCSV(c *fiber.Ctx) error {
	return h.export(c, h.exporter.ExportCSV, "text/csv")
}

func (h *DocumentHandler) ExportExcel(c *fiber.Ctx) error {
	return h.export(c, h.exporter.ExportXLSX,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *DocumentHandler) export(
	c *fiber.Ctx,
	fn func(ctx context.Context, documentID int) (service.Export, error),
	contentType string,
) error {
	id, err := parseID(c, "document")
	if err != nil {
		return err
	}

	export, err := fn(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Document not found",
			})
		case errors.Is(err, service.ErrExtractionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No extracted data found for this document",
			})
		default:
			h.logger.Error("Failed to export data", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to export data",
			})
		}
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.Send(export.Content)
}
