package dto

import (
	"encoding/json"

	"docuflow/internal/models"
)

type UploadDocumentResponse struct {
	Message  string          `json:"message"`
	Document models.Document `json:"document"`
	FilePath string          `json:"filePath"`
}

type ProcessDocumentRequest struct {
	TemplateID int `json:"templateId" validate:"required"`
}

type ProcessDocumentResponse struct {
	Success       bool                 `json:"success"`
	ExtractedData models.ExtractedData `json:"extractedData"`
}

type UpdateExtractedDataRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}
