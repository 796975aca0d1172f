package dto

import "docuflow/internal/models"

type CreateTemplateRequest struct {
	Name         string                 `json:"name" validate:"required"`
	Description  *string                `json:"description"`
	DocumentType string                 `json:"documentType" validate:"required"`
	BankName     *string                `json:"bankName"`
	Fields       []models.TemplateField `json:"fields" validate:"required"`
	UserID       *int                   `json:"userId"`
}

// UpdateTemplateRequest is a partial payload; nil fields leave the stored
// value untouched.
type UpdateTemplateRequest struct {
	Name         *string                `json:"name"`
	Description  *string                `json:"description"`
	DocumentType *string                `json:"documentType"`
	BankName     *string                `json:"bankName"`
	Fields       []models.TemplateField `json:"fields"`
	UserID       *int                   `json:"userId"`
}
