package models

import "time"

// TemplateField describes one field a template expects to extract.
// Array-typed fields carry the sub-fields of each element.
type TemplateField struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Type   string          `json:"type"`
	Fields []TemplateField `json:"fields,omitempty"`
}

type Template struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	DocumentType string          `json:"documentType"`
	BankName     *string         `json:"bankName"`
	Fields       []TemplateField `json:"fields"`
	UserID       *int            `json:"userId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	UsageCount   int             `json:"usageCount"`
}
