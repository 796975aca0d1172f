package models

import (
	"encoding/json"
	"time"
)

// ExtractedData holds the structured result of one processing run of one
// document. Data is kept as raw JSON so the original key order survives
// round-trips through updates and exports.
type ExtractedData struct {
	ID          int             `json:"id"`
	DocumentID  int             `json:"documentId"`
	TemplateID  int             `json:"templateId"`
	ExtractedAt time.Time       `json:"extractedAt"`
	Data        json.RawMessage `json:"data"`
	Verified    bool            `json:"verified"`
}
