package models

import "time"

type Document struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	OriginalFilename string    `json:"originalFilename"`
	ContentType      string    `json:"contentType"`
	Size             int64     `json:"size"`
	StoredFilename   string    `json:"storedFilename"`
	UploadedAt       time.Time `json:"uploadedAt"`
	Processed        bool      `json:"processed"`
	UserID           *int      `json:"userId"`
	TemplateID       *int      `json:"templateId"`
}
