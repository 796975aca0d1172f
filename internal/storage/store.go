package storage

import (
	"context"
	"encoding/json"

	"docuflow/internal/models"
)

// ExtractionPolicy controls what happens to prior extractions when a
// document is processed again.
type ExtractionPolicy string

const (
	// PolicyAppend keeps prior extractions; each processing run adds a row.
	PolicyAppend ExtractionPolicy = "append"
	// PolicyReplace removes prior extractions for the document first.
	PolicyReplace ExtractionPolicy = "replace"
)

// TemplateUpdate carries a partial template change. Nil fields are left
// untouched.
type TemplateUpdate struct {
	Name         *string
	Description  *string
	DocumentType *string
	BankName     *string
	Fields       []models.TemplateField
	UserID       *int
}

// DocumentUpdate carries a partial document change. Nil fields are left
// untouched. ID, uploadedAt and processed are not reachable through this
// path.
type DocumentUpdate struct {
	Name             *string
	OriginalFilename *string
	ContentType      *string
	Size             *int64
	StoredFilename   *string
	UserID           *int
	TemplateID       *int
}

// ExtractedDataUpdate carries a partial extraction change.
type ExtractedDataUpdate struct {
	Data     json.RawMessage
	Verified *bool
}

type NewUser struct {
	Username string
	Password string
}

type NewTemplate struct {
	Name         string
	Description  *string
	DocumentType string
	BankName     *string
	Fields       []models.TemplateField
	UserID       *int
}

type NewDocument struct {
	Name             string
	OriginalFilename string
	ContentType      string
	Size             int64
	StoredFilename   string
	UserID           *int
	TemplateID       *int
}

type NewExtractedData struct {
	DocumentID int
	TemplateID int
	Data       json.RawMessage
}

type NewFeatureRequest struct {
	Title       string
	Description string
	Category    string
	Priority    string
	UserID      *int
}

// Store is the entity repository behind the HTTP layer. All operations are
// synchronous; absence is reported with a false bool, never an error.
type Store interface {
	CreateUser(ctx context.Context, in NewUser) models.User
	GetUser(ctx context.Context, id int) (models.User, bool)
	GetUserByUsername(ctx context.Context, username string) (models.User, bool)

	ListTemplates(ctx context.Context) []models.Template
	GetTemplate(ctx context.Context, id int) (models.Template, bool)
	CreateTemplate(ctx context.Context, in NewTemplate) models.Template
	UpdateTemplate(ctx context.Context, id int, upd TemplateUpdate) (models.Template, bool)
	DeleteTemplate(ctx context.Context, id int) bool
	IncrementTemplateUsage(ctx context.Context, id int) (models.Template, bool)

	ListDocuments(ctx context.Context) []models.Document
	GetDocument(ctx context.Context, id int) (models.Document, bool)
	CreateDocument(ctx context.Context, in NewDocument) models.Document
	UpdateDocument(ctx context.Context, id int, upd DocumentUpdate) (models.Document, bool)
	DeleteDocument(ctx context.Context, id int) bool
	MarkDocumentProcessed(ctx context.Context, id int) (models.Document, bool)

	GetExtractedDataByDocument(ctx context.Context, documentID int) (models.ExtractedData, bool)
	GetExtractedData(ctx context.Context, id int) (models.ExtractedData, bool)
	CreateExtractedData(ctx context.Context, in NewExtractedData) models.ExtractedData
	UpdateExtractedData(ctx context.Context, id int, upd ExtractedDataUpdate) (models.ExtractedData, bool)
	VerifyExtractedData(ctx context.Context, id int) (models.ExtractedData, bool)

	// RecordExtraction performs the three processing mutations (create
	// extraction, mark document processed, bump template usage) under a
	// single lock acquisition, so no reader can observe a partial state.
	RecordExtraction(ctx context.Context, documentID, templateID int, data json.RawMessage, policy ExtractionPolicy) (models.ExtractedData, bool)

	ListFeatureRequests(ctx context.Context) []models.FeatureRequest
	CreateFeatureRequest(ctx context.Context, in NewFeatureRequest) models.FeatureRequest
}
