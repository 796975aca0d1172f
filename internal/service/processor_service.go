package service

import (
	"context"
	"encoding/json"

	"docuflow/internal/models"
	"docuflow/internal/storage"

	"go.uber.org/zap"
)

// sampleStatement is the fixed payload stored for every processing run.
// Real extraction against the template's field map is a separate engine
// that would sit behind ProcessorService without changing its contract.
const sampleStatement = `{
  "accountNumber": "••••••3456",
  "statementPeriod": "05/01/2023 - 05/31/2023",
  "transactions": [
    { "date": "05/02/2023", "description": "GROCERY STORE", "amount": -52.43 },
    { "date": "05/05/2023", "description": "DIRECT DEPOSIT", "amount": 1250.00 },
    { "date": "05/08/2023", "description": "ONLINE SHOPPING", "amount": -78.99 },
    { "date": "05/12/2023", "description": "TRANSFER", "amount": -200.00 },
    { "date": "05/15/2023", "description": "RESTAURANT", "amount": -42.75 }
  ]
}`

// ProcessorService simulates document-to-data extraction. It never reads
// the uploaded file's bytes.
type ProcessorService struct {
	store  storage.Store
	policy storage.ExtractionPolicy
	logger *zap.Logger
}

func NewProcessorService(store storage.Store, policy storage.ExtractionPolicy, logger *zap.Logger) *ProcessorService {
	return &ProcessorService{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Process stores the sample extraction for the document, marks the
// document processed and bumps the template's usage count, all as one
// store-level mutation.
func (s *ProcessorService) Process(ctx context.Context, documentID, templateID int) (models.ExtractedData, error) {
	if _, ok := s.store.GetDocument(ctx, documentID); !ok {
		return models.ExtractedData{}, ErrDocumentNotFound
	}
	if _, ok := s.store.GetTemplate(ctx, templateID); !ok {
		return models.ExtractedData{}, ErrTemplateNotFound
	}

	ed, ok := s.store.RecordExtraction(ctx, documentID, templateID, json.RawMessage(sampleStatement), s.policy)
	if !ok {
		// Document or template was deleted between the checks above and
		// the mutation. Re-resolve so the caller gets the right 404.
		if _, exists := s.store.GetDocument(ctx, documentID); !exists {
			return models.ExtractedData{}, ErrDocumentNotFound
		}
		return models.ExtractedData{}, ErrTemplateNotFound
	}

	s.logger.Info("Document processed",
		zap.Int("documentId", documentID),
		zap.Int("templateId", templateID),
		zap.Int("extractionId", ed.ID),
	)
	return ed, nil
}
