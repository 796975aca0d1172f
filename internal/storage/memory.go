package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"docuflow/internal/models"
)

// MemStore keeps every collection in process memory. State does not
// survive a restart; uploaded file bytes on disk are the only durable
// artifact of the service.
type MemStore struct {
	mu sync.RWMutex

	users           map[int]models.User
	templates       map[int]models.Template
	documents       map[int]models.Document
	extractions     map[int]models.ExtractedData
	featureRequests map[int]models.FeatureRequest

	userSeq       int
	templateSeq   int
	documentSeq   int
	extractionSeq int
	featureSeq    int
}

var _ Store = (*MemStore)(nil)

// NewMemStore builds an empty store and installs the sample bank-statement
// templates so the dashboard has non-empty state on first load.
func NewMemStore() *MemStore {
	s := &MemStore{
		users:           make(map[int]models.User),
		templates:       make(map[int]models.Template),
		documents:       make(map[int]models.Document),
		extractions:     make(map[int]models.ExtractedData),
		featureRequests: make(map[int]models.FeatureRequest),
	}
	s.seedTemplates()
	return s
}

// User operations

func (s *MemStore) CreateUser(_ context.Context, in NewUser) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userSeq++
	u := models.User{ID: s.userSeq, Username: in.Username, Password: in.Password}
	s.users[u.ID] = u
	return u
}

func (s *MemStore) GetUser(_ context.Context, id int) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// Template operations

func (s *MemStore) ListTemplates(_ context.Context) []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemStore) GetTemplate(_ context.Context, id int) (models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	return t, ok
}

func (s *MemStore) CreateTemplate(_ context.Context, in NewTemplate) models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTemplateLocked(in)
}

func (s *MemStore) createTemplateLocked(in NewTemplate) models.Template {
	s.templateSeq++
	now := time.Now()
	t := models.Template{
		ID:           s.templateSeq,
		Name:         in.Name,
		Description:  in.Description,
		DocumentType: in.DocumentType,
		BankName:     in.BankName,
		Fields:       in.Fields,
		UserID:       in.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
		UsageCount:   0,
	}
	s.templates[t.ID] = t
	return t
}

func (s *MemStore) UpdateTemplate(_ context.Context, id int, upd TemplateUpdate) (models.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return models.Template{}, false
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = upd.Description
	}
	if upd.DocumentType != nil {
		t.DocumentType = *upd.DocumentType
	}
	if upd.BankName != nil {
		t.BankName = upd.BankName
	}
	if upd.Fields != nil {
		t.Fields = upd.Fields
	}
	if upd.UserID != nil {
		t.UserID = upd.UserID
	}
	t.UpdatedAt = time.Now()
	s.templates[id] = t
	return t, true
}

func (s *MemStore) DeleteTemplate(_ context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.templates[id]
	delete(s.templates, id)
	return ok
}

func (s *MemStore) IncrementTemplateUsage(_ context.Context, id int) (models.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrementUsageLocked(id)
}

func (s *MemStore) incrementUsageLocked(id int) (models.Template, bool) {
	t, ok := s.templates[id]
	if !ok {
		return models.Template{}, false
	}
	t.UsageCount++
	t.UpdatedAt = time.Now()
	s.templates[id] = t
	return t, true
}

// Document operations

func (s *MemStore) ListDocuments(_ context.Context) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0, len(s.documents))
	for _, d := range s.documents {
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *MemStore) GetDocument(_ context.Context, id int) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[id]
	return d, ok
}

func (s *MemStore) CreateDocument(_ context.Context, in NewDocument) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documentSeq++
	d := models.Document{
		ID:               s.documentSeq,
		Name:             in.Name,
		OriginalFilename: in.OriginalFilename,
		ContentType:      in.ContentType,
		Size:             in.Size,
		StoredFilename:   in.StoredFilename,
		UploadedAt:       time.Now(),
		Processed:        false,
		UserID:           in.UserID,
		TemplateID:       in.TemplateID,
	}
	s.documents[d.ID] = d
	return d
}

func (s *MemStore) UpdateDocument(_ context.Context, id int, upd DocumentUpdate) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.documents[id]
	if !ok {
		return models.Document{}, false
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.OriginalFilename != nil {
		d.OriginalFilename = *upd.OriginalFilename
	}
	if upd.ContentType != nil {
		d.ContentType = *upd.ContentType
	}
	if upd.Size != nil {
		d.Size = *upd.Size
	}
	if upd.StoredFilename != nil {
		d.StoredFilename = *upd.StoredFilename
	}
	if upd.UserID != nil {
		d.UserID = upd.UserID
	}
	if upd.TemplateID != nil {
		d.TemplateID = upd.TemplateID
	}
	s.documents[id] = d
	return d, true
}

func (s *MemStore) DeleteDocument(_ context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.documents[id]
	delete(s.documents, id)
	return ok
}

func (s *MemStore) MarkDocumentProcessed(_ context.Context, id int) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markProcessedLocked(id)
}

func (s *MemStore) markProcessedLocked(id int) (models.Document, bool) {
	d, ok := s.documents[id]
	if !ok {
		return models.Document{}, false
	}
	d.Processed = true
	s.documents[id] = d
	return d, true
}

// Extracted data operations

func (s *MemStore) GetExtractedDataByDocument(_ context.Context, documentID int) (models.ExtractedData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Multiple extractions per document are allowed under the append
	// policy; the earliest one wins here.
	best := models.ExtractedData{}
	found := false
	for _, ed := range s.extractions {
		if ed.DocumentID != documentID {
			continue
		}
		if !found || ed.ID < best.ID {
			best = ed
			found = true
		}
	}
	return best, found
}

func (s *MemStore) GetExtractedData(_ context.Context, id int) (models.ExtractedData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ed, ok := s.extractions[id]
	return ed, ok
}

func (s *MemStore) CreateExtractedData(_ context.Context, in NewExtractedData) models.ExtractedData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createExtractedDataLocked(in)
}

func (s *MemStore) createExtractedDataLocked(in NewExtractedData) models.ExtractedData {
	s.extractionSeq++
	ed := models.ExtractedData{
		ID:          s.extractionSeq,
		DocumentID:  in.DocumentID,
		TemplateID:  in.TemplateID,
		ExtractedAt: time.Now(),
		Data:        in.Data,
		Verified:    false,
	}
	s.extractions[ed.ID] = ed
	return ed
}

func (s *MemStore) UpdateExtractedData(_ context.Context, id int, upd ExtractedDataUpdate) (models.ExtractedData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ed, ok := s.extractions[id]
	if !ok {
		return models.ExtractedData{}, false
	}
	if upd.Data != nil {
		ed.Data = upd.Data
	}
	if upd.Verified != nil {
		ed.Verified = *upd.Verified
	}
	s.extractions[id] = ed
	return ed, true
}

func (s *MemStore) VerifyExtractedData(_ context.Context, id int) (models.ExtractedData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ed, ok := s.extractions[id]
	if !ok {
		return models.ExtractedData{}, false
	}
	ed.Verified = true
	s.extractions[id] = ed
	return ed, true
}

func (s *MemStore) RecordExtraction(_ context.Context, documentID, templateID int, data json.RawMessage, policy ExtractionPolicy) (models.ExtractedData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[documentID]; !ok {
		return models.ExtractedData{}, false
	}
	if _, ok := s.templates[templateID]; !ok {
		return models.ExtractedData{}, false
	}

	if policy == PolicyReplace {
		for id, ed := range s.extractions {
			if ed.DocumentID == documentID {
				delete(s.extractions, id)
			}
		}
	}

	ed := s.createExtractedDataLocked(NewExtractedData{
		DocumentID: documentID,
		TemplateID: templateID,
		Data:       data,
	})
	s.markProcessedLocked(documentID)
	s.incrementUsageLocked(templateID)
	return ed, true
}

// Feature request operations

func (s *MemStore) ListFeatureRequests(_ context.Context) []models.FeatureRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FeatureRequest, 0, len(s.featureRequests))
	for _, fr := range s.featureRequests {
		out = append(out, fr)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *MemStore) CreateFeatureRequest(_ context.Context, in NewFeatureRequest) models.FeatureRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.featureSeq++
	fr := models.FeatureRequest{
		ID:          s.featureSeq,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      "pending",
		SubmittedAt: time.Now(),
		UserID:      in.UserID,
	}
	s.featureRequests[fr.ID] = fr
	return fr
}
