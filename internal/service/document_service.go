package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docuflow/internal/models"
	"docuflow/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const acceptedContentType = "application/pdf"

// UploadInput describes one incoming file plus its form fields.
type UploadInput struct {
	OriginalFilename string
	ContentType      string
	Size             int64
	// Name overrides the display name; empty means use the original filename.
	Name       string
	TemplateID *int
	UserID     *int
}

// UploadResult is the created entity plus the path the file can be fetched
// from afterwards.
type UploadResult struct {
	Document models.Document
	FilePath string
}

type DocumentService struct {
	store     storage.Store
	uploadDir string
	maxSize   int64
	logger    *zap.Logger
}

func NewDocumentService(store storage.Store, uploadDir string, maxSize int64, logger *zap.Logger) *DocumentService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &DocumentService{
		store:     store,
		uploadDir: uploadDir,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Upload validates the file, writes it to the upload directory under a
// collision-resistant generated name, and registers the Document entity.
// Validation failures happen before anything is written or stored.
func (s *DocumentService) Upload(ctx context.Context, src io.Reader, in UploadInput) (UploadResult, error) {
	if in.ContentType != acceptedContentType {
		return UploadResult{}, ErrInvalidContentType
	}
	if in.Size > s.maxSize {
		return UploadResult{}, ErrFileTooLarge
	}

	storedName := generateStoredFilename(in.OriginalFilename)
	path := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return UploadResult{}, fmt.Errorf("failed to save file: %w", err)
	}

	name := in.Name
	if name == "" {
		name = in.OriginalFilename
	}

	doc := s.store.CreateDocument(ctx, storage.NewDocument{
		Name:             name,
		OriginalFilename: in.OriginalFilename,
		ContentType:      in.ContentType,
		Size:             written,
		StoredFilename:   storedName,
		UserID:           in.UserID,
		TemplateID:       in.TemplateID,
	})

	s.logger.Info("Document uploaded",
		zap.Int("id", doc.ID),
		zap.String("storedFilename", storedName),
		zap.Int64("size", written),
	)

	return UploadResult{
		Document: doc,
		FilePath: fmt.Sprintf("/api/documents/%d/file", doc.ID),
	}, nil
}

// OpenFile resolves a document's stored file for serving. The caller owns
// closing the returned reader.
func (s *DocumentService) OpenFile(ctx context.Context, id int) (models.Document, io.ReadCloser, error) {
	doc, ok := s.store.GetDocument(ctx, id)
	if !ok {
		return models.Document{}, nil, ErrDocumentNotFound
	}
	if doc.StoredFilename == "" {
		return models.Document{}, nil, ErrFileMissing
	}

	f, err := os.Open(filepath.Join(s.uploadDir, doc.StoredFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, nil, ErrFileMissing
		}
		return models.Document{}, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return doc, f, nil
}

// Delete removes the document entity. The underlying file is left on disk;
// nothing else references it and upload names never collide.
func (s *DocumentService) Delete(ctx context.Context, id int) error {
	if !s.store.DeleteDocument(ctx, id) {
		return ErrDocumentNotFound
	}
	return nil
}

// generateStoredFilename builds a name unique across concurrent uploads
// that still ends with a sanitized form of the original, so directory
// listings stay readable.
func generateStoredFilename(original string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String(), sanitizeFilename(original))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
