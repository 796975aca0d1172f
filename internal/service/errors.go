package service

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrExtractionNotFound = errors.New("no extracted data found for this document")

	ErrNoFile             = errors.New("no file uploaded")
	ErrInvalidContentType = errors.New("only PDF files are allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileMissing        = errors.New("file not found or inaccessible")
)
