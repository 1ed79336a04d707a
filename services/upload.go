package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"sar_tracker_go/services/sar"
)

// MaxUploadSize is the default limit for a single case document
const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// allowedExtensions lists the document formats accepted on a case
var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true, ".eml": true,
	".jpg": true, ".jpeg": true, ".png": true,
}

// ValidateCaseFileUpload checks size, extension and, for PDFs, the file signature
func ValidateCaseFileUpload(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader.Size > maxSize {
		return &sar.ValidationError{Field: "file", Message: fmt.Sprintf("file size exceeds the maximum limit of %dMB", maxSize/(1024*1024))}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return &sar.ValidationError{Field: "file", Message: "file type not allowed. Accepted formats: PDF, DOC, DOCX, TXT, EML, JPG, PNG"}
	}
	if ext != ".pdf" {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(file, header); err != nil || string(header) != "%PDF" {
		return &sar.ValidationError{Field: "file", Message: "invalid PDF file content"}
	}
	return nil
}
