package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

// UploadCaseFile stores a document and records it against the case. The stored
// object is removed again if the record cannot be written.
func (s *TrackerService) UploadCaseFile(ctx context.Context, ownerID, caseID uint, file *multipart.FileHeader, category string, description *string) (*models.CaseFile, error) {
	if category == "" {
		category = models.FileCategoryCorrespondence
	}
	if !models.IsValidFileCategory(category) {
		return nil, &sar.ValidationError{Field: "file_category", Message: fmt.Sprintf("unknown category %q", category)}
	}
	if err := ValidateCaseFileUpload(file, s.MaxUploadSize); err != nil {
		return nil, err
	}
	if description != nil {
		cleaned := s.Sanitize(*description)
		description = &cleaned
	}

	if _, err := s.repo.GetCase(ctx, ownerID, caseID); err != nil {
		return nil, err
	}

	key := GenerateCaseFileKey(ownerID, caseID, file.Filename)
	result, err := s.storage.Upload(ctx, file, key)
	if err != nil {
		return nil, err
	}

	record := models.CaseFile{
		SARCaseID:        caseID,
		UserID:           ownerID,
		StorageKey:       result.Key,
		FileName:         result.FileName,
		FileOriginalName: filepath.Base(file.Filename),
		FileSize:         result.FileSize,
		FileType:         strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), "."),
		MimeType:         result.MimeType,
		FileCategory:     category,
		Description:      description,
	}
	if err := s.repo.CreateCaseFile(ctx, &record); err != nil {
		if delErr := s.storage.Delete(ctx, result.Key); delErr != nil {
			log.Printf("[WARNING] Failed to clean up stored file %s: %v", result.Key, delErr)
		}
		return nil, err
	}

	log.Printf("[INFO] Stored file %s for case %d on %s storage", record.FileName, caseID, s.storage.Name())
	return &record, nil
}

// ListCaseFiles returns the documents on a case, newest first
func (s *TrackerService) ListCaseFiles(ctx context.Context, ownerID, caseID uint) ([]models.CaseFile, error) {
	if _, err := s.repo.GetCase(ctx, ownerID, caseID); err != nil {
		return nil, err
	}
	return s.repo.ListCaseFiles(ctx, caseID)
}

// OpenCaseFile returns a file record with a reader over its content. The caller closes the reader.
func (s *TrackerService) OpenCaseFile(ctx context.Context, ownerID, caseID, fileID uint) (*models.CaseFile, io.ReadCloser, error) {
	if _, err := s.repo.GetCase(ctx, ownerID, caseID); err != nil {
		return nil, nil, err
	}
	record, err := s.repo.GetCaseFile(ctx, caseID, fileID)
	if err != nil {
		return nil, nil, err
	}

	reader, contentType, err := s.storage.Get(ctx, record.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	if record.MimeType == "" {
		record.MimeType = contentType
	}
	return record, reader, nil
}
