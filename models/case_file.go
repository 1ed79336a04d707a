package models

import (
	"time"
)

// File categories
const (
	FileCategoryRequest        = "Request"
	FileCategoryResponse       = "Response"
	FileCategoryCorrespondence = "Correspondence"
	FileCategoryEvidence       = "Evidence"
)

// CaseFile is a document attached to a SAR case
type CaseFile struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	SARCaseID uint `gorm:"not null;index" json:"sar_case_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`

	// File metadata
	StorageKey       string `gorm:"not null" json:"-"` // Not exposed in JSON for security
	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `gorm:"not null" json:"file_original_name"`
	FileSize         int64  `gorm:"not null" json:"file_size"`
	FileType         string `json:"file_type"`
	MimeType         string `json:"mime_type"`

	FileCategory string  `gorm:"not null;default:Correspondence" json:"file_category"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for CaseFile model
func (CaseFile) TableName() string {
	return "case_files"
}

// IsValidFileCategory checks if the file category is known
func IsValidFileCategory(category string) bool {
	switch category {
	case FileCategoryRequest, FileCategoryResponse, FileCategoryCorrespondence, FileCategoryEvidence:
		return true
	}
	return false
}
