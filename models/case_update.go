package models

import (
	"time"
)

// Case update types
const (
	UpdateTypeNote              = "Note"
	UpdateTypeCorrespondence    = "Correspondence"
	UpdateTypePhoneCall         = "Phone Call"
	UpdateTypeResponseReceived  = "Response Received"
	UpdateTypeDeadlineExtension = "Deadline Extension"
)

// CaseUpdate is an append-only log entry on a SAR case
type CaseUpdate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SARCaseID uint `gorm:"not null;index" json:"sar_case_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`

	UpdateType string `gorm:"not null" json:"update_type"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text;not null" json:"content"`

	// Correspondence tracking
	CorrespondenceDate    *time.Time `json:"correspondence_date,omitempty"`
	CorrespondenceMethod  *string    `json:"correspondence_method,omitempty"`
	CorrespondenceSummary *string    `gorm:"type:text" json:"correspondence_summary,omitempty"`

	// Phone calls
	CallDuration     *int    `json:"call_duration,omitempty"` // minutes
	CallParticipants *string `json:"call_participants,omitempty"`
	CallTranscript   *string `gorm:"type:text" json:"call_transcript,omitempty"`
}

// TableName specifies the table name for CaseUpdate model
func (CaseUpdate) TableName() string {
	return "case_updates"
}

// IsValidUpdateType checks if the update type is known
func IsValidUpdateType(updateType string) bool {
	switch updateType {
	case UpdateTypeNote, UpdateTypeCorrespondence, UpdateTypePhoneCall, UpdateTypeResponseReceived, UpdateTypeDeadlineExtension:
		return true
	}
	return false
}
