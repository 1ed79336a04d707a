package models

import (
	"time"
)

// ReminderType tags what a reminder is about
type ReminderType string

const (
	ReminderTypeDeadline    ReminderType = "Deadline"
	ReminderTypeFollowUp    ReminderType = "Follow-up"
	ReminderTypeICODeadline ReminderType = "ICO Deadline"
	ReminderTypeCustom      ReminderType = "Custom"
)

// Recurrence patterns. Only the tag is stored; occurrences are never expanded.
const (
	RecurrenceDaily   = "Daily"
	RecurrenceWeekly  = "Weekly"
	RecurrenceMonthly = "Monthly"
)

// Reminder is a scheduled notification, optionally tied to a SAR case
type Reminder struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint  `gorm:"not null;index:idx_reminder_owner_date" json:"user_id"`
	SARCaseID *uint `gorm:"index" json:"sar_case_id,omitempty"`

	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	ReminderDate time.Time    `gorm:"not null;index:idx_reminder_owner_date" json:"reminder_date"`
	ReminderType ReminderType `gorm:"not null" json:"reminder_type"`

	IsRecurring       bool    `gorm:"not null;default:false" json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern,omitempty"`

	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName specifies the table name for Reminder model
func (Reminder) TableName() string {
	return "reminders"
}

// IsValidReminderType checks if the reminder type is known
func IsValidReminderType(t ReminderType) bool {
	switch t {
	case ReminderTypeDeadline, ReminderTypeFollowUp, ReminderTypeICODeadline, ReminderTypeCustom:
		return true
	}
	return false
}

// IsValidRecurrencePattern checks if the recurrence tag is known
func IsValidRecurrencePattern(pattern string) bool {
	return pattern == RecurrenceDaily || pattern == RecurrenceWeekly || pattern == RecurrenceMonthly
}
