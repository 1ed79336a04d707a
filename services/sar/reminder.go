package sar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sar_tracker_go/models"
)

// Reminder offsets, in days before the target deadline
const (
	DeadlineReminderDays  = 1
	RegulatorReminderDays = 7
)

// ScheduleAt returns target minus offsetDays. When that moment is not strictly
// after now, the reminder is deferred to now plus one day instead of dropped.
func ScheduleAt(target time.Time, offsetDays int, now time.Time) time.Time {
	at := AddDays(target, -offsetDays)
	if !at.After(now) {
		return now.AddDate(0, 0, 1)
	}
	return at
}

// DeadlineReminder schedules the reminder for a case's effective deadline
func DeadlineReminder(c *models.SARCase, now time.Time) (models.Reminder, error) {
	deadline, _, err := EffectiveDeadline(c)
	if err != nil {
		return models.Reminder{}, err
	}

	caseID := c.ID
	return models.Reminder{
		UserID:       c.UserID,
		SARCaseID:    &caseID,
		Title:        fmt.Sprintf("Deadline Reminder - %s", c.CaseReference),
		Description:  fmt.Sprintf("Deadline for SAR case %s is due on %s", c.CaseReference, deadline.Format(DateLayout)),
		ReminderDate: ScheduleAt(deadline, DeadlineReminderDays, now),
		ReminderType: models.ReminderTypeDeadline,
	}, nil
}

// RegulatorReminder schedules the reminder ahead of the ICO investigation deadline.
// It returns nil when the escalation carries no investigation deadline.
func RegulatorReminder(c *models.SARCase, e *models.Escalation, now time.Time) *models.Reminder {
	if e.InvestigationDeadline == nil {
		return nil
	}

	deadline := DateOf(*e.InvestigationDeadline)
	caseID := c.ID
	return &models.Reminder{
		UserID:       c.UserID,
		SARCaseID:    &caseID,
		Title:        fmt.Sprintf("ICO Investigation Deadline Reminder - %s", c.CaseReference),
		Description:  fmt.Sprintf("ICO investigation deadline for %s (%s) is in %d days (%s)", c.CaseReference, e.ICOReference, RegulatorReminderDays, deadline.Format(DateLayout)),
		ReminderDate: ScheduleAt(deadline, RegulatorReminderDays, now),
		ReminderType: models.ReminderTypeICODeadline,
	}
}

// ReminderInput holds a manually created reminder
type ReminderInput struct {
	SARCaseID         *uint               `json:"sar_case_id,omitempty"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	ReminderDate      time.Time           `json:"reminder_date"`
	ReminderType      models.ReminderType `json:"reminder_type"`
	IsRecurring       bool                `json:"is_recurring"`
	RecurrencePattern *string             `json:"recurrence_pattern,omitempty"`
}

// MapText applies fn to every free-text field
func (in *ReminderInput) MapText(fn func(string) string) {
	in.Title = fn(in.Title)
	in.Description = fn(in.Description)
}

// NewReminder validates a manual reminder. Its date must be strictly in the future;
// the recurrence pattern is stored as a tag only.
func NewReminder(in ReminderInput, ownerID uint, now time.Time) (models.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Reminder{}, invalid("title", "is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return models.Reminder{}, invalid("title", "must be at most 200 characters")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return models.Reminder{}, invalid("description", "is required")
	}
	if !in.ReminderDate.After(now) {
		return models.Reminder{}, invalid("reminder_date", "must be in the future")
	}
	if !models.IsValidReminderType(in.ReminderType) {
		return models.Reminder{}, invalid("reminder_type", "unknown type %q", in.ReminderType)
	}
	if in.RecurrencePattern != nil && !models.IsValidRecurrencePattern(*in.RecurrencePattern) {
		return models.Reminder{}, invalid("recurrence_pattern", "unknown pattern %q", *in.RecurrencePattern)
	}
	if in.IsRecurring && in.RecurrencePattern == nil {
		return models.Reminder{}, invalid("recurrence_pattern", "is required for recurring reminders")
	}

	return models.Reminder{
		UserID:            ownerID,
		SARCaseID:         in.SARCaseID,
		Title:             title,
		Description:       description,
		ReminderDate:      in.ReminderDate,
		ReminderType:      in.ReminderType,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
	}, nil
}

// CompleteReminder marks a reminder done. Completion is one-way: a second call
// keeps the original timestamp.
func CompleteReminder(r models.Reminder, now time.Time) models.Reminder {
	if r.IsCompleted {
		return r
	}
	r.IsCompleted = true
	r.CompletedAt = &now
	return r
}
