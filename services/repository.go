package services

import (
	"context"

	"sar_tracker_go/models"
)

// DefaultListLimit caps list queries when the caller gives no limit
const DefaultListLimit = 100

// CaseFilter narrows a case listing
type CaseFilter struct {
	Status       models.CaseStatus
	Organization string // case-insensitive substring match
	Offset       int
	Limit        int
}

// ReminderFilter narrows a reminder listing
type ReminderFilter struct {
	SARCaseID        *uint
	IncludeCompleted bool
}

// Repository is the persistence boundary of the tracker. Every lookup that takes an
// owner ID returns sar.ErrNotFound for rows that are missing or owned by someone else.
type Repository interface {
	// Transaction runs fn against a repository bound to a single transaction
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	GetUser(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UserExists(ctx context.Context, username, email string) (bool, error)

	CaseReferenceExists(ctx context.Context, reference string) (bool, error)
	CreateCase(ctx context.Context, c *models.SARCase) error
	GetCase(ctx context.Context, ownerID, id uint) (*models.SARCase, error)
	ListCases(ctx context.Context, ownerID uint, filter CaseFilter) ([]models.SARCase, error)
	SaveCase(ctx context.Context, c *models.SARCase) error
	// DeleteCase removes the case and its children, returning the storage keys of
	// the files that were attached to it
	DeleteCase(ctx context.Context, ownerID, id uint) ([]string, error)

	CreateCaseUpdate(ctx context.Context, u *models.CaseUpdate) error
	ListCaseUpdates(ctx context.Context, caseID uint) ([]models.CaseUpdate, error)

	CreateCaseFile(ctx context.Context, f *models.CaseFile) error
	GetCaseFile(ctx context.Context, caseID, id uint) (*models.CaseFile, error)
	ListCaseFiles(ctx context.Context, caseID uint) ([]models.CaseFile, error)

	RegulatorReferenceExists(ctx context.Context, reference string) (bool, error)
	CreateEscalation(ctx context.Context, e *models.Escalation) error
	GetEscalation(ctx context.Context, ownerID, id uint) (*models.Escalation, error)
	ListEscalations(ctx context.Context, ownerID uint) ([]models.Escalation, error)
	SaveEscalation(ctx context.Context, e *models.Escalation) error

	CreateReminder(ctx context.Context, r *models.Reminder) error
	GetReminder(ctx context.Context, ownerID, id uint) (*models.Reminder, error)
	ListReminders(ctx context.Context, ownerID uint, filter ReminderFilter) ([]models.Reminder, error)
	SaveReminder(ctx context.Context, r *models.Reminder) error
}
