package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

const (
	// maxReferenceAttempts bounds the generate-and-check loop for references
	maxReferenceAttempts = 10
	// DefaultDeadlineHorizonDays is the look-ahead of the upcoming-deadlines list
	DefaultDeadlineHorizonDays = 30
)

// TrackerService orchestrates the SAR core over a Repository. Every mutation runs
// in one transaction so a case, its recomputed status and any companion reminder
// are committed together.
type TrackerService struct {
	repo    Repository
	storage StorageProvider

	References          sar.ReferenceGenerator
	Now                 func() time.Time
	Sanitize            func(string) string
	DeadlineHorizonDays int
	MaxUploadSize       int64
}

// NewTrackerService wires a service with random references and the wall clock
func NewTrackerService(repo Repository, storage StorageProvider) *TrackerService {
	return &TrackerService{
		repo:                repo,
		storage:             storage,
		References:          sar.UUIDReferences{},
		Now:                 time.Now,
		Sanitize:            SanitizeText,
		DeadlineHorizonDays: DefaultDeadlineHorizonDays,
		MaxUploadSize:       MaxUploadSize,
	}
}

// GetOwner resolves an active owner
func (s *TrackerService) GetOwner(ctx context.Context, ownerID uint) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("owner %d is inactive: %w", ownerID, sar.ErrNotFound)
	}
	return user, nil
}

// uniqueReference retries generate until exists reports a free reference
func uniqueReference(ctx context.Context, generate func() string, exists func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < maxReferenceAttempts; i++ {
		reference := generate()
		taken, err := exists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !taken {
			return reference, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique reference after %d retries", maxReferenceAttempts)
}

// refresh recomputes a loaded case and persists it when the status moved
func refresh(ctx context.Context, repo Repository, c *models.SARCase, now time.Time) error {
	updated, err := sar.RecomputeStatus(*c, now)
	if err != nil {
		return err
	}
	if updated.Status == c.Status {
		return nil
	}
	log.Printf("[INFO] Case %s moved from %s to %s", c.CaseReference, c.Status, updated.Status)
	*c = updated
	return repo.SaveCase(ctx, c)
}

// refreshAll recomputes every case of an owner. Cases without a resolvable
// deadline are logged and left as stored.
func refreshAll(ctx context.Context, repo Repository, ownerID uint, now time.Time) ([]models.SARCase, error) {
	cases, err := repo.ListCases(ctx, ownerID, CaseFilter{})
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if err := refresh(ctx, repo, &cases[i], now); err != nil {
			if errors.Is(err, sar.ErrConfiguration) {
				log.Printf("[WARNING] Skipping status refresh: %v", err)
				continue
			}
			return nil, err
		}
	}
	return cases, nil
}

// CreateCase logs a new request, assigns its reference and schedules the
// reminder for its deadline
func (s *TrackerService) CreateCase(ctx context.Context, ownerID uint, in sar.CreateCaseInput) (*models.SARCase, error) {
	in.MapText(s.Sanitize)
	now := s.Now()

	var created models.SARCase
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		reference, err := uniqueReference(ctx, func() string { return s.References.CaseReference(now) }, tx.CaseReferenceExists)
		if err != nil {
			return err
		}

		c, err := sar.NewCase(in, ownerID, reference, now)
		if err != nil {
			return err
		}
		if err := tx.CreateCase(ctx, &c); err != nil {
			return err
		}

		reminder, err := sar.DeadlineReminder(&c, now)
		if err != nil {
			return err
		}
		if err := tx.CreateReminder(ctx, &reminder); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Created case %s for owner %d (deadline %s)", created.CaseReference, ownerID, created.StatutoryDeadline.Format(sar.DateLayout))
	return &created, nil
}

// GetCase loads a case and brings its status up to date
func (s *TrackerService) GetCase(ctx context.Context, ownerID, id uint) (*models.SARCase, error) {
	var c *models.SARCase
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		var err error
		if c, err = tx.GetCase(ctx, ownerID, id); err != nil {
			return err
		}
		return refresh(ctx, tx, c, s.Now())
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCases refreshes the owner's cases, then applies the filter so a status
// filter sees current statuses
func (s *TrackerService) ListCases(ctx context.Context, ownerID uint, filter CaseFilter) ([]models.SARCase, error) {
	if filter.Status != "" && !models.IsValidCaseStatus(filter.Status) {
		return nil, &sar.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", filter.Status)}
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	var cases []models.SARCase
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := refreshAll(ctx, tx, ownerID, s.Now()); err != nil {
			return err
		}
		var err error
		cases, err = tx.ListCases(ctx, ownerID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cases, nil
}

// UpdateCase applies a partial update and recomputes the status. A changed
// effective deadline on an open case gets a fresh deadline reminder.
func (s *TrackerService) UpdateCase(ctx context.Context, ownerID, id uint, in sar.CaseUpdateInput) (*models.SARCase, error) {
	in.MapText(s.Sanitize)
	now := s.Now()

	var updated models.SARCase
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		c, err := tx.GetCase(ctx, ownerID, id)
		if err != nil {
			return err
		}
		before, _, err := sar.EffectiveDeadline(c)
		if err != nil {
			return err
		}

		next, err := sar.ApplyUpdate(*c, in)
		if err != nil {
			return err
		}
		if next, err = sar.RecomputeStatus(next, now); err != nil {
			return err
		}
		if err := tx.SaveCase(ctx, &next); err != nil {
			return err
		}

		after, _, err := sar.EffectiveDeadline(&next)
		if err != nil {
			return err
		}
		if !after.Equal(before) && next.IsOpen() {
			reminder, err := sar.DeadlineReminder(&next, now)
			if err != nil {
				return err
			}
			if err := tx.CreateReminder(ctx, &reminder); err != nil {
				return err
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCase removes a case with all of its children. Stored documents are
// removed after the rows are gone; a failed object delete is only logged.
func (s *TrackerService) DeleteCase(ctx context.Context, ownerID, id uint) error {
	keys, err := s.repo.DeleteCase(ctx, ownerID, id)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Printf("[WARNING] Failed to delete stored file %s: %v", key, err)
		}
	}
	log.Printf("[INFO] Deleted case %d for owner %d (%d files)", id, ownerID, len(keys))
	return nil
}
