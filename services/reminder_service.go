package services

import (
	"context"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

// CreateReminder stores a manual reminder, optionally tied to one of the owner's cases
func (s *TrackerService) CreateReminder(ctx context.Context, ownerID uint, in sar.ReminderInput) (*models.Reminder, error) {
	in.MapText(s.Sanitize)

	reminder, err := sar.NewReminder(in, ownerID, s.Now())
	if err != nil {
		return nil, err
	}
	if in.SARCaseID != nil {
		if _, err := s.repo.GetCase(ctx, ownerID, *in.SARCaseID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateReminder(ctx, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListReminders returns the owner's reminders, soonest first
func (s *TrackerService) ListReminders(ctx context.Context, ownerID uint, filter ReminderFilter) ([]models.Reminder, error) {
	return s.repo.ListReminders(ctx, ownerID, filter)
}

// CompleteReminder marks a reminder as done; completing it twice is a no-op
func (s *TrackerService) CompleteReminder(ctx context.Context, ownerID, id uint) (*models.Reminder, error) {
	var completed models.Reminder
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.GetReminder(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if r.IsCompleted {
			completed = *r
			return nil
		}
		completed = sar.CompleteReminder(*r, s.Now())
		return tx.SaveReminder(ctx, &completed)
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}
