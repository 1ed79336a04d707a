package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

// EscalateCase refers a case to the ICO. The escalation, the case's move to
// Escalated and the investigation reminder are committed together.
func (s *TrackerService) EscalateCase(ctx context.Context, ownerID, caseID uint, in sar.EscalationInput) (*models.Escalation, error) {
	in.MapText(s.Sanitize)
	now := s.Now()
	if err := in.Validate(now); err != nil {
		return nil, err
	}

	var created models.Escalation
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		c, err := tx.GetCase(ctx, ownerID, caseID)
		if err != nil {
			return err
		}

		if in.ICOReference != nil {
			taken, err := tx.RegulatorReferenceExists(ctx, strings.TrimSpace(*in.ICOReference))
			if err != nil {
				return err
			}
			if taken {
				return &sar.ValidationError{Field: "ico_reference", Message: "is already in use"}
			}
		} else {
			reference, err := uniqueReference(ctx, func() string { return s.References.RegulatorReference(now) }, tx.RegulatorReferenceExists)
			if err != nil {
				return err
			}
			in.ICOReference = &reference
		}

		escalation, escalated, reminder, err := sar.Escalate(*c, in, now, s.References)
		if err != nil {
			return err
		}
		if err := tx.CreateEscalation(ctx, &escalation); err != nil {
			return err
		}
		if err := tx.SaveCase(ctx, &escalated); err != nil {
			return err
		}
		if reminder != nil {
			if err := tx.CreateReminder(ctx, reminder); err != nil {
				return err
			}
		}

		created = escalation
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Escalated case %d to the ICO as %s", caseID, created.ICOReference)
	return &created, nil
}

// ListEscalations returns the owner's escalations, most recent first
func (s *TrackerService) ListEscalations(ctx context.Context, ownerID uint) ([]models.Escalation, error) {
	return s.repo.ListEscalations(ctx, ownerID)
}

// UpdateEscalation records the ICO's progress on an escalation
func (s *TrackerService) UpdateEscalation(ctx context.Context, ownerID, id uint, in sar.EscalationUpdateInput) (*models.Escalation, error) {
	in.MapText(s.Sanitize)
	now := s.Now()

	var updated models.Escalation
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		e, err := tx.GetEscalation(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if e.Case == nil {
			return fmt.Errorf("escalation %d has no case: %w", id, sar.ErrNotFound)
		}

		next, reminder, err := sar.AdvanceEscalation(e.Case, *e, in, now)
		if err != nil {
			return err
		}
		if err := tx.SaveEscalation(ctx, &next); err != nil {
			return err
		}
		if reminder != nil {
			if err := tx.CreateReminder(ctx, reminder); err != nil {
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
