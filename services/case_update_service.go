package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

// CaseUpdateEntryInput is a note, call or piece of correspondence logged on a case
type CaseUpdateEntryInput struct {
	UpdateType            string     `json:"update_type"`
	Title                 string     `json:"title"`
	Content               string     `json:"content"`
	CorrespondenceDate    *time.Time `json:"correspondence_date,omitempty"`
	CorrespondenceMethod  *string    `json:"correspondence_method,omitempty"`
	CorrespondenceSummary *string    `json:"correspondence_summary,omitempty"`
	CallDuration          *int       `json:"call_duration,omitempty"`
	CallParticipants      *string    `json:"call_participants,omitempty"`
	CallTranscript        *string    `json:"call_transcript,omitempty"`
}

func (in *CaseUpdateEntryInput) sanitize(fn func(string) string) {
	in.Title = fn(in.Title)
	in.Content = fn(in.Content)
	for _, s := range []**string{&in.CorrespondenceMethod, &in.CorrespondenceSummary, &in.CallParticipants, &in.CallTranscript} {
		if *s != nil {
			v := fn(**s)
			*s = &v
		}
	}
}

// Validate checks the entry fields
func (in *CaseUpdateEntryInput) Validate() error {
	if !models.IsValidUpdateType(in.UpdateType) {
		return &sar.ValidationError{Field: "update_type", Message: fmt.Sprintf("unknown update type %q", in.UpdateType)}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		return &sar.ValidationError{Field: "title", Message: "must be between 1 and 200 characters"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return &sar.ValidationError{Field: "content", Message: "is required"}
	}
	if in.CallDuration != nil && *in.CallDuration < 0 {
		return &sar.ValidationError{Field: "call_duration", Message: "must not be negative"}
	}
	return nil
}

// AddCaseUpdate appends an entry to a case's log
func (s *TrackerService) AddCaseUpdate(ctx context.Context, ownerID, caseID uint, in CaseUpdateEntryInput) (*models.CaseUpdate, error) {
	in.sanitize(s.Sanitize)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCase(ctx, ownerID, caseID); err != nil {
		return nil, err
	}

	update := models.CaseUpdate{
		SARCaseID:             caseID,
		UserID:                ownerID,
		UpdateType:            in.UpdateType,
		Title:                 strings.TrimSpace(in.Title),
		Content:               strings.TrimSpace(in.Content),
		CorrespondenceDate:    in.CorrespondenceDate,
		CorrespondenceMethod:  in.CorrespondenceMethod,
		CorrespondenceSummary: in.CorrespondenceSummary,
		CallDuration:          in.CallDuration,
		CallParticipants:      in.CallParticipants,
		CallTranscript:        in.CallTranscript,
	}
	if err := s.repo.CreateCaseUpdate(ctx, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// ListCaseUpdates returns a case's log, newest first
func (s *TrackerService) ListCaseUpdates(ctx context.Context, ownerID, caseID uint) ([]models.CaseUpdate, error) {
	if _, err := s.repo.GetCase(ctx, ownerID, caseID); err != nil {
		return nil, err
	}
	return s.repo.ListCaseUpdates(ctx, caseID)
}
