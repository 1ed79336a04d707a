package services

import (
	"context"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OwnerInput holds the details of a new case owner
type OwnerInput struct {
	Username string
	Email    string
	FullName string
}

// Validate checks the owner fields
func (in *OwnerInput) Validate() error {
	if l := utf8.RuneCountInString(in.Username); l < 3 || l > 50 {
		return &sar.ValidationError{Field: "username", Message: "must be between 3 and 50 characters"}
	}
	if !emailPattern.MatchString(in.Email) {
		return &sar.ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	if l := utf8.RuneCountInString(in.FullName); l < 1 || l > 100 {
		return &sar.ValidationError{Field: "full_name", Message: "must be between 1 and 100 characters"}
	}
	return nil
}

// CreateOwner registers an active owner with a unique username and email
func (s *TrackerService) CreateOwner(ctx context.Context, in OwnerInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = s.Sanitize(in.FullName)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var user models.User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.UserExists(ctx, in.Username, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return &sar.ValidationError{Field: "username", Message: "username or email is already registered"}
		}

		user = models.User{Username: in.Username, Email: in.Email, FullName: in.FullName, IsActive: true}
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Created owner %s (ID %d)", user.Username, user.ID)
	return &user, nil
}
