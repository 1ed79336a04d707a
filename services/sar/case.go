package sar

import (
	"strings"
	"time"
	"unicode/utf8"

	"sar_tracker_go/models"
)

// Input limits carried over from the request forms
const (
	MaxOrganizationNameLength = 200
	MinDescriptionLength      = 10
)

// CreateCaseInput holds the fields supplied when a request is first logged
type CreateCaseInput struct {
	OrganizationName      string  `json:"organization_name"`
	OrganizationAddress   *string `json:"organization_address,omitempty"`
	OrganizationEmail     *string `json:"organization_email,omitempty"`
	OrganizationPhone     *string `json:"organization_phone,omitempty"`
	DataAdministratorName *string `json:"data_administrator_name,omitempty"`
	DataControllerName    *string `json:"data_controller_name,omitempty"`

	RequestType        models.RequestType `json:"request_type"`
	RequestDescription string             `json:"request_description"`
	SubmissionDate     Date               `json:"submission_date"`
	SubmissionMethod   string             `json:"submission_method"`
	CustomDeadline     *Date              `json:"custom_deadline,omitempty"`
}

// MapText applies fn to every free-text field
func (in *CreateCaseInput) MapText(fn func(string) string) {
	in.OrganizationName = fn(in.OrganizationName)
	in.RequestDescription = fn(in.RequestDescription)
	for _, s := range []**string{
		&in.OrganizationAddress, &in.OrganizationEmail, &in.OrganizationPhone,
		&in.DataAdministratorName, &in.DataControllerName,
	} {
		if *s != nil {
			v := fn(**s)
			*s = &v
		}
	}
}

// Validate checks the input against today's date
func (in *CreateCaseInput) Validate(today time.Time) error {
	name := strings.TrimSpace(in.OrganizationName)
	if name == "" {
		return invalid("organization_name", "is required")
	}
	if utf8.RuneCountInString(name) > MaxOrganizationNameLength {
		return invalid("organization_name", "must be at most %d characters", MaxOrganizationNameLength)
	}
	if !models.IsValidRequestType(in.RequestType) {
		return invalid("request_type", "unknown classification %q", in.RequestType)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.RequestDescription)) < MinDescriptionLength {
		return invalid("request_description", "must be at least %d characters", MinDescriptionLength)
	}
	if in.SubmissionDate.IsZero() {
		return invalid("submission_date", "is required")
	}
	if DateOf(in.SubmissionDate.Time).After(DateOf(today)) {
		return invalid("submission_date", "cannot be in the future")
	}
	if !models.IsValidSubmissionMethod(in.SubmissionMethod) {
		return invalid("submission_method", "unknown method %q", in.SubmissionMethod)
	}
	if in.CustomDeadline != nil && in.CustomDeadline.Ptr().Before(DateOf(in.SubmissionDate.Time)) {
		return invalid("custom_deadline", "must not be before the submission date")
	}
	return nil
}

// NewCase builds a Pending case with its statutory deadline, then runs the
// status recomputation so a back-dated request lands in its real state.
func NewCase(in CreateCaseInput, ownerID uint, reference string, now time.Time) (models.SARCase, error) {
	if err := in.Validate(now); err != nil {
		return models.SARCase{}, err
	}

	submission := DateOf(in.SubmissionDate.Time)
	c := models.SARCase{
		UserID:                ownerID,
		CaseReference:         reference,
		OrganizationName:      strings.TrimSpace(in.OrganizationName),
		OrganizationAddress:   in.OrganizationAddress,
		OrganizationEmail:     in.OrganizationEmail,
		OrganizationPhone:     in.OrganizationPhone,
		DataAdministratorName: in.DataAdministratorName,
		DataControllerName:    in.DataControllerName,
		RequestType:           in.RequestType,
		RequestDescription:    strings.TrimSpace(in.RequestDescription),
		SubmissionDate:        submission,
		SubmissionMethod:      in.SubmissionMethod,
		StatutoryDeadline:     StatutoryDeadline(submission, in.RequestType),
		CustomDeadline:        in.CustomDeadline.Ptr(),
		Status:                models.CaseStatusPending,
	}

	return RecomputeStatus(c, now)
}
