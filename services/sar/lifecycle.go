package sar

import (
	"strings"
	"time"
	"unicode/utf8"

	"sar_tracker_go/models"
)

// RecomputeStatus derives the case status from its response and deadline state.
// It is the single place status changes implicitly and is idempotent for fixed
// inputs. Complete and Escalated are sticky.
func RecomputeStatus(c models.SARCase, today time.Time) (models.SARCase, error) {
	if c.IsSticky() {
		return c, nil
	}

	// A response supersedes lateness
	if c.ResponseReceived {
		if c.Status == models.CaseStatusPending || c.Status == models.CaseStatusOverdue {
			c.Status = models.CaseStatusResponded
		}
		return c, nil
	}

	if c.Status != models.CaseStatusPending {
		return c, nil
	}

	deadline, _, err := EffectiveDeadline(&c)
	if err != nil {
		return c, err
	}
	if deadline.Before(DateOf(today)) {
		c.Status = models.CaseStatusOverdue
	}
	return c, nil
}

// CaseUpdateInput is a typed partial update of a SAR case.
// Only fields marked Set are applied.
type CaseUpdateInput struct {
	OrganizationName      Field[string]  `json:"organization_name"`
	OrganizationAddress   Field[*string] `json:"organization_address"`
	OrganizationEmail     Field[*string] `json:"organization_email"`
	OrganizationPhone     Field[*string] `json:"organization_phone"`
	DataAdministratorName Field[*string] `json:"data_administrator_name"`
	DataControllerName    Field[*string] `json:"data_controller_name"`

	RequestType        Field[models.RequestType] `json:"request_type"`
	RequestDescription Field[string]             `json:"request_description"`

	ExtendedDeadline Field[*Date] `json:"extended_deadline"`
	CustomDeadline   Field[*Date] `json:"custom_deadline"`

	Status           Field[models.CaseStatus] `json:"status"`
	ResponseReceived Field[bool]              `json:"response_received"`
	ResponseDate     Field[*Date]             `json:"response_date"`
	ResponseSummary  Field[*string]           `json:"response_summary"`
	DataProvided     Field[*bool]             `json:"data_provided"`
	DataComplete     Field[*bool]             `json:"data_complete"`
	DataFormat       Field[*string]           `json:"data_format"`
}

// MapText applies fn to every free-text field, e.g. for sanitising
func (in *CaseUpdateInput) MapText(fn func(string) string) {
	mapText(&in.OrganizationName, fn)
	mapText(&in.RequestDescription, fn)
	for _, f := range []*Field[*string]{
		&in.OrganizationAddress, &in.OrganizationEmail, &in.OrganizationPhone,
		&in.DataAdministratorName, &in.DataControllerName,
		&in.ResponseSummary, &in.DataFormat,
	} {
		mapOptionalText(f, fn)
	}
}

// Validate checks the supplied fields against the case they will be applied to
func (in *CaseUpdateInput) Validate(c *models.SARCase) error {
	if in.OrganizationName.Set {
		name := strings.TrimSpace(in.OrganizationName.Value)
		if name == "" {
			return invalid("organization_name", "must not be empty")
		}
		if utf8.RuneCountInString(name) > MaxOrganizationNameLength {
			return invalid("organization_name", "must be at most %d characters", MaxOrganizationNameLength)
		}
	}
	if in.RequestType.Set && !models.IsValidRequestType(in.RequestType.Value) {
		return invalid("request_type", "unknown classification %q", in.RequestType.Value)
	}
	if in.RequestDescription.Set && utf8.RuneCountInString(strings.TrimSpace(in.RequestDescription.Value)) < MinDescriptionLength {
		return invalid("request_description", "must be at least %d characters", MinDescriptionLength)
	}
	if in.Status.Set && !models.IsValidCaseStatus(in.Status.Value) {
		return invalid("status", "unknown status %q", in.Status.Value)
	}
	submission := DateOf(c.SubmissionDate)
	if in.ExtendedDeadline.Set && in.ExtendedDeadline.Value != nil && in.ExtendedDeadline.Value.Ptr().Before(submission) {
		return invalid("extended_deadline", "must not be before the submission date")
	}
	if in.CustomDeadline.Set && in.CustomDeadline.Value != nil && in.CustomDeadline.Value.Ptr().Before(submission) {
		return invalid("custom_deadline", "must not be before the submission date")
	}
	if in.ResponseDate.Set && in.ResponseDate.Value != nil && in.ResponseDate.Value.Ptr().Before(submission) {
		return invalid("response_date", "must not be before the submission date")
	}
	return nil
}

// ApplyUpdate is the canonical routine for writing a partial update onto a case.
// The statutory deadline and case reference are never touched. Callers run
// RecomputeStatus on the result.
func ApplyUpdate(c models.SARCase, in CaseUpdateInput) (models.SARCase, error) {
	if err := in.Validate(&c); err != nil {
		return c, err
	}

	if in.OrganizationName.Set {
		c.OrganizationName = strings.TrimSpace(in.OrganizationName.Value)
	}
	in.OrganizationAddress.apply(&c.OrganizationAddress)
	in.OrganizationEmail.apply(&c.OrganizationEmail)
	in.OrganizationPhone.apply(&c.OrganizationPhone)
	in.DataAdministratorName.apply(&c.DataAdministratorName)
	in.DataControllerName.apply(&c.DataControllerName)

	in.RequestType.apply(&c.RequestType)
	if in.RequestDescription.Set {
		c.RequestDescription = strings.TrimSpace(in.RequestDescription.Value)
	}

	if in.ExtendedDeadline.Set {
		c.ExtendedDeadline = in.ExtendedDeadline.Value.Ptr()
	}
	if in.CustomDeadline.Set {
		c.CustomDeadline = in.CustomDeadline.Value.Ptr()
	}

	in.Status.apply(&c.Status)
	in.ResponseReceived.apply(&c.ResponseReceived)
	if in.ResponseDate.Set {
		c.ResponseDate = in.ResponseDate.Value.Ptr()
	}
	in.ResponseSummary.apply(&c.ResponseSummary)
	in.DataProvided.apply(&c.DataProvided)
	in.DataComplete.apply(&c.DataComplete)
	in.DataFormat.apply(&c.DataFormat)

	return c, nil
}
