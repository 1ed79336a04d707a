package sar

import (
	"strings"
	"time"
	"unicode/utf8"

	"sar_tracker_go/models"
)

// MinEscalationReasonLength is the shortest reason accepted for an ICO referral
const MinEscalationReasonLength = 10

// EscalationInput holds the details of a referral to the ICO
type EscalationInput struct {
	EscalationDate        Date    `json:"escalation_date"`
	EscalationReason      string  `json:"escalation_reason"`
	EscalationMethod      string  `json:"escalation_method"`
	ICOReference          *string `json:"ico_reference,omitempty"`
	InvestigationDeadline *Date   `json:"ico_investigation_deadline,omitempty"`
	DecisionDeadline      *Date   `json:"ico_decision_deadline,omitempty"`
}

// MapText applies fn to every free-text field
func (in *EscalationInput) MapText(fn func(string) string) {
	in.EscalationReason = fn(in.EscalationReason)
}

// Validate checks the input; a zero escalation date means today
func (in *EscalationInput) Validate(today time.Time) error {
	if utf8.RuneCountInString(strings.TrimSpace(in.EscalationReason)) < MinEscalationReasonLength {
		return invalid("escalation_reason", "must be at least %d characters", MinEscalationReasonLength)
	}
	if !in.EscalationDate.IsZero() && DateOf(in.EscalationDate.Time).After(DateOf(today)) {
		return invalid("escalation_date", "cannot be in the future")
	}
	if in.EscalationMethod != "" && !models.IsValidEscalationMethod(in.EscalationMethod) {
		return invalid("escalation_method", "unknown method %q", in.EscalationMethod)
	}
	if in.ICOReference != nil && strings.TrimSpace(*in.ICOReference) == "" {
		return invalid("ico_reference", "must not be blank when supplied")
	}
	return nil
}

// Escalate records a referral of the case to the ICO. The case is forced into
// Escalated and, when an investigation deadline is known, a reminder is scheduled
// seven days ahead of it. The escalation starts at Submitted and is never advanced here.
func Escalate(c models.SARCase, in EscalationInput, now time.Time, refs ReferenceGenerator) (models.Escalation, models.SARCase, *models.Reminder, error) {
	if err := in.Validate(now); err != nil {
		return models.Escalation{}, c, nil, err
	}

	escalationDate := DateOf(now)
	if !in.EscalationDate.IsZero() {
		escalationDate = DateOf(in.EscalationDate.Time)
	}
	method := in.EscalationMethod
	if method == "" {
		method = models.EscalationMethodOnlineForm
	}
	var reference string
	if in.ICOReference != nil {
		reference = strings.TrimSpace(*in.ICOReference)
	} else {
		reference = refs.RegulatorReference(now)
	}

	escalation := models.Escalation{
		SARCaseID:             c.ID,
		UserID:                c.UserID,
		EscalationDate:        escalationDate,
		EscalationReason:      strings.TrimSpace(in.EscalationReason),
		EscalationMethod:      method,
		ICOReference:          reference,
		InvestigationDeadline: in.InvestigationDeadline.Ptr(),
		DecisionDeadline:      in.DecisionDeadline.Ptr(),
		Status:                models.EscalationStatusSubmitted,
	}

	c.Status = models.CaseStatusEscalated

	return escalation, c, RegulatorReminder(&c, &escalation, now), nil
}

// EscalationUpdateInput is a manual update of an escalation's sub-lifecycle,
// entered as the ICO responds
type EscalationUpdateInput struct {
	Status                 Field[models.EscalationStatus] `json:"status"`
	AcknowledgmentReceived Field[bool]                    `json:"ico_acknowledgment_received"`
	AcknowledgmentDate     Field[*Date]                   `json:"ico_acknowledgment_date"`
	InvestigationStarted   Field[bool]                    `json:"ico_investigation_started"`
	InvestigationDate      Field[*Date]                   `json:"ico_investigation_date"`
	InvestigationDeadline  Field[*Date]                   `json:"ico_investigation_deadline"`
	DecisionDeadline       Field[*Date]                   `json:"ico_decision_deadline"`
	Decision               Field[*string]                 `json:"ico_decision"`
	DecisionDate           Field[*Date]                   `json:"ico_decision_date"`
	DecisionSummary        Field[*string]                 `json:"ico_decision_summary"`
}

// MapText applies fn to every free-text field
func (in *EscalationUpdateInput) MapText(fn func(string) string) {
	mapOptionalText(&in.DecisionSummary, fn)
}

// AdvanceEscalation applies a manual update. Status may only move forward through
// Submitted, Under Investigation, Decision Made, Closed, and Decision Made needs a
// recorded outcome. A new reminder is returned when the investigation deadline changes.
func AdvanceEscalation(c *models.SARCase, e models.Escalation, in EscalationUpdateInput, now time.Time) (models.Escalation, *models.Reminder, error) {
	if in.Status.Set {
		if !models.IsValidEscalationStatus(in.Status.Value) {
			return e, nil, invalid("status", "unknown status %q", in.Status.Value)
		}
		if !e.CanAdvanceTo(in.Status.Value) {
			return e, nil, invalid("status", "cannot move from %q back to %q", e.Status, in.Status.Value)
		}
	}
	if in.Decision.Set && in.Decision.Value != nil && !models.IsValidDecision(*in.Decision.Value) {
		return e, nil, invalid("ico_decision", "unknown decision %q", *in.Decision.Value)
	}

	today := DateOf(now)
	previousDeadline := e.InvestigationDeadline

	in.Status.apply(&e.Status)
	if in.AcknowledgmentReceived.Set {
		e.AcknowledgmentReceived = in.AcknowledgmentReceived.Value
		if e.AcknowledgmentReceived && e.AcknowledgmentDate == nil && !in.AcknowledgmentDate.Set {
			e.AcknowledgmentDate = &today
		}
	}
	if in.AcknowledgmentDate.Set {
		e.AcknowledgmentDate = in.AcknowledgmentDate.Value.Ptr()
	}
	if in.InvestigationStarted.Set {
		e.InvestigationStarted = in.InvestigationStarted.Value
		if e.InvestigationStarted && e.InvestigationDate == nil && !in.InvestigationDate.Set {
			e.InvestigationDate = &today
		}
	}
	if in.InvestigationDate.Set {
		e.InvestigationDate = in.InvestigationDate.Value.Ptr()
	}
	if in.InvestigationDeadline.Set {
		e.InvestigationDeadline = in.InvestigationDeadline.Value.Ptr()
	}
	if in.DecisionDeadline.Set {
		e.DecisionDeadline = in.DecisionDeadline.Value.Ptr()
	}
	in.Decision.apply(&e.Decision)
	if in.DecisionDate.Set {
		e.DecisionDate = in.DecisionDate.Value.Ptr()
	}
	in.DecisionSummary.apply(&e.DecisionSummary)

	if in.Status.Set && in.Status.Value == models.EscalationStatusDecisionMade && e.Decision == nil {
		return e, nil, invalid("ico_decision", "is required once a decision is made")
	}
	if e.Decision != nil && e.DecisionDate == nil {
		e.DecisionDate = &today
	}

	var reminder *models.Reminder
	if in.InvestigationDeadline.Set && !sameDate(previousDeadline, e.InvestigationDeadline) {
		reminder = RegulatorReminder(c, &e, now)
	}
	return e, reminder, nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return DateOf(*a).Equal(DateOf(*b))
}
