package models

import (
	"time"
)

// EscalationStatus tracks the regulator's handling of an escalation
type EscalationStatus string

const (
	EscalationStatusSubmitted          EscalationStatus = "Submitted"
	EscalationStatusUnderInvestigation EscalationStatus = "Under Investigation"
	EscalationStatusDecisionMade       EscalationStatus = "Decision Made"
	EscalationStatusClosed             EscalationStatus = "Closed"
)

// Regulator decisions
const (
	DecisionUpheld          = "Upheld"
	DecisionPartiallyUpheld = "Partially Upheld"
	DecisionNotUpheld       = "Not Upheld"
)

// Escalation methods
const (
	EscalationMethodOnlineForm = "Online Form"
	EscalationMethodEmail      = "Email"
	EscalationMethodPost       = "Post"
)

// Escalation is the referral of a SAR case to the ICO
type Escalation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SARCaseID uint `gorm:"not null;index" json:"sar_case_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`

	// Escalation details
	EscalationDate   time.Time `gorm:"not null;index" json:"escalation_date"`
	EscalationReason string    `gorm:"type:text;not null" json:"escalation_reason"`
	EscalationMethod string    `json:"escalation_method"`
	ICOReference     string    `gorm:"not null;uniqueIndex" json:"ico_reference"`

	// ICO response tracking
	AcknowledgmentReceived bool       `gorm:"not null;default:false" json:"ico_acknowledgment_received"`
	AcknowledgmentDate     *time.Time `json:"ico_acknowledgment_date,omitempty"`
	InvestigationStarted   bool       `gorm:"not null;default:false" json:"ico_investigation_started"`
	InvestigationDate      *time.Time `json:"ico_investigation_date,omitempty"`

	// ICO deadlines
	InvestigationDeadline *time.Time `json:"ico_investigation_deadline,omitempty"`
	DecisionDeadline      *time.Time `json:"ico_decision_deadline,omitempty"`

	Status EscalationStatus `gorm:"not null;default:Submitted;index" json:"status"`

	// Decision details
	Decision        *string    `json:"ico_decision,omitempty"`
	DecisionDate    *time.Time `json:"ico_decision_date,omitempty"`
	DecisionSummary *string    `gorm:"type:text" json:"ico_decision_summary,omitempty"`

	Case *SARCase `gorm:"foreignKey:SARCaseID" json:"case,omitempty"`
}

// TableName specifies the table name for Escalation model
func (Escalation) TableName() string {
	return "ico_escalations"
}

// escalationOrder ranks statuses so transitions can only move forward
var escalationOrder = map[EscalationStatus]int{
	EscalationStatusSubmitted:          0,
	EscalationStatusUnderInvestigation: 1,
	EscalationStatusDecisionMade:       2,
	EscalationStatusClosed:             3,
}

// IsValidEscalationStatus checks if the status is valid
func IsValidEscalationStatus(status EscalationStatus) bool {
	_, ok := escalationOrder[status]
	return ok
}

// CanAdvanceTo reports whether the escalation may move to the given status
func (e *Escalation) CanAdvanceTo(status EscalationStatus) bool {
	from, ok := escalationOrder[e.Status]
	if !ok {
		return false
	}
	to, ok := escalationOrder[status]
	return ok && to >= from
}

// IsValidDecision checks if the regulator decision is known
func IsValidDecision(decision string) bool {
	return decision == DecisionUpheld || decision == DecisionPartiallyUpheld || decision == DecisionNotUpheld
}

// IsValidEscalationMethod checks if the escalation channel is known
func IsValidEscalationMethod(method string) bool {
	return method == EscalationMethodOnlineForm || method == EscalationMethodEmail || method == EscalationMethodPost
}
