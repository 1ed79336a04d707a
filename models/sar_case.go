package models

import (
	"time"
)

// CaseStatus is the compliance state of a SAR case
type CaseStatus string

const (
	CaseStatusPending   CaseStatus = "Pending"
	CaseStatusResponded CaseStatus = "Responded"
	CaseStatusOverdue   CaseStatus = "Overdue"
	CaseStatusComplete  CaseStatus = "Complete"
	CaseStatusEscalated CaseStatus = "Escalated"
)

// RequestType classifies the information-access request
type RequestType string

const (
	RequestTypePersonalData      RequestType = "Personal Data"
	RequestTypeSpecialCategories RequestType = "Special Categories"
	RequestTypeCriminalRecords   RequestType = "Criminal Records"
	RequestTypeFOIA              RequestType = "FOIA"
	RequestTypeOther             RequestType = "Other"
)

// Submission methods
const (
	SubmissionMethodEmail      = "Email"
	SubmissionMethodPost       = "Post"
	SubmissionMethodOnlineForm = "Online Form"
	SubmissionMethodPhone      = "Phone"
)

// DeadlineSource names which override supplied the effective deadline
type DeadlineSource string

const (
	DeadlineSourceCustom    DeadlineSource = "Custom"
	DeadlineSourceExtended  DeadlineSource = "Extended"
	DeadlineSourceStatutory DeadlineSource = "Statutory"
)

// SARCase represents a subject-access or freedom-of-information request filed against an organization
type SARCase struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner relationship
	UserID uint `gorm:"not null;index:idx_sar_owner_status;index:idx_sar_owner_org" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// Case identification
	CaseReference string `gorm:"not null;uniqueIndex" json:"case_reference"`

	// Organization contact
	OrganizationName      string  `gorm:"not null;index:idx_sar_owner_org" json:"organization_name"`
	OrganizationAddress   *string `json:"organization_address,omitempty"`
	OrganizationEmail     *string `json:"organization_email,omitempty"`
	OrganizationPhone     *string `json:"organization_phone,omitempty"`
	DataAdministratorName *string `json:"data_administrator_name,omitempty"`
	DataControllerName    *string `json:"data_controller_name,omitempty"`

	// Request details
	RequestType        RequestType `gorm:"not null" json:"request_type"`
	RequestDescription string      `gorm:"type:text" json:"request_description"`
	SubmissionDate     time.Time   `gorm:"not null;index" json:"submission_date"`
	SubmissionMethod   string      `json:"submission_method"`

	// Deadlines
	StatutoryDeadline time.Time  `gorm:"not null;index" json:"statutory_deadline"`
	ExtendedDeadline  *time.Time `json:"extended_deadline,omitempty"`
	CustomDeadline    *time.Time `json:"custom_deadline,omitempty"`

	// Status tracking
	Status           CaseStatus `gorm:"not null;default:Pending;index:idx_sar_owner_status" json:"status"`
	ResponseReceived bool       `gorm:"not null;default:false" json:"response_received"`
	ResponseDate     *time.Time `json:"response_date,omitempty"`

	// Response details
	ResponseSummary *string `gorm:"type:text" json:"response_summary,omitempty"`
	DataProvided    *bool   `json:"data_provided,omitempty"`
	DataComplete    *bool   `json:"data_complete,omitempty"`
	DataFormat      *string `json:"data_format,omitempty"`

	// Child collections, deleted with the case
	Updates     []CaseUpdate `gorm:"foreignKey:SARCaseID" json:"-"`
	Files       []CaseFile   `gorm:"foreignKey:SARCaseID" json:"-"`
	Escalations []Escalation `gorm:"foreignKey:SARCaseID" json:"-"`
	Reminders   []Reminder   `gorm:"foreignKey:SARCaseID" json:"-"`
}

// TableName specifies the table name for SARCase model
func (SARCase) TableName() string {
	return "sar_cases"
}

// IsSticky reports whether ordinary recomputation must leave the status alone
func (c *SARCase) IsSticky() bool {
	return c.Status == CaseStatusComplete || c.Status == CaseStatusEscalated
}

// IsOpen reports whether the case still awaits a response
func (c *SARCase) IsOpen() bool {
	return c.Status == CaseStatusPending || c.Status == CaseStatusOverdue
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status CaseStatus) bool {
	switch status {
	case CaseStatusPending, CaseStatusResponded, CaseStatusOverdue, CaseStatusComplete, CaseStatusEscalated:
		return true
	}
	return false
}

// IsValidRequestType checks if the request classification is known
func IsValidRequestType(t RequestType) bool {
	switch t {
	case RequestTypePersonalData, RequestTypeSpecialCategories, RequestTypeCriminalRecords, RequestTypeFOIA, RequestTypeOther:
		return true
	}
	return false
}

// IsValidSubmissionMethod checks if the submission channel is known
func IsValidSubmissionMethod(method string) bool {
	switch method {
	case SubmissionMethodEmail, SubmissionMethodPost, SubmissionMethodOnlineForm, SubmissionMethodPhone:
		return true
	}
	return false
}
