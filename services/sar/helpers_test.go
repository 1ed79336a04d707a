package sar

import (
	"fmt"
	"time"

	"sar_tracker_go/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func stringToPtr(s string) *string {
	return &s
}

type fixedReferences struct {
	caseRef      string
	regulatorRef string
}

func (f fixedReferences) CaseReference(time.Time) string      { return f.caseRef }
func (f fixedReferences) RegulatorReference(time.Time) string { return f.regulatorRef }

// pendingCase builds a case submitted on the given date with its statutory deadline set
func pendingCase(id uint, org string, submitted time.Time, requestType models.RequestType) models.SARCase {
	return models.SARCase{
		ID:                 id,
		UserID:             1,
		CaseReference:      fmt.Sprintf("SAR-202401-%08X", id),
		OrganizationName:   org,
		RequestType:        requestType,
		RequestDescription: "All personal data held about me",
		SubmissionDate:     submitted,
		SubmissionMethod:   models.SubmissionMethodEmail,
		StatutoryDeadline:  StatutoryDeadline(submitted, requestType),
		Status:             models.CaseStatusPending,
	}
}
