package sar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reference prefixes. The formats are user-visible and must not change.
const (
	CaseReferencePrefix      = "SAR"
	RegulatorReferencePrefix = "ICO"
)

// ReferenceGenerator produces human-readable references for new records.
// Uniqueness is still enforced by the storage layer.
type ReferenceGenerator interface {
	CaseReference(now time.Time) string
	RegulatorReference(now time.Time) string
}

// UUIDReferences builds references from a random UUID suffix
type UUIDReferences struct{}

// CaseReference returns SAR-{yyyyMM}-{8 uppercase hex chars}
func (UUIDReferences) CaseReference(now time.Time) string {
	return FormatReference(CaseReferencePrefix, now, uuid.New())
}

// RegulatorReference returns ICO-{yyyyMM}-{8 uppercase hex chars}
func (UUIDReferences) RegulatorReference(now time.Time) string {
	return FormatReference(RegulatorReferencePrefix, now, uuid.New())
}

// FormatReference renders {prefix}-{yyyyMM}-{first 8 hex chars of id, uppercased}
func FormatReference(prefix string, now time.Time, id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("200601"), strings.ToUpper(hex[:8]))
}
