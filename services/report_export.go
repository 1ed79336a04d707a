package services

import (
	"bytes"
	"context"
	"fmt"

	"sar_tracker_go/services/sar"

	"github.com/xuri/excelize/v2"
)

// Compliance report sheet names
const (
	SheetOrganizations = "Organizations"
	SheetCases         = "Cases"
	SheetDeadlines     = "Upcoming Deadlines"
)

// ComplianceReport builds an XLSX workbook with per-organization metrics, every
// case and the upcoming deadlines of the owner
func (s *TrackerService) ComplianceReport(ctx context.Context, ownerID uint) (*bytes.Buffer, error) {
	now := s.Now()
	cases, err := s.snapshot(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	// --- Organizations Sheet ---
	f.SetSheetName("Sheet1", SheetOrganizations)
	writeHeader(f, SheetOrganizations, headerStyle, []string{
		"Organization", "Total Requests", "Responded On Time", "Responded Late",
		"Ignored", "Average Response (days)", "Compliance Rating (%)",
	})
	for i, m := range sar.OrganizationPerformance(cases, now) {
		row := i + 2
		values := []interface{}{m.OrganizationName, m.TotalRequests, m.RespondedOnTime, m.RespondedLate, m.Ignored, optionalFloat(m.AverageResponseDays), optionalFloat(m.ComplianceRating)}
		if err := writeRow(f, SheetOrganizations, row, values); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(SheetOrganizations, "A", "A", 40)
	f.SetColWidth(SheetOrganizations, "B", "G", 22)

	// --- Cases Sheet ---
	f.NewSheet(SheetCases)
	writeHeader(f, SheetCases, headerStyle, []string{
		"Reference", "Organization", "Request Type", "Submitted", "Statutory Deadline",
		"Effective Deadline", "Status", "Response Date",
	})
	for i := range cases {
		c := &cases[i]
		effective := ""
		if deadline, _, err := sar.EffectiveDeadline(c); err == nil {
			effective = deadline.Format(sar.DateLayout)
		}
		responded := ""
		if c.ResponseDate != nil {
			responded = c.ResponseDate.Format(sar.DateLayout)
		}
		values := []interface{}{
			c.CaseReference, c.OrganizationName, string(c.RequestType),
			c.SubmissionDate.Format(sar.DateLayout), c.StatutoryDeadline.Format(sar.DateLayout),
			effective, string(c.Status), responded,
		}
		if err := writeRow(f, SheetCases, i+2, values); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(SheetCases, "A", "H", 22)

	// --- Deadlines Sheet ---
	f.NewSheet(SheetDeadlines)
	writeHeader(f, SheetDeadlines, headerStyle, []string{
		"Reference", "Organization", "Deadline", "Days Remaining", "Overdue", "Deadline Type",
	})
	for i, d := range sar.UpcomingDeadlines(cases, s.DeadlineHorizonDays, now) {
		values := []interface{}{
			d.CaseReference, d.OrganizationName, d.DeadlineDate.Format(sar.DateLayout),
			d.DaysRemaining, d.IsOverdue, string(d.DeadlineType),
		}
		if err := writeRow(f, SheetDeadlines, i+2, values); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(SheetDeadlines, "A", "F", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write compliance report: %w", err)
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
