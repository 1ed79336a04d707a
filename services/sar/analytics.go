package sar

import (
	"fmt"
	"sort"
	"time"

	"sar_tracker_go/models"
)

// Calendar event types
const (
	EventTypeDeadline     = "Deadline"
	EventTypeCaseCreation = "Case Creation"
	EventTypeReminder     = "Reminder"
)

// DashboardCounts is the per-owner overview
type DashboardCounts struct {
	TotalCases     int `json:"total_cases"`
	PendingCases   int `json:"pending_cases"`
	RespondedCases int `json:"responded_cases"`
	OverdueCases   int `json:"overdue_cases"`
	CompletedCases int `json:"completed_cases"`
	EscalatedCases int `json:"escalated_cases"`
	// The two deadline counts compare deadline fields to today directly and may
	// briefly disagree with the stored status until the next recomputation.
	UpcomingDeadlines int `json:"upcoming_deadlines"`
	OverdueDeadlines  int `json:"overdue_deadlines"`
}

// DashboardSummary counts an owner's cases by stored status and by deadline position
func DashboardSummary(cases []models.SARCase, today time.Time) DashboardCounts {
	today = DateOf(today)
	var counts DashboardCounts

	for i := range cases {
		c := &cases[i]
		counts.TotalCases++
		switch c.Status {
		case models.CaseStatusPending:
			counts.PendingCases++
		case models.CaseStatusResponded:
			counts.RespondedCases++
		case models.CaseStatusOverdue:
			counts.OverdueCases++
		case models.CaseStatusComplete:
			counts.CompletedCases++
		case models.CaseStatusEscalated:
			counts.EscalatedCases++
		}

		if !c.IsOpen() {
			continue
		}
		upcoming, overdue := false, false
		for _, d := range deadlineFields(c) {
			if d.Before(today) {
				overdue = true
			} else {
				upcoming = true
			}
		}
		if upcoming {
			counts.UpcomingDeadlines++
		}
		if overdue {
			counts.OverdueDeadlines++
		}
	}

	return counts
}

// OrganizationMetrics summarises how one organization handles requests.
// Nil averages and ratings mean there was nothing to measure.
type OrganizationMetrics struct {
	OrganizationName    string   `json:"organization_name"`
	TotalRequests       int      `json:"total_sars"`
	RespondedOnTime     int      `json:"responded_on_time"`
	RespondedLate       int      `json:"responded_late"`
	Ignored             int      `json:"ignored"`
	AverageResponseDays *float64 `json:"average_response_time"`
	ComplianceRating    *float64 `json:"compliance_rating"`
}

// OrganizationPerformance groups cases by organization name. Timeliness is judged
// against the statutory deadline regardless of any extension granted.
func OrganizationPerformance(cases []models.SARCase, today time.Time) []OrganizationMetrics {
	today = DateOf(today)
	byName := make(map[string]*OrganizationMetrics)
	responseDays := make(map[string][]int)

	for i := range cases {
		c := &cases[i]
		m, ok := byName[c.OrganizationName]
		if !ok {
			m = &OrganizationMetrics{OrganizationName: c.OrganizationName}
			byName[c.OrganizationName] = m
		}
		m.TotalRequests++

		statutory := DateOf(c.StatutoryDeadline)
		if c.ResponseReceived && c.ResponseDate != nil {
			if DateOf(*c.ResponseDate).After(statutory) {
				m.RespondedLate++
			} else {
				m.RespondedOnTime++
			}
		}
		if !c.ResponseReceived && !c.StatutoryDeadline.IsZero() && statutory.Before(today) {
			m.Ignored++
		}
		if c.ResponseDate != nil {
			responseDays[c.OrganizationName] = append(responseDays[c.OrganizationName], DaysBetween(c.SubmissionDate, *c.ResponseDate))
		}
	}

	result := make([]OrganizationMetrics, 0, len(byName))
	for name, m := range byName {
		if days := responseDays[name]; len(days) > 0 {
			total := 0
			for _, d := range days {
				total += d
			}
			avg := float64(total) / float64(len(days))
			m.AverageResponseDays = &avg
		}
		if m.TotalRequests > 0 {
			rating := float64(m.RespondedOnTime) / float64(m.TotalRequests) * 100
			m.ComplianceRating = &rating
		}
		result = append(result, *m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].OrganizationName < result[j].OrganizationName
	})
	return result
}

// DeadlineRow is one entry of the upcoming-deadlines list
type DeadlineRow struct {
	SARCaseID        uint                  `json:"sar_case_id"`
	CaseReference    string                `json:"case_reference"`
	OrganizationName string                `json:"organization_name"`
	DeadlineDate     Date                  `json:"deadline_date"`
	DaysRemaining    int                   `json:"days_remaining"`
	IsOverdue        bool                  `json:"is_overdue"`
	DeadlineType     models.DeadlineSource `json:"deadline_type"`
}

// UpcomingDeadlines lists open cases whose effective deadline is within horizonDays
// of today, including those already past, earliest first. Cases without a
// resolvable deadline are skipped.
func UpcomingDeadlines(cases []models.SARCase, horizonDays int, today time.Time) []DeadlineRow {
	rows := make([]DeadlineRow, 0)
	for i := range cases {
		c := &cases[i]
		if !c.IsOpen() {
			continue
		}
		deadline, source, err := EffectiveDeadline(c)
		if err != nil {
			continue
		}
		remaining := DaysBetween(today, deadline)
		if remaining > horizonDays {
			continue
		}
		rows = append(rows, DeadlineRow{
			SARCaseID:        c.ID,
			CaseReference:    c.CaseReference,
			OrganizationName: c.OrganizationName,
			DeadlineDate:     NewDate(deadline),
			DaysRemaining:    remaining,
			IsOverdue:        remaining < 0,
			DeadlineType:     source,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].DeadlineDate.Equal(rows[j].DeadlineDate.Time) {
			return rows[i].DeadlineDate.Before(rows[j].DeadlineDate.Time)
		}
		return rows[i].SARCaseID < rows[j].SARCaseID
	})
	return rows
}

// CalendarEvent is the unified shape of deadlines, case creations and reminders
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventType   string    `json:"event_type"`
	SARCaseID   *uint     `json:"sar_case_id,omitempty"`
	IsOverdue   bool      `json:"is_overdue"`
}

// CalendarEvents merges case deadlines, case submissions and open reminders that
// fall within [start, end] (whole days) into one list sorted by event date.
// IDs are prefixed by source so they never collide.
func CalendarEvents(cases []models.SARCase, reminders []models.Reminder, start, end, now time.Time) ([]CalendarEvent, error) {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil, invalid("end", "must not be before start")
	}
	endExclusive := end.AddDate(0, 0, 1)
	today := DateOf(now)
	inRange := func(d time.Time) bool {
		return !d.Before(start) && d.Before(endExclusive)
	}

	events := make([]CalendarEvent, 0)
	for i := range cases {
		c := &cases[i]
		caseID := c.ID

		if deadline, source, err := EffectiveDeadline(c); err == nil && inRange(deadline) {
			events = append(events, CalendarEvent{
				ID:          fmt.Sprintf("deadline_%d", c.ID),
				Title:       fmt.Sprintf("Deadline: %s", c.CaseReference),
				Description: fmt.Sprintf("%s deadline for %s", source, c.OrganizationName),
				EventDate:   deadline,
				EventType:   EventTypeDeadline,
				SARCaseID:   &caseID,
				IsOverdue:   deadline.Before(today),
			})
		}

		submitted := DateOf(c.SubmissionDate)
		if inRange(submitted) {
			events = append(events, CalendarEvent{
				ID:          fmt.Sprintf("creation_%d", c.ID),
				Title:       fmt.Sprintf("SAR Created: %s", c.CaseReference),
				Description: fmt.Sprintf("SAR case submitted for %s", c.OrganizationName),
				EventDate:   submitted,
				EventType:   EventTypeCaseCreation,
				SARCaseID:   &caseID,
			})
		}
	}

	for i := range reminders {
		r := &reminders[i]
		if r.IsCompleted || !inRange(DateOf(r.ReminderDate)) {
			continue
		}
		events = append(events, CalendarEvent{
			ID:          fmt.Sprintf("reminder_%d", r.ID),
			Title:       fmt.Sprintf("Reminder: %s", r.Title),
			Description: r.Description,
			EventDate:   r.ReminderDate,
			EventType:   EventTypeReminder,
			SARCaseID:   r.SARCaseID,
			IsOverdue:   r.ReminderDate.Before(now),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}
