package sar

import (
	"testing"
	"time"

	"sar_tracker_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	today := day(2024, 2, 1)

	overdueStored := pendingCase(1, "Acme", day(2024, 1, 1), models.RequestTypeOther)
	overdueStored.Status = models.CaseStatusOverdue
	// Stored status lags: deadline already passed but status still Pending
	stale := pendingCase(2, "Acme", day(2024, 1, 2), models.RequestTypeOther)
	upcoming := pendingCase(3, "Beta", day(2024, 1, 20), models.RequestTypeOther)
	extended := pendingCase(4, "Beta", day(2024, 1, 1), models.RequestTypeOther)
	extended.ExtendedDeadline = datePtr(day(2024, 3, 1))
	responded := pendingCase(5, "Gamma", day(2024, 1, 1), models.RequestTypeOther)
	responded.Status = models.CaseStatusResponded
	complete := pendingCase(6, "Gamma", day(2023, 1, 1), models.RequestTypeOther)
	complete.Status = models.CaseStatusComplete
	escalated := pendingCase(7, "Gamma", day(2023, 6, 1), models.RequestTypeOther)
	escalated.Status = models.CaseStatusEscalated

	counts := DashboardSummary([]models.SARCase{overdueStored, stale, upcoming, extended, responded, complete, escalated}, today)
	assert.Equal(t, DashboardCounts{
		TotalCases:        7,
		PendingCases:      3,
		RespondedCases:    1,
		OverdueCases:      1,
		CompletedCases:    1,
		EscalatedCases:    1,
		UpcomingDeadlines: 2, // upcoming, extended
		OverdueDeadlines:  3, // overdueStored, stale, extended's statutory
	}, counts)

	assert.Equal(t, DashboardCounts{}, DashboardSummary(nil, today))
}

func TestOrganizationPerformance(t *testing.T) {
	today := day(2024, 3, 1)

	t.Run("Acme scenario", func(t *testing.T) {
		onTime := pendingCase(1, "Acme", day(2024, 1, 1), models.RequestTypeOther)
		onTime.ResponseReceived = true
		onTime.ResponseDate = datePtr(day(2024, 1, 20))
		onTime.Status = models.CaseStatusResponded
		ignored := pendingCase(2, "Acme", day(2024, 1, 1), models.RequestTypeOther)

		metrics := OrganizationPerformance([]models.SARCase{onTime, ignored}, today)
		require.Len(t, metrics, 1)
		m := metrics[0]
		assert.Equal(t, "Acme", m.OrganizationName)
		assert.Equal(t, 2, m.TotalRequests)
		assert.Equal(t, 1, m.RespondedOnTime)
		assert.Equal(t, 0, m.RespondedLate)
		assert.Equal(t, 1, m.Ignored)
		require.NotNil(t, m.ComplianceRating)
		assert.InDelta(t, 50.0, *m.ComplianceRating, 0.001)
		require.NotNil(t, m.AverageResponseDays)
		assert.InDelta(t, 19.0, *m.AverageResponseDays, 0.001)
	})

	t.Run("Late against statutory even when extended", func(t *testing.T) {
		late := pendingCase(1, "Beta", day(2024, 1, 1), models.RequestTypeOther)
		late.ExtendedDeadline = datePtr(day(2024, 3, 29))
		late.ResponseReceived = true
		late.ResponseDate = datePtr(day(2024, 2, 10))
		onDeadline := pendingCase(2, "Beta", day(2024, 1, 1), models.RequestTypeOther)
		onDeadline.ResponseReceived = true
		onDeadline.ResponseDate = datePtr(day(2024, 1, 29))
		open := pendingCase(3, "Beta", day(2024, 2, 20), models.RequestTypeOther)

		metrics := OrganizationPerformance([]models.SARCase{late, onDeadline, open}, today)
		require.Len(t, metrics, 1)
		m := metrics[0]
		assert.Equal(t, 1, m.RespondedLate)
		assert.Equal(t, 1, m.RespondedOnTime)
		assert.Equal(t, 0, m.Ignored)
		assert.InDelta(t, 100.0/3, *m.ComplianceRating, 0.001)
		assert.InDelta(t, 34.0, *m.AverageResponseDays, 0.001)
	})

	t.Run("No responses leaves average unset", func(t *testing.T) {
		c := pendingCase(1, "Gamma", day(2024, 2, 25), models.RequestTypeFOIA)
		metrics := OrganizationPerformance([]models.SARCase{c}, today)
		require.Len(t, metrics, 1)
		assert.Nil(t, metrics[0].AverageResponseDays)
		assert.InDelta(t, 0.0, *metrics[0].ComplianceRating, 0.001)
	})

	t.Run("Sorted by organization", func(t *testing.T) {
		metrics := OrganizationPerformance([]models.SARCase{
			pendingCase(1, "Zeta", day(2024, 1, 1), models.RequestTypeOther),
			pendingCase(2, "Alpha", day(2024, 1, 1), models.RequestTypeOther),
			pendingCase(3, "Mu", day(2024, 1, 1), models.RequestTypeOther),
		}, today)
		require.Len(t, metrics, 3)
		assert.Equal(t, "Alpha", metrics[0].OrganizationName)
		assert.Equal(t, "Mu", metrics[1].OrganizationName)
		assert.Equal(t, "Zeta", metrics[2].OrganizationName)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, OrganizationPerformance(nil, today))
	})
}

func TestUpcomingDeadlines(t *testing.T) {
	today := day(2024, 1, 20)

	soon := pendingCase(1, "Acme", day(2024, 1, 1), models.RequestTypeOther) // 2024-01-29
	past := pendingCase(2, "Beta", day(2023, 12, 1), models.RequestTypeOther)
	past.Status = models.CaseStatusOverdue // 2023-12-29
	far := pendingCase(3, "Gamma", day(2024, 1, 1), models.RequestTypeOther)
	far.CustomDeadline = datePtr(day(2024, 4, 1))
	sameDay := pendingCase(4, "Delta", day(2024, 1, 1), models.RequestTypeOther)
	done := pendingCase(5, "Acme", day(2024, 1, 1), models.RequestTypeOther)
	done.Status = models.CaseStatusComplete
	broken := models.SARCase{ID: 6, Status: models.CaseStatusPending}

	rows := UpcomingDeadlines([]models.SARCase{sameDay, soon, far, past, done, broken}, 30, today)
	require.Len(t, rows, 3)

	assert.Equal(t, uint(2), rows[0].SARCaseID)
	assert.True(t, rows[0].IsOverdue)
	assert.Equal(t, -22, rows[0].DaysRemaining)

	assert.Equal(t, uint(1), rows[1].SARCaseID)
	assert.Equal(t, uint(4), rows[2].SARCaseID)
	assert.Equal(t, 9, rows[1].DaysRemaining)
	assert.False(t, rows[1].IsOverdue)
	assert.Equal(t, models.DeadlineSourceStatutory, rows[1].DeadlineType)
	assert.Equal(t, day(2024, 1, 29), rows[1].DeadlineDate.Time)

	rows = UpcomingDeadlines([]models.SARCase{far}, 90, today)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DeadlineSourceCustom, rows[0].DeadlineType)
}

func TestCalendarEvents(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	caseID := uint(1)

	acme := pendingCase(1, "Acme", day(2024, 1, 1), models.RequestTypeOther) // deadline 2024-01-29
	beta := pendingCase(2, "Beta", day(2023, 12, 10), models.RequestTypeOther)
	beta.Status = models.CaseStatusComplete // deadline 2024-01-07, still shown
	reminders := []models.Reminder{
		{ID: 7, SARCaseID: &caseID, Title: "Chase", Description: "Chase Acme", ReminderDate: time.Date(2024, 1, 28, 9, 0, 0, 0, time.UTC)},
		{ID: 8, Title: "Done", ReminderDate: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC), IsCompleted: true},
		{ID: 9, Title: "Outside", ReminderDate: time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 10, Title: "Missed", ReminderDate: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	}

	events, err := CalendarEvents([]models.SARCase{acme, beta}, reminders, day(2024, 1, 1), day(2024, 1, 31), now)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"creation_1", "deadline_2", "reminder_10", "reminder_7", "deadline_1"}, ids)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].EventDate.Before(events[i-1].EventDate))
	}

	assert.Equal(t, EventTypeCaseCreation, events[0].EventType)
	assert.Equal(t, "SAR Created: "+acme.CaseReference, events[0].Title)
	assert.True(t, events[1].IsOverdue)
	assert.True(t, events[2].IsOverdue)
	assert.False(t, events[3].IsOverdue)
	assert.Equal(t, EventTypeReminder, events[3].EventType)
	assert.Equal(t, &caseID, events[3].SARCaseID)
	assert.Equal(t, EventTypeDeadline, events[4].EventType)
	assert.False(t, events[4].IsOverdue)

	t.Run("Inverted range", func(t *testing.T) {
		_, err := CalendarEvents(nil, nil, day(2024, 2, 1), day(2024, 1, 1), now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Single day range includes the whole day", func(t *testing.T) {
		events, err := CalendarEvents(nil, reminders, day(2024, 1, 28), day(2024, 1, 28), now)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "reminder_7", events[0].ID)
	})

	t.Run("Reminder placed by its own calendar date", func(t *testing.T) {
		early := []models.Reminder{{ID: 11, Title: "Early", ReminderDate: time.Date(2024, 3, 1, 0, 30, 0, 0, time.FixedZone("CEST", 2*3600))}}

		events, err := CalendarEvents(nil, early, day(2024, 3, 1), day(2024, 3, 1), now)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "reminder_11", events[0].ID)

		events, err = CalendarEvents(nil, early, day(2024, 2, 29), day(2024, 2, 29), now)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
