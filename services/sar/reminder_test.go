package sar

import (
	"errors"
	"testing"
	"time"

	"sar_tracker_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAt(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		target   time.Time
		offset   int
		expected time.Time
	}{
		{"Well ahead", day(2024, 1, 29), 1, day(2024, 1, 28)},
		{"Seven days ahead", day(2024, 3, 1), 7, day(2024, 2, 23)},
		{"Offset lands today, deferred", day(2024, 1, 11), 1, now.AddDate(0, 0, 1)},
		{"Target already past, deferred", day(2024, 1, 1), 1, now.AddDate(0, 0, 1)},
		{"Regulator offset already past", day(2024, 1, 15), 7, now.AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScheduleAt(tt.target, tt.offset, now)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.After(now))
		})
	}
}

func TestDeadlineReminder(t *testing.T) {
	c := pendingCase(5, "Acme", day(2024, 1, 1), models.RequestTypeOther)

	r, err := DeadlineReminder(&c, day(2024, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, "Deadline Reminder - "+c.CaseReference, r.Title)
	assert.Equal(t, "Deadline for SAR case "+c.CaseReference+" is due on 2024-01-29", r.Description)
	assert.Equal(t, day(2024, 1, 28), r.ReminderDate)
	assert.Equal(t, models.ReminderTypeDeadline, r.ReminderType)
	assert.Equal(t, c.UserID, r.UserID)
	require.NotNil(t, r.SARCaseID)
	assert.Equal(t, uint(5), *r.SARCaseID)
	assert.False(t, r.IsCompleted)

	t.Run("Custom deadline drives the reminder", func(t *testing.T) {
		c := c
		c.CustomDeadline = datePtr(day(2024, 1, 20))
		r, err := DeadlineReminder(&c, day(2024, 1, 2))
		require.NoError(t, err)
		assert.Equal(t, day(2024, 1, 19), r.ReminderDate)
	})

	t.Run("No deadline", func(t *testing.T) {
		_, err := DeadlineReminder(&models.SARCase{}, day(2024, 1, 2))
		assert.True(t, errors.Is(err, ErrConfiguration))
	})
}

func TestRegulatorReminder(t *testing.T) {
	c := pendingCase(2, "Acme", day(2024, 1, 1), models.RequestTypeOther)
	e := models.Escalation{ICOReference: "ICO-202402-0000ABCD"}

	assert.Nil(t, RegulatorReminder(&c, &e, day(2024, 2, 5)))

	e.InvestigationDeadline = datePtr(day(2024, 5, 5))
	r := RegulatorReminder(&c, &e, day(2024, 2, 5))
	require.NotNil(t, r)
	assert.Equal(t, day(2024, 4, 28), r.ReminderDate)
	assert.Equal(t, models.ReminderTypeICODeadline, r.ReminderType)
	assert.Equal(t, "ICO Investigation Deadline Reminder - "+c.CaseReference, r.Title)
	assert.Contains(t, r.Description, "ICO-202402-0000ABCD")
	assert.Contains(t, r.Description, "2024-05-05")
}

func TestNewReminder(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	weekly := models.RecurrenceWeekly
	valid := func() ReminderInput {
		return ReminderInput{
			Title:        "Chase Acme",
			Description:  "Call the DPO again",
			ReminderDate: now.Add(2 * time.Hour),
			ReminderType: models.ReminderTypeFollowUp,
		}
	}

	r, err := NewReminder(valid(), 9, now)
	require.NoError(t, err)
	assert.Equal(t, uint(9), r.UserID)
	assert.Nil(t, r.SARCaseID)
	assert.Equal(t, "Chase Acme", r.Title)

	in := valid()
	in.IsRecurring = true
	in.RecurrencePattern = &weekly
	r, err = NewReminder(in, 9, now)
	require.NoError(t, err)
	assert.True(t, r.IsRecurring)
	assert.Equal(t, models.RecurrenceWeekly, *r.RecurrencePattern)

	bad := "Hourly"
	tests := []struct {
		name   string
		mutate func(*ReminderInput)
		field  string
	}{
		{"Blank title", func(in *ReminderInput) { in.Title = "  " }, "title"},
		{"Blank description", func(in *ReminderInput) { in.Description = "" }, "description"},
		{"Date now", func(in *ReminderInput) { in.ReminderDate = now }, "reminder_date"},
		{"Date past", func(in *ReminderInput) { in.ReminderDate = now.Add(-time.Minute) }, "reminder_date"},
		{"Unknown type", func(in *ReminderInput) { in.ReminderType = "Nag" }, "reminder_type"},
		{"Unknown pattern", func(in *ReminderInput) { in.RecurrencePattern = &bad }, "recurrence_pattern"},
		{"Recurring without pattern", func(in *ReminderInput) { in.IsRecurring = true }, "recurrence_pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := NewReminder(in, 9, now)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCompleteReminder(t *testing.T) {
	first := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	r := CompleteReminder(models.Reminder{Title: "Chase"}, first)
	assert.True(t, r.IsCompleted)
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, first, *r.CompletedAt)

	again := CompleteReminder(r, first.Add(24*time.Hour))
	assert.True(t, again.IsCompleted)
	assert.Equal(t, first, *again.CompletedAt)
}
