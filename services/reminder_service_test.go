package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminders(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()
	c := f.createCase(t, "Acme", day(2024, 1, 1))

	followUp := sar.ReminderInput{
		SARCaseID:    &c.ID,
		Title:        "Chase Acme",
		Description:  "Phone the DPO",
		ReminderDate: f.clock.now.Add(48 * time.Hour),
		ReminderType: models.ReminderTypeFollowUp,
	}
	created, err := f.svc.CreateReminder(ctx, f.owner.ID, followUp)
	require.NoError(t, err)
	assert.False(t, created.IsCompleted)

	t.Run("Past date is rejected", func(t *testing.T) {
		in := followUp
		in.ReminderDate = f.clock.now.Add(-time.Hour)
		_, err := f.svc.CreateReminder(ctx, f.owner.ID, in)
		assert.True(t, errors.Is(err, sar.ErrValidation))
	})

	t.Run("Another owner's case is not found", func(t *testing.T) {
		_, err := f.svc.CreateReminder(ctx, f.other.ID, followUp)
		assert.True(t, errors.Is(err, sar.ErrNotFound))
	})

	open, err := f.svc.ListReminders(ctx, f.owner.ID, ReminderFilter{SARCaseID: &c.ID})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, created.ID, open[0].ID)

	completed, err := f.svc.CompleteReminder(ctx, f.owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	first := *completed.CompletedAt

	f.clock.now = f.clock.now.Add(time.Hour)
	again, err := f.svc.CompleteReminder(ctx, f.owner.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, again.CompletedAt.Equal(first))

	open, err = f.svc.ListReminders(ctx, f.owner.ID, ReminderFilter{})
	require.NoError(t, err)
	assert.Len(t, open, 1)

	all, err := f.svc.ListReminders(ctx, f.owner.ID, ReminderFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.CompleteReminder(ctx, f.other.ID, created.ID)
	assert.True(t, errors.Is(err, sar.ErrNotFound))
}
