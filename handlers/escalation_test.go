package handlers

import (
	"net/http"
	"testing"

	"sar_tracker_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscalationHandlers(t *testing.T) {
	f := setupAPI(t)
	c := f.createCase(t, "Globex", "2023-10-01")

	rec := f.request(http.MethodPost, caseURL(c.ID, "/escalations"), &f.owner, map[string]interface{}{
		"escalation_reason":          "No response after the statutory deadline",
		"ico_investigation_deadline": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var escalation models.Escalation
	decode(t, rec, &escalation)
	assert.Regexp(t, `^ICO-202401-[0-9A-F]{8}$`, escalation.ICOReference)
	assert.Equal(t, models.EscalationStatusSubmitted, escalation.Status)
	assert.Equal(t, models.EscalationMethodOnlineForm, escalation.EscalationMethod)

	rec = f.request(http.MethodGet, caseURL(c.ID, ""), &f.owner, nil)
	var got models.SARCase
	decode(t, rec, &got)
	assert.Equal(t, models.CaseStatusEscalated, got.Status)

	var reminders int64
	require.NoError(t, f.db.Model(&models.Reminder{}).
		Where("sar_case_id = ? AND reminder_type = ?", c.ID, models.ReminderTypeICODeadline).
		Count(&reminders).Error)
	assert.EqualValues(t, 1, reminders)

	t.Run("List", func(t *testing.T) {
		rec := f.request(http.MethodGet, "/api/escalations", &f.owner, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var escalations []models.Escalation
		decode(t, rec, &escalations)
		assert.Len(t, escalations, 1)

		rec = f.request(http.MethodGet, "/api/escalations", &f.other, nil)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Advance", func(t *testing.T) {
		rec := f.request(http.MethodPut, "/api/escalations/"+itoa(escalation.ID), &f.owner, map[string]interface{}{
			"status":                    "Under Investigation",
			"ico_investigation_started": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated models.Escalation
		decode(t, rec, &updated)
		assert.Equal(t, models.EscalationStatusUnderInvestigation, updated.Status)
		require.NotNil(t, updated.InvestigationDate)

		rec = f.request(http.MethodPut, "/api/escalations/"+itoa(escalation.ID), &f.owner, map[string]interface{}{
			"status": "Submitted",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ShortReason", func(t *testing.T) {
		rec := f.request(http.MethodPost, caseURL(c.ID, "/escalations"), &f.owner, map[string]interface{}{
			"escalation_reason": "late",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "escalation_reason")
	})

	t.Run("DuplicateReference", func(t *testing.T) {
		rec := f.request(http.MethodPost, caseURL(c.ID, "/escalations"), &f.owner, map[string]interface{}{
			"escalation_reason": "Second complaint about the same request",
			"ico_reference":     escalation.ICOReference,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ico_reference")
	})

	t.Run("ForeignCase", func(t *testing.T) {
		rec := f.request(http.MethodPost, caseURL(c.ID, "/escalations"), &f.other, map[string]interface{}{
			"escalation_reason": "No response after the statutory deadline",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
