package handlers

import (
	"net/http"
	"strconv"

	"sar_tracker_go/services"
	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

// CreateReminder schedules a reminder, optionally tied to a case
func (h *Handler) CreateReminder(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var in sar.ReminderInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	reminder, err := h.svc.CreateReminder(c.Request().Context(), owner, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reminder)
}

// ListReminders returns open reminders; ?include_completed=true adds completed ones
func (h *Handler) ListReminders(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	filter := services.ReminderFilter{IncludeCompleted: c.QueryParam("include_completed") == "true"}
	if raw := c.QueryParam("sar_case_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return respondError(c, &sar.ValidationError{Field: "sar_case_id", Message: "must be a case id"})
		}
		caseID := uint(id)
		filter.SARCaseID = &caseID
	}

	reminders, err := h.svc.ListReminders(c.Request().Context(), owner, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reminders)
}

// CompleteReminder marks a reminder done
func (h *Handler) CompleteReminder(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	reminder, err := h.svc.CompleteReminder(c.Request().Context(), owner, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reminder)
}
