package handlers

import (
	"net/http"

	"sar_tracker_go/services"

	"github.com/labstack/echo/v4"
)

// AddCaseUpdate logs a note, call or correspondence on a case
func (h *Handler) AddCaseUpdate(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var in services.CaseUpdateEntryInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	update, err := h.svc.AddCaseUpdate(c.Request().Context(), owner, caseID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, update)
}

// ListCaseUpdates returns a case's log, newest first
func (h *Handler) ListCaseUpdates(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	updates, err := h.svc.ListCaseUpdates(c.Request().Context(), owner, caseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updates)
}
