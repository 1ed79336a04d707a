package handlers

import (
	"net/http"

	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

// EscalateCase files a regulator complaint for a case
func (h *Handler) EscalateCase(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	caseID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var in sar.EscalationInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	escalation, err := h.svc.EscalateCase(c.Request().Context(), owner, caseID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, escalation)
}

// ListEscalations returns the owner's escalations
func (h *Handler) ListEscalations(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	escalations, err := h.svc.ListEscalations(c.Request().Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, escalations)
}

// UpdateEscalation records regulator progress on an escalation
func (h *Handler) UpdateEscalation(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var in sar.EscalationUpdateInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	escalation, err := h.svc.UpdateEscalation(c.Request().Context(), owner, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, escalation)
}
