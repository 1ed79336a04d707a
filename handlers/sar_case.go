package handlers

import (
	"net/http"
	"strings"

	"sar_tracker_go/models"
	"sar_tracker_go/services"
	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

// CreateCase opens a new SAR case
func (h *Handler) CreateCase(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var in sar.CreateCaseInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	sarCase, err := h.svc.CreateCase(c.Request().Context(), owner, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sarCase)
}

// ListCases lists the owner's cases with optional status and organization filters
func (h *Handler) ListCases(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		return respondError(c, err)
	}
	limit, err := intQuery(c, "limit", services.DefaultListLimit)
	if err != nil {
		return respondError(c, err)
	}

	cases, err := h.svc.ListCases(c.Request().Context(), owner, services.CaseFilter{
		Status:       models.CaseStatus(c.QueryParam("status")),
		Organization: strings.TrimSpace(c.QueryParam("organization")),
		Offset:       skip,
		Limit:        limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCase returns a single case
func (h *Handler) GetCase(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	sarCase, err := h.svc.GetCase(c.Request().Context(), owner, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sarCase)
}

// UpdateCase applies a partial update; absent fields are left untouched
func (h *Handler) UpdateCase(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var in sar.CaseUpdateInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	sarCase, err := h.svc.UpdateCase(c.Request().Context(), owner, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sarCase)
}

// DeleteCase removes a case with its updates, files, escalations and reminders
func (h *Handler) DeleteCase(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteCase(c.Request().Context(), owner, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "SAR case deleted"})
}
