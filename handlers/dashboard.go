package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardOverview returns case and deadline counts
func (h *Handler) DashboardOverview(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	counts, err := h.svc.Dashboard(c.Request().Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// OrganizationPerformance returns per-organization compliance
func (h *Handler) OrganizationPerformance(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	metrics, err := h.svc.OrganizationPerformance(c.Request().Context(), owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}

// UpcomingDeadlines lists open cases due within ?days, the configured horizon when absent
func (h *Handler) UpcomingDeadlines(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	days, err := intQuery(c, "days", h.svc.DeadlineHorizonDays)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := h.svc.UpcomingDeadlines(c.Request().Context(), owner, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
