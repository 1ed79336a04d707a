package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"sar_tracker_go/middleware"
	"sar_tracker_go/services"
	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

// Handler serves the tracker's JSON API
type Handler struct {
	svc *services.TrackerService
}

// New creates a handler over the given service
func New(svc *services.TrackerService) *Handler {
	return &Handler{svc: svc}
}

// Register mounts every tracker route. Routes under /api require an owner.
func (h *Handler) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api", append(mw, middleware.RequireOwner(h.svc))...)

	api.POST("/sar", h.CreateCase)
	api.GET("/sar", h.ListCases)
	api.GET("/sar/:id", h.GetCase)
	api.PUT("/sar/:id", h.UpdateCase)
	api.DELETE("/sar/:id", h.DeleteCase)

	api.POST("/sar/:id/updates", h.AddCaseUpdate)
	api.GET("/sar/:id/updates", h.ListCaseUpdates)

	api.POST("/sar/:id/files", h.UploadCaseFile)
	api.GET("/sar/:id/files", h.ListCaseFiles)
	api.GET("/sar/:id/files/:fileID", h.DownloadCaseFile)

	api.POST("/sar/:id/escalations", h.EscalateCase)
	api.GET("/escalations", h.ListEscalations)
	api.PUT("/escalations/:id", h.UpdateEscalation)

	api.POST("/reminders", h.CreateReminder)
	api.GET("/reminders", h.ListReminders)
	api.POST("/reminders/:id/complete", h.CompleteReminder)

	api.GET("/dashboard/overview", h.DashboardOverview)
	api.GET("/dashboard/organization-performance", h.OrganizationPerformance)
	api.GET("/dashboard/deadlines", h.UpcomingDeadlines)

	api.GET("/calendar/events", h.CalendarEvents)

	api.GET("/reports/compliance", h.ComplianceReport)
}

// Health reports liveness
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// ownerID returns the id of the owner resolved by middleware.RequireOwner
func ownerID(c echo.Context) (uint, error) {
	owner := middleware.GetCurrentOwner(c)
	if owner == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "owner required")
	}
	return owner.ID, nil
}

// idParam parses a positive numeric path parameter
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return uint(id), nil
}

// intQuery parses an optional integer query parameter
func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &sar.ValidationError{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

// bindBody decodes the request body only, leaving path and query parameters alone
func bindBody(c echo.Context, v interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// respondError maps service errors to JSON responses
func respondError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}

	var ve *sar.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, sar.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, sar.ErrConfiguration):
		log.Printf("[WARNING] %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Case has no resolvable deadline"})
	default:
		log.Printf("[WARNING] %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
