package handlers

import (
	"net/http"
	"time"

	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

const defaultCalendarDays = 30

// CalendarEvents returns events between ?start and ?end (default today..today+30)
func (h *Handler) CalendarEvents(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	today := sar.DateOf(h.svc.Now())
	start, err := dateQuery(c, "start", today)
	if err != nil {
		return respondError(c, err)
	}
	end, err := dateQuery(c, "end", sar.AddDays(start, defaultCalendarDays))
	if err != nil {
		return respondError(c, err)
	}

	events, err := h.svc.CalendarEvents(c.Request().Context(), owner, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func dateQuery(c echo.Context, name string, def time.Time) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	t, err := sar.ParseDate(raw)
	if err != nil {
		return time.Time{}, &sar.ValidationError{Field: name, Message: err.Error()}
	}
	return t, nil
}
