package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"

	"github.com/labstack/echo/v4"
)

const (
	// OwnerHeader carries the numeric id of the acting owner
	OwnerHeader = "X-Owner-ID"
	// ContextKeyOwner is the context key for the resolved owner
	ContextKeyOwner = "owner"
)

// OwnerLookup resolves an owner id to an active user
type OwnerLookup interface {
	GetOwner(ctx context.Context, ownerID uint) (*models.User, error)
}

// RequireOwner rejects requests that do not identify an active owner
func RequireOwner(lookup OwnerLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(OwnerHeader))
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+OwnerHeader+" header")
			}

			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+OwnerHeader+" header")
			}

			owner, err := lookup.GetOwner(c.Request().Context(), uint(id))
			if err != nil {
				if errors.Is(err, sar.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown owner")
				}
				return err
			}

			c.Set(ContextKeyOwner, owner)
			return next(c)
		}
	}
}

// GetCurrentOwner retrieves the owner resolved by RequireOwner
func GetCurrentOwner(c echo.Context) *models.User {
	owner, ok := c.Get(ContextKeyOwner).(*models.User)
	if !ok {
		return nil
	}
	return owner
}
