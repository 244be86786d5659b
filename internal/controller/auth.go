package controller

import (
	"net/http"

	"auction-management-api/internal/common"
	"auction-management-api/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const (
	userIdHeader   = "X-User-Id"
	userRoleHeader = "X-User-Role"

	principalContextKey = "principal"
)

// principalMiddleware attaches the principal resolved by the upstream
// authentication gateway. Credentials are never verified here; the gateway
// sets the headers on every authenticated request.
func principalMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Request().Header.Get(userIdHeader))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{"Missing or malformed user identity"})
		}

		role := c.Request().Header.Get(userRoleHeader)
		if role != common.RoleAdmin && role != common.RoleUser {
			return c.JSON(http.StatusUnauthorized, errorResponse{"Missing or unknown user role"})
		}

		c.Set(principalContextKey, entity.Principal{Id: id, Role: role})

		return next(c)
	}
}

func principalFrom(c echo.Context) entity.Principal {
	p, _ := c.Get(principalContextKey).(entity.Principal)

	return p
}
