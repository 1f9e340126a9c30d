package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/auth"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/service"
)

const actorContextKey = "actor"

// LoadActor resolves the authenticated user from the verified JWT and puts
// it on the request context for handlers. Deactivated users are rejected
// even if their token is still valid.
func LoadActor(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "UNAUTHORIZED",
				})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token claims",
					Code:  "UNAUTHORIZED",
				})
			}
			userID, err := claims.UserUUID()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid user id in token",
					Code:  "UNAUTHORIZED",
				})
			}

			user, err := users.GetUser(c.Request().Context(), userID)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "account is disabled",
					Code:  "ACCOUNT_DISABLED",
				})
			}

			c.Set(actorContextKey, user)
			return next(c)
		}
	}
}

// actorFrom returns the user loaded by LoadActor.
func actorFrom(c echo.Context) *model.User {
	user, _ := c.Get(actorContextKey).(*model.User)
	return user
}

// parseUUIDParam parses a path parameter as UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// parseRequestUUID parses a UUID carried in a request body field.
func parseRequestUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// domainError translates a service error into an echo HTTP error.
func domainError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
