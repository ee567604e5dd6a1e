package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stylehub-labs/stylehub-backend-go/models"
	"github.com/stylehub-labs/stylehub-backend-go/store"
	"github.com/stylehub-labs/stylehub-backend-go/utils"
)

const userContextKey = "user"

// Auth validates the bearer token and loads the user record into the echo
// context, so downstream handlers have the admin flag available.
func Auth(tokens *utils.TokenManager, users store.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			userID, err := tokens.Validate(tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			user, err := users.Get(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly rejects requests from non-admin users. Must run after Auth.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized as admin")
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
