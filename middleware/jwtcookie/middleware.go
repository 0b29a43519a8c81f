package jwtcookie

import (
	"net/http"

	"github.com/jotapp/jot/services/jwt"
	"github.com/labstack/echo/v4"
)

const (
	UserIDKey = "_session_user_id"
	ClaimsKey = "_session_claims"
)

// RequireSession validates the JWT session cookie and stashes the caller's
// identity in the request context. Browsers send the cookie automatically, so
// no Authorization header is involved.
func RequireSession(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(jwtService.CookieName())
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			claims, err := jwtService.ValidateToken(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

func GetUserID(c echo.Context) uint {
	if userID, ok := c.Get(UserIDKey).(uint); ok {
		return userID
	}
	return 0
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
