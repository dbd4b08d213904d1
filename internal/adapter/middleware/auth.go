package middleware

import (
	"net/http"
	"strings"

	"corebank/internal/domain/account"
	"corebank/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderAuthToken carries the opaque session token.
	HeaderAuthToken = "X-Auth-Token"

	claimsKey = "auth.claims"
)

// Auth resolves the session token into claims and stashes them in the echo
// context. Handlers downstream trust the claims; they never see the token.
func Auth(tokens token.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := strings.TrimSpace(c.Request().Header.Get(HeaderAuthToken))
			if tok == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderAuthToken})
			}
			claims, err := tokens.Validate(c.Request().Context(), tok)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireRole gates a route to one role. Runs after Auth.
func RequireRole(role account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			if claims.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func ClaimsFrom(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*token.Claims)
	return claims, ok
}
