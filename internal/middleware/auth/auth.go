package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/furnishing_catalog/internal/logging"
	"github.com/Skotchmaster/furnishing_catalog/internal/tokens"
)

const adminKey = "admin"

// RequireAdmin accepts "Authorization: Bearer <token>" signed with secret and
// stores the admin claims on the echo context.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	jwtMW := echojwt.WithConfig(echojwt.Config{
		ContextKey:  adminKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.AdminClaimsFromToken(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth")
			if strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)) == "" {
				l.Warn("missing_token", "status", http.StatusUnauthorized)
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided")
			}
			l.Warn("invalid_token", "status", http.StatusUnauthorized, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMW(withAdminLogger(next))
	}
}

func withAdminLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, ok := AdminFromContext(c); ok {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("admin_id", claims.Subject)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
		}
		return next(c)
	}
}

// AdminFromContext returns the claims set by RequireAdmin.
func AdminFromContext(c echo.Context) (*tokens.AdminClaims, bool) {
	claims, ok := c.Get(adminKey).(*tokens.AdminClaims)
	return claims, ok && claims != nil
}
