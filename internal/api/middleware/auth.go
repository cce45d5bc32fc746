package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// ContextKeyUser is the echo context key holding the verified *domain.User.
const ContextKeyUser = "user"

// Auth requires a valid HS256 bearer token and injects the caller into the
// context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if jwtSecret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token verification is not configured")
			}
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			user, err := verify(authHeader, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// OptionalAuth verifies a bearer token when one is sent. Requests without
// an Authorization header, or any request while no secret is configured,
// pass through untouched; a header that fails verification is rejected.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if jwtSecret == "" || authHeader == "" {
				return next(c)
			}
			user, err := verify(authHeader, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user injected by Auth or OptionalAuth.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*domain.User)
	return user, ok && user != nil
}

func verify(authHeader, jwtSecret string) (*domain.User, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user := &domain.User{
		ID:       domain.ID(firstClaim(claims, "user_id", "sub", "id")),
		Role:     domain.ParseRole(claimString(claims["role"])),
		ClientID: domain.ID(claimString(claims["client_id"])),
	}
	if !user.HasIdentity() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing role")
	}
	if !user.Role.IsKnown() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token has unknown role")
	}
	if user.Role == domain.RoleClient && user.ClientID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}
	return user, nil
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v := claimString(claims[k]); v != "" {
			return v
		}
	}
	return ""
}

// claimString renders string and numeric claims; JSON numbers decode as float64.
func claimString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
