package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinqor/ats-assistant/internal/api/middleware"
	"github.com/thinqor/ats-assistant/internal/core/domain"
)

// chatUser picks the identity for a chat request. Verified token claims win
// over the user object in the body; without a token the body is trusted as
// the browser client sends it.
func chatUser(c echo.Context, body *domain.User) *domain.User {
	if user, ok := middleware.UserFromContext(c); ok {
		return user
	}
	return body
}

// ctxUser extracts the user injected by the Auth middleware and fails fast
// before any service call when it is missing.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *user, nil
}
