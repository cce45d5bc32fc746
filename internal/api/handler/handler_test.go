package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thinqor/ats-assistant/internal/api/middleware"
	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubChatService struct {
	gotMessage string
	gotUser    *domain.User
	answer     *ports.ChatAnswer
	err        error
}

func (s *stubChatService) Answer(_ context.Context, message string, user *domain.User) (*ports.ChatAnswer, error) {
	s.gotMessage, s.gotUser = message, user
	if s.err != nil {
		return nil, s.err
	}
	// mirror the real service's input checks
	if !user.HasIdentity() {
		return nil, domain.ErrMissingIdentity
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}
	return s.answer, nil
}

type stubScreeningService struct {
	got    ports.ScreenInput
	result *domain.ScreeningResult
	err    error
}

func (s *stubScreeningService) Screen(_ context.Context, in ports.ScreenInput) (*domain.ScreeningResult, error) {
	s.got = in
	return s.result, s.err
}

var errBoom = errors.New("boom")

// newJSONContext builds an echo context for a JSON POST. When user is
// non-nil it is injected the way the auth middleware would.
func newJSONContext(body string, user *domain.User) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
	}
	return e, c, rec
}
