package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// ChatHandler serves the role-aware assistant.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat godoc
// @Summary      Ask the ATS assistant a question
// @Description  Answers from role-filtered ATS data. LLM failures are reported in the answer text with status 200.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest   true  "Question and caller identity"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  chatResponse
// @Failure      401   {object}  chatResponse
// @Router       /api/ai/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Answer: answerInvalidPayload})
	}

	res, err := h.service.Answer(c.Request().Context(), req.Message, chatUser(c, req.User))
	switch {
	case errors.Is(err, domain.ErrMissingIdentity):
		return c.JSON(http.StatusUnauthorized, chatResponse{Answer: answerMissingIdentity})
	case errors.Is(err, domain.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, chatResponse{Answer: answerEmptyMessage})
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, chatResponse{Answer: res.Answer, Context: res.Context})
}
