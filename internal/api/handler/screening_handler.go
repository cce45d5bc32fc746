package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

// ScreeningHandler scores candidates against requirements.
type ScreeningHandler struct {
	service ports.ScreeningService
}

func NewScreeningHandler(service ports.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{service: service}
}

// --- Request types ---

type candidateRequest struct {
	Name       string            `json:"name" validate:"required,max=200"`
	Skills     domain.Skills     `json:"skills" swaggertype:"string" example:"Go, SQL, Kubernetes"`
	Experience domain.Experience `json:"experience" swaggertype:"string" example:"4"`
	Education  string            `json:"education"`
}

type screenRequest struct {
	RequirementID string           `json:"requirement_id" validate:"required" example:"R-42"`
	Candidate     candidateRequest `json:"candidate"`
}

// Screen godoc
// @Summary      Screen a candidate against a requirement
// @Description  Uses the LLM verdict when available, otherwise deterministic fallback scoring.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      screenRequest           true  "Requirement and candidate profile"
// @Success      200   {object}  domain.ScreeningResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/ai/screen [post]
func (h *ScreeningHandler) Screen(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req screenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Screen(c.Request().Context(), ports.ScreenInput{
		User:          user,
		RequirementID: req.RequirementID,
		Candidate: domain.Candidate{
			Name:       req.Candidate.Name,
			Skills:     req.Candidate.Skills,
			Experience: req.Candidate.Experience,
			Education:  req.Candidate.Education,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
