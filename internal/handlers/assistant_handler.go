package handlers

import (
	"net/http"

	"finance-api/internal/dto"
	apperrors "finance-api/internal/errors"
	"finance-api/internal/services"

	"github.com/labstack/echo/v4"
)

// AssistantHandler answers questions about the caller's ledger
type AssistantHandler struct {
	assistantService services.AssistantServiceInterface
}

func NewAssistantHandler(assistantService services.AssistantServiceInterface) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Chat handles POST /api/chatbot
// @Summary Ask the finance assistant
// @Tags Assistant
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChatbotRequest true "Question"
// @Success 200 {object} dto.ChatbotResponse
// @Failure 502 {object} errors.ErrorResponse "UPSTREAM_001 - provider error payload in details"
// @Failure 503 {object} errors.ErrorResponse "UPSTREAM_002 / UPSTREAM_003"
// @Router /chatbot [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	var req dto.ChatbotRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	answer, err := h.assistantService.Ask(c.Request().Context(), userID, req.UserQuery)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ChatbotResponse{BotResponse: answer})
}
