package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// ChatHandler serves the career-navigator assistant.
type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type chatResponse struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

// Ask sends one user message to the assistant and returns the reply.
//
// @Summary      Ask the career navigator
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "User message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Ask(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.chatService.Ask(c.Request().Context(), user.ID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Message: reply.Message, Mode: reply.Mode})
}
