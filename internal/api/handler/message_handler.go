package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// MessageHandler serves direct messaging and the conversation list.
type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

type conversationResponse struct {
	User          domain.UserProfile `json:"user"`
	LastMessage   string             `json:"last_message"`
	LastMessageAt *time.Time         `json:"last_message_at"`
	UnreadCount   int64              `json:"unread_count"`
}

// Send delivers a message from the caller to the recipient.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.messageService.Send(c.Request().Context(), user.ID, req.RecipientID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Thread returns the full exchange with one partner, oldest first, and marks
// the partner's messages to the caller as read.
//
// @Summary      Get a message thread
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path     string  true  "Partner user id"
// @Success      200      {array}  domain.Message
// @Router       /api/v1/messages/{user_id} [get]
func (h *MessageHandler) Thread(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	msgs, err := h.messageService.Thread(c.Request().Context(), user.ID, c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Conversations returns one summary per distinct partner, most recent first.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   conversationResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	summaries, err := h.messageService.Conversations(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	resp := make([]conversationResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, conversationResponse{
			User:          s.User,
			LastMessage:   s.LastMessage,
			LastMessageAt: s.LastMessageAt,
			UnreadCount:   s.UnreadCount,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
