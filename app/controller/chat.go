package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/goamponsah/AI-Math-Tutor/app/factory"
	"github.com/goamponsah/AI-Math-Tutor/app/service"
	"github.com/goamponsah/AI-Math-Tutor/app/types"
)

type ChatController struct {
	chatService *service.ChatService
	logger      logrus.FieldLogger
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      factory.NewModuleLogger("chat-controller"),
	}
}

func (c *ChatController) Chat(ctx echo.Context) error {
	req, err := types.NewChatRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	reply, err := c.chatService.Ask(ctx.Request().Context(), req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotEntitled):
			return c.writeError(ctx, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, service.ErrAssistantUnavailable):
			return c.writeError(ctx, http.StatusBadGateway, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Chat request failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.ChatResponse{Reply: reply})
}

func (c *ChatController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
