package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/goamponsah/AI-Math-Tutor/app/factory"
	"github.com/goamponsah/AI-Math-Tutor/app/mapper"
	"github.com/goamponsah/AI-Math-Tutor/app/paystack"
	"github.com/goamponsah/AI-Math-Tutor/app/service"
	"github.com/goamponsah/AI-Math-Tutor/app/types"
)

const paystackSignatureHeader = "X-Paystack-Signature"

type webhookVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string) bool
	ParseWebhookEvent(payload []byte) (*paystack.Event, error)
}

type BillingController struct {
	billingService *service.BillingService
	webhooks       webhookVerifier
	logger         logrus.FieldLogger
}

func NewBillingController(billingService *service.BillingService, webhooks webhookVerifier) *BillingController {
	return &BillingController{
		billingService: billingService,
		webhooks:       webhooks,
		logger:         factory.NewModuleLogger("billing-controller"),
	}
}

func (c *BillingController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

// HandleWebhook runs one delivery through verify → normalize → reconcile. The
// body is read verbatim before any binding; the HMAC is computed over those
// exact bytes. Only a signature mismatch (401) or an unparseable body (500)
// escapes acknowledgment — every other outcome returns 200 so Paystack does
// not redeliver an event whose side effects already ran.
func (c *BillingController) HandleWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return c.writeError(ctx, http.StatusInternalServerError, "failed to read request body")
	}

	signature := ctx.Request().Header.Get(paystackSignatureHeader)
	if !c.webhooks.VerifyWebhookSignature(payload, signature) {
		factory.LoggerWithContext(c.logger, ctx).Warn("webhook signature rejected")
		return c.writeError(ctx, http.StatusUnauthorized, "invalid signature")
	}

	event, err := c.webhooks.ParseWebhookEvent(payload)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("webhook payload unparseable")
		return c.writeError(ctx, http.StatusInternalServerError, "invalid payload")
	}

	outcome := c.billingService.ApplyEvent(ctx.Request().Context(), event)
	factory.LoggerWithContext(c.logger, ctx).WithFields(logrus.Fields{
		"kind":    string(event.Kind),
		"outcome": string(outcome),
	}).Info("webhook_processed")

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "webhook processed"})
}

// SubscriptionStatus never distinguishes "not found" from "not entitled" or a
// store failure; all collapse to free.
func (c *BillingController) SubscriptionStatus(ctx echo.Context) error {
	email := ctx.Param("email")
	subscription := c.billingService.ActiveSubscription(ctx.Request().Context(), email)
	return ctx.JSON(http.StatusOK, mapper.SubscriptionToStatus(subscription))
}

func (c *BillingController) InitializePayment(ctx echo.Context) error {
	req, err := types.NewInitializePaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	tx, err := c.billingService.InitializePayment(ctx.Request().Context(), req.Email, req.AmountMinor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProviderUnavailable):
			return c.writeError(ctx, http.StatusBadGateway, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Initialize payment failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, mapper.InitTransactionToResponse(tx))
}

func (c *BillingController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
