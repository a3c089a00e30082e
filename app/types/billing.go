package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SubscriptionStatusResponse is the entitlement gate's answer. Status is
// either "active" (with plan and since set) or "free"; there is no error
// variant.
type SubscriptionStatusResponse struct {
	Status string `json:"status"`
	Plan   string `json:"plan,omitempty"`
	Since  string `json:"since,omitempty"`
}

type InitializePaymentRequest struct {
	Email       string `json:"email"`
	AmountMinor int64  `json:"amount"`
}

func NewInitializePaymentRequestFromContext(ctx echo.Context) (*InitializePaymentRequest, error) {
	var body InitializePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Email = strings.TrimSpace(body.Email)

	return &body, nil
}

func (r *InitializePaymentRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is invalid")
	}
	if r.AmountMinor <= 0 {
		return errors.New("amount must be > 0")
	}
	return nil
}

type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type ChatRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func NewChatRequestFromContext(ctx echo.Context) (*ChatRequest, error) {
	var body ChatRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)

	return &body, nil
}

func (r *ChatRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Message == "" {
		return errors.New("message is required")
	}
	return nil
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
