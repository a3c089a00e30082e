package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EventKind is the canonical decoding of a Paystack event-type string. The set
// is closed; anything Paystack adds later lands on EventUnrecognized.
type EventKind string

const (
	EventChargeSucceeded      EventKind = "charge_succeeded"
	EventChargeFailed         EventKind = "charge_failed"
	EventInvoicePaymentFailed EventKind = "invoice_payment_failed"
	EventSubscriptionDisabled EventKind = "subscription_disabled"
	EventUnrecognized         EventKind = "unrecognized"
)

// Event is the provider-agnostic view of one webhook delivery. Optional fields
// that the payload omits stay zero-valued; Raw keeps the original bytes for
// the audit columns.
type Event struct {
	Kind        EventKind
	Email       string
	Reference   string
	PlanCode    string
	AmountMinor int64
	Currency    string
	Raw         []byte
}

type Config struct {
	SecretKey   string
	Currency    string
	BaseURL     string
	HTTPTimeout time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.paystack.co"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// VerifyWebhookSignature checks the X-Paystack-Signature header against the
// HMAC-SHA512 hex digest of the raw request body. The body must be the exact
// bytes received on the wire; re-serialized JSON would not match. A missing
// secret or signature always fails.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" || strings.TrimSpace(c.cfg.SecretKey) == "" {
		return false
	}

	candidate, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.cfg.SecretKey))
	_, _ = mac.Write(payload)
	return hmac.Equal(candidate, mac.Sum(nil))
}

// ParseWebhookEvent decodes one delivery into a canonical Event. Only a body
// that fails to parse as JSON is an error; unknown event types and missing
// optional fields are not.
func (c *Client) ParseWebhookEvent(payload []byte) (*Event, error) {
	var envelope struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
			Amount    int64  `json:"amount"`
			Currency  string `json:"currency"`
			Customer  struct {
				Email string `json:"email"`
			} `json:"customer"`
			Plan       json.RawMessage `json:"plan"`
			PlanObject struct {
				PlanCode string `json:"plan_code"`
			} `json:"plan_object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, err
	}

	event := &Event{
		Kind:        mapEventKind(envelope.Event),
		Email:       strings.TrimSpace(envelope.Data.Customer.Email),
		Reference:   strings.TrimSpace(envelope.Data.Reference),
		AmountMinor: envelope.Data.Amount,
		Currency:    strings.ToUpper(strings.TrimSpace(envelope.Data.Currency)),
		Raw:         payload,
	}

	event.PlanCode = parsePlanCode(envelope.Data.Plan)
	if event.PlanCode == "" {
		event.PlanCode = strings.TrimSpace(envelope.Data.PlanObject.PlanCode)
	}

	return event, nil
}

func mapEventKind(eventType string) EventKind {
	switch strings.TrimSpace(eventType) {
	case "charge.success":
		return EventChargeSucceeded
	case "charge.failed":
		return EventChargeFailed
	case "invoice.payment_failed":
		return EventInvoicePaymentFailed
	case "subscription.disable":
		return EventSubscriptionDisabled
	default:
		return EventUnrecognized
	}
}

// parsePlanCode handles Paystack sending "plan" either as a bare code string
// or as an object carrying plan_code.
func parsePlanCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
		return ""
	}
	var obj struct {
		PlanCode string `json:"plan_code"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return strings.TrimSpace(obj.PlanCode)
	}
	return ""
}

// InitTransaction is the result of the outbound transaction initialize call.
// Reference is provider-assigned and later keys all webhook upserts.
type InitTransaction struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
	RawResponse      string
}

func (c *Client) InitializeTransaction(ctx context.Context, email string, amountMinor int64) (*InitTransaction, error) {
	if strings.TrimSpace(c.cfg.SecretKey) == "" {
		return nil, errors.New("paystack secret key is not configured")
	}

	reqBody := map[string]interface{}{
		"email":    strings.TrimSpace(email),
		"amount":   amountMinor,
		"currency": c.cfg.Currency,
	}
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/transaction/initialize", strings.NewReader(string(encoded)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("paystack initialize failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload struct {
		Status bool `json:"status"`
		Data   struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if !payload.Status || strings.TrimSpace(payload.Data.Reference) == "" {
		return nil, fmt.Errorf("paystack initialize rejected: body=%s", string(body))
	}

	return &InitTransaction{
		AuthorizationURL: strings.TrimSpace(payload.Data.AuthorizationURL),
		AccessCode:       strings.TrimSpace(payload.Data.AccessCode),
		Reference:        strings.TrimSpace(payload.Data.Reference),
		RawResponse:      string(body),
	}, nil
}
