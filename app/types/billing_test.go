package types

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewInitializePaymentRequestFromContextTrimsEmail(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("POST", "/api/paystack/initialize", bytes.NewBufferString(`{"email":"  a@x.com  ","amount":4900}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewInitializePaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.Email != "a@x.com" {
		t.Fatalf("expected trimmed email, got %q", parsed.Email)
	}
	if parsed.AmountMinor != 4900 {
		t.Fatalf("expected amount 4900, got %d", parsed.AmountMinor)
	}
}

func TestInitializePaymentValidate(t *testing.T) {
	req := &InitializePaymentRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected email validation error")
	}

	req = &InitializePaymentRequest{Email: "not-an-email", AmountMinor: 100}
	if err := req.Validate(); err == nil {
		t.Fatal("expected invalid email error")
	}

	req = &InitializePaymentRequest{Email: "a@x.com", AmountMinor: 0}
	if err := req.Validate(); err == nil {
		t.Fatal("expected amount validation error")
	}

	req = &InitializePaymentRequest{Email: "a@x.com", AmountMinor: 4900}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestNewChatRequestFromContextTrimsFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(`{"email":" a@x.com ","message":" what is 6*7? "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewChatRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.Email != "a@x.com" || parsed.Message != "what is 6*7?" {
		t.Fatalf("expected trimmed fields, got %+v", parsed)
	}
}

func TestChatRequestValidate(t *testing.T) {
	req := &ChatRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected email validation error")
	}

	req = &ChatRequest{Email: "a@x.com"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected message validation error")
	}

	req = &ChatRequest{Email: "a@x.com", Message: "hello"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
