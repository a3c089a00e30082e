package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"charge.success","data":{}}`)
	secret := "sk_test_secret"
	client := NewClient(Config{SecretKey: secret})

	if !client.VerifyWebhookSignature(payload, signPayload(payload, secret)) {
		t.Fatal("expected signature to validate")
	}
	if client.VerifyWebhookSignature(payload, signPayload(payload, "wrong-secret")) {
		t.Fatal("expected signature from wrong secret to fail")
	}

	mutated := append([]byte(nil), payload...)
	mutated[0] = '['
	if client.VerifyWebhookSignature(mutated, signPayload(payload, secret)) {
		t.Fatal("expected mutated payload to fail")
	}
}

func TestVerifyWebhookSignatureMissingInputs(t *testing.T) {
	payload := []byte(`{}`)

	client := NewClient(Config{SecretKey: "sk_test_secret"})
	if client.VerifyWebhookSignature(payload, "") {
		t.Fatal("expected missing signature header to fail")
	}
	if client.VerifyWebhookSignature(payload, "not-hex!") {
		t.Fatal("expected non-hex signature to fail")
	}

	noSecret := NewClient(Config{})
	if noSecret.VerifyWebhookSignature(payload, signPayload(payload, "")) {
		t.Fatal("expected missing secret to fail, never pass")
	}
}

func TestParseWebhookEventChargeSuccess(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk"})
	payload := []byte(`{"event":"charge.success","data":{"customer":{"email":"a@x.com"},"reference":"ref1","plan":"PLN_premium","amount":4900,"currency":"GHS"}}`)

	event, err := client.ParseWebhookEvent(payload)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.Kind != EventChargeSucceeded {
		t.Fatalf("unexpected kind: %s", event.Kind)
	}
	if event.Email != "a@x.com" || event.Reference != "ref1" || event.PlanCode != "PLN_premium" {
		t.Fatalf("unexpected fields: %+v", event)
	}
	if event.AmountMinor != 4900 || event.Currency != "GHS" {
		t.Fatalf("unexpected amount/currency: %+v", event)
	}
	if string(event.Raw) != string(payload) {
		t.Fatal("expected raw payload to be retained")
	}
}

func TestParseWebhookEventKinds(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk"})

	cases := []struct {
		eventType string
		want      EventKind
	}{
		{"charge.success", EventChargeSucceeded},
		{"charge.failed", EventChargeFailed},
		{"invoice.payment_failed", EventInvoicePaymentFailed},
		{"subscription.disable", EventSubscriptionDisabled},
		{"some.future.event", EventUnrecognized},
		{"", EventUnrecognized},
	}

	for _, tc := range cases {
		event, err := client.ParseWebhookEvent([]byte(`{"event":"` + tc.eventType + `","data":{}}`))
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.eventType, err)
		}
		if event.Kind != tc.want {
			t.Fatalf("%s: expected kind %s, got %s", tc.eventType, tc.want, event.Kind)
		}
	}
}

func TestParseWebhookEventPlanVariants(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk"})

	event, err := client.ParseWebhookEvent([]byte(`{"event":"charge.success","data":{"plan":{"plan_code":"PLN_pro"}}}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.PlanCode != "PLN_pro" {
		t.Fatalf("expected plan object code, got %q", event.PlanCode)
	}

	event, err = client.ParseWebhookEvent([]byte(`{"event":"subscription.disable","data":{"plan_object":{"plan_code":"PLN_premium"}}}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.PlanCode != "PLN_premium" {
		t.Fatalf("expected plan_object code, got %q", event.PlanCode)
	}
}

func TestParseWebhookEventMissingOptionalFields(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk"})

	event, err := client.ParseWebhookEvent([]byte(`{"event":"charge.success","data":{}}`))
	if err != nil {
		t.Fatalf("expected missing fields to parse, got %v", err)
	}
	if event.Email != "" || event.Reference != "" || event.PlanCode != "" || event.AmountMinor != 0 {
		t.Fatalf("expected zero-valued optional fields: %+v", event)
	}
}

func TestParseWebhookEventMalformedBody(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk"})
	if _, err := client.ParseWebhookEvent([]byte(`not json`)); err == nil {
		t.Fatal("expected parse error for malformed body")
	}
}

func TestInitializeTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Fatalf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"ref42"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk_test", Currency: "GHS", BaseURL: server.URL})

	tx, err := client.InitializeTransaction(context.Background(), "a@x.com", 4900)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tx.Reference != "ref42" || tx.AccessCode != "abc" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.RawResponse == "" {
		t.Fatal("expected raw response to be retained")
	}
}

func TestInitializeTransactionRequiresSecret(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.InitializeTransaction(context.Background(), "a@x.com", 100); err == nil {
		t.Fatal("expected error without secret key")
	}
}
