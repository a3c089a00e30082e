package entity

import "time"

const (
	PaymentStatusInitialized = "initialized"
	PaymentStatusSuccess     = "success"
	PaymentStatusFailed      = "failed"
)

// Payment is one Paystack transaction attempt, keyed by the provider-assigned
// reference. A row is created once and upserted by later webhook deliveries.
type Payment struct {
	ID uint64

	Reference string
	UserID    *uint64

	Status      string
	AmountMinor *int64
	Currency    string

	RawInitResponse *string
	RawWebhookEvent *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
