package entity

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"

	SubscriptionProviderPaystack = "paystack"
)

// Subscription is a user's entitlement to one plan. At most one row exists per
// (UserID, Plan) pair; LastPaidAt only ever moves forward.
type Subscription struct {
	ID uint64

	UserID uint64
	Plan   string

	Status           string
	Provider         string
	ProviderPlanCode string
	LastPaidAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
