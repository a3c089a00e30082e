package plan

import "strings"

// Key is the internal, stable identifier for a subscription tier, distinct
// from the opaque code Paystack assigns.
type Key string

const (
	KeyPremium Key = "premium"
	KeyPro     Key = "pro"
	KeyUnknown Key = "unknown"
)

// Resolver maps the deployment's two configured Paystack plan codes to plan
// keys. Any other code, including the empty string, resolves to KeyUnknown;
// that is an expected outcome, not a failure.
type Resolver struct {
	premiumCode string
	proCode     string
}

func NewResolver(premiumCode, proCode string) *Resolver {
	return &Resolver{
		premiumCode: strings.TrimSpace(premiumCode),
		proCode:     strings.TrimSpace(proCode),
	}
}

func (r *Resolver) Resolve(planCode string) Key {
	planCode = strings.TrimSpace(planCode)
	if planCode == "" {
		return KeyUnknown
	}
	switch planCode {
	case r.premiumCode:
		return KeyPremium
	case r.proCode:
		return KeyPro
	default:
		return KeyUnknown
	}
}
