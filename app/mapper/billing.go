package mapper

import (
	"time"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
	"github.com/goamponsah/AI-Math-Tutor/app/paystack"
	"github.com/goamponsah/AI-Math-Tutor/app/types"
)

func SubscriptionToStatus(item *entity.Subscription) *types.SubscriptionStatusResponse {
	if item == nil {
		return &types.SubscriptionStatusResponse{Status: "free"}
	}

	since := ""
	if item.LastPaidAt != nil {
		since = item.LastPaidAt.UTC().Format(time.RFC3339)
	}

	return &types.SubscriptionStatusResponse{
		Status: "active",
		Plan:   item.Plan,
		Since:  since,
	}
}

func InitTransactionToResponse(item *paystack.InitTransaction) *types.InitializePaymentResponse {
	if item == nil {
		return nil
	}

	return &types.InitializePaymentResponse{
		AuthorizationURL: item.AuthorizationURL,
		AccessCode:       item.AccessCode,
		Reference:        item.Reference,
	}
}
