package service

import (
	"context"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
)

// ActiveSubscription answers the entitlement question for an email. It fails
// closed-but-available: an unknown user, no active row, and a store failure
// all collapse to nil, so a database outage denies premium access instead of
// erroring the gated feature. When several plans are active at once the row
// with the lowest id wins; callers must not rely on that order.
func (s *BillingService) ActiveSubscription(ctx context.Context, email string) *entity.Subscription {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	user, err := s.userRepo.FindByEmail(storeCtx, email)
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Warn("subscription status lookup failed")
		return nil
	}
	if user == nil {
		return nil
	}

	subscriptions, err := s.subscriptionRepo.ListByUser(storeCtx, user.ID)
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Warn("subscription status lookup failed")
		return nil
	}

	for _, subscription := range subscriptions {
		if subscription.Status == entity.SubscriptionStatusActive {
			return subscription
		}
	}

	return nil
}
