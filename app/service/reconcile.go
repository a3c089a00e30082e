package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
	"github.com/goamponsah/AI-Math-Tutor/app/paystack"
	"github.com/goamponsah/AI-Math-Tutor/app/plan"
)

// ReconcileOutcome summarizes what ApplyEvent did with one delivery. It never
// carries an error: Paystack redelivers on any non-2xx response, and
// redelivering an event whose side effects partially ran would compound
// inconsistency, so store failures are logged and the delivery is still
// acknowledged.
type ReconcileOutcome string

const (
	ReconcileApplied  ReconcileOutcome = "applied"
	ReconcileSkipped  ReconcileOutcome = "skipped"
	ReconcileDegraded ReconcileOutcome = "degraded"
)

// ApplyEvent applies one canonical webhook event to Payment and Subscription
// state. Every write is an idempotent upsert or update-if-exists keyed by a
// natural key, so duplicate and out-of-order deliveries converge. Each store
// step is individually fault-tolerant and bounded by the store timeout.
func (s *BillingService) ApplyEvent(ctx context.Context, event *paystack.Event) ReconcileOutcome {
	switch event.Kind {
	case paystack.EventChargeSucceeded:
		return s.applyChargeSucceeded(ctx, event)
	case paystack.EventChargeFailed, paystack.EventInvoicePaymentFailed:
		return s.applyChargeFailed(ctx, event)
	case paystack.EventSubscriptionDisabled:
		return s.applySubscriptionDisabled(ctx, event)
	default:
		return ReconcileSkipped
	}
}

func (s *BillingService) applyChargeSucceeded(ctx context.Context, event *paystack.Event) ReconcileOutcome {
	if event.Email == "" {
		s.logger.WithField("reference", event.Reference).Warn("charge succeeded without customer email")
		return ReconcileSkipped
	}

	degraded := false

	userCtx, cancel := s.storeContext(ctx)
	user, err := s.getOrCreateUser(userCtx, event.Email)
	cancel()
	if err != nil {
		s.logReconcileStepFailure(event, "get_or_create_user", err)
		user = nil
		degraded = true
	}

	if event.Reference != "" {
		rawEvent := string(event.Raw)
		payment := &entity.Payment{
			Reference:       event.Reference,
			Status:          entity.PaymentStatusSuccess,
			Currency:        eventCurrency(event, s.currency),
			RawWebhookEvent: &rawEvent,
		}
		if user != nil {
			userID := user.ID
			payment.UserID = &userID
		}
		if event.AmountMinor > 0 {
			amount := event.AmountMinor
			payment.AmountMinor = &amount
		}

		paymentCtx, cancel := s.storeContext(ctx)
		err := s.paymentRepo.Upsert(paymentCtx, payment)
		cancel()
		if err != nil {
			s.logReconcileStepFailure(event, "upsert_payment", err)
			degraded = true
		}
	}

	planKey := s.plans.Resolve(event.PlanCode)
	if planKey != plan.KeyUnknown && user != nil {
		now := time.Now().UTC()
		subscription := &entity.Subscription{
			UserID:           user.ID,
			Plan:             string(planKey),
			Status:           entity.SubscriptionStatusActive,
			Provider:         entity.SubscriptionProviderPaystack,
			ProviderPlanCode: event.PlanCode,
			LastPaidAt:       &now,
		}

		subCtx, cancel := s.storeContext(ctx)
		err := s.subscriptionRepo.Upsert(subCtx, subscription)
		cancel()
		if err != nil {
			s.logReconcileStepFailure(event, "upsert_subscription", err)
			degraded = true
		}
	}

	if degraded {
		return ReconcileDegraded
	}
	return ReconcileApplied
}

func (s *BillingService) applyChargeFailed(ctx context.Context, event *paystack.Event) ReconcileOutcome {
	if event.Reference == "" {
		return ReconcileSkipped
	}

	rawEvent := string(event.Raw)

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.paymentRepo.UpdateStatusByReference(storeCtx, event.Reference, entity.PaymentStatusFailed, &rawEvent); err != nil {
		s.logReconcileStepFailure(event, "mark_payment_failed", err)
		return ReconcileDegraded
	}

	return ReconcileApplied
}

func (s *BillingService) applySubscriptionDisabled(ctx context.Context, event *paystack.Event) ReconcileOutcome {
	if event.Email == "" {
		return ReconcileSkipped
	}
	planKey := s.plans.Resolve(event.PlanCode)
	if planKey == plan.KeyUnknown {
		return ReconcileSkipped
	}

	userCtx, cancel := s.storeContext(ctx)
	user, err := s.userRepo.FindByEmail(userCtx, event.Email)
	cancel()
	if err != nil {
		s.logReconcileStepFailure(event, "find_user", err)
		return ReconcileDegraded
	}
	if user == nil {
		// Disable for an unknown user is a valid no-op.
		return ReconcileSkipped
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.subscriptionRepo.UpdateStatusByUserAndPlan(storeCtx, user.ID, string(planKey), entity.SubscriptionStatusCanceled); err != nil {
		s.logReconcileStepFailure(event, "cancel_subscription", err)
		return ReconcileDegraded
	}

	return ReconcileApplied
}

func (s *BillingService) logReconcileStepFailure(event *paystack.Event, step string, err error) {
	s.logger.WithError(err).WithFields(logrus.Fields{
		"step":      step,
		"kind":      string(event.Kind),
		"reference": event.Reference,
	}).Error("reconcile_step_failed")
}

func eventCurrency(event *paystack.Event, fallback string) string {
	if event.Currency != "" {
		return event.Currency
	}
	return fallback
}
