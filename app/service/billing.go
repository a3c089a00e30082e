package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
	"github.com/goamponsah/AI-Math-Tutor/app/factory"
	"github.com/goamponsah/AI-Math-Tutor/app/paystack"
	"github.com/goamponsah/AI-Math-Tutor/app/plan"
	"github.com/goamponsah/AI-Math-Tutor/app/repository"
)

const defaultStoreTimeout = 5 * time.Second

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type paymentRepository interface {
	Upsert(ctx context.Context, payment *entity.Payment) error
	UpdateStatusByReference(ctx context.Context, reference, status string, rawEvent *string) error
	FindByReference(ctx context.Context, reference string) (*entity.Payment, error)
}

type subscriptionRepository interface {
	Upsert(ctx context.Context, subscription *entity.Subscription) error
	UpdateStatusByUserAndPlan(ctx context.Context, userID uint64, plan, status string) error
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Subscription, error)
}

type paymentInitializer interface {
	InitializeTransaction(ctx context.Context, email string, amountMinor int64) (*paystack.InitTransaction, error)
}

type BillingService struct {
	userRepo         userRepository
	paymentRepo      paymentRepository
	subscriptionRepo subscriptionRepository
	provider         paymentInitializer
	plans            *plan.Resolver
	currency         string
	storeTimeout     time.Duration
	logger           logrus.FieldLogger
}

func NewBillingService(
	userRepo userRepository,
	paymentRepo paymentRepository,
	subscriptionRepo subscriptionRepository,
	provider paymentInitializer,
	plans *plan.Resolver,
	currency string,
	storeTimeout time.Duration,
) *BillingService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}

	return &BillingService{
		userRepo:         userRepo,
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
		plans:            plans,
		currency:         strings.ToUpper(strings.TrimSpace(currency)),
		storeTimeout:     storeTimeout,
		logger:           factory.NewModuleLogger("billing-service"),
	}
}

// InitializePayment starts a hosted checkout with Paystack and records the
// attempt in initialized state under the provider-assigned reference.
func (s *BillingService) InitializePayment(ctx context.Context, email string, amountMinor int64) (*paystack.InitTransaction, error) {
	email = strings.TrimSpace(email)
	if email == "" || amountMinor <= 0 {
		return nil, ErrInvalidRequest
	}

	user, err := s.getOrCreateUser(ctx, email)
	if err != nil {
		return nil, err
	}

	tx, err := s.provider.InitializeTransaction(ctx, email, amountMinor)
	if err != nil {
		s.logger.WithError(err).WithField("email", email).Error("paystack initialize failed")
		return nil, ErrProviderUnavailable
	}

	userID := user.ID
	rawInit := tx.RawResponse
	amount := amountMinor
	payment := &entity.Payment{
		Reference:       tx.Reference,
		UserID:          &userID,
		Status:          entity.PaymentStatusInitialized,
		AmountMinor:     &amount,
		Currency:        s.currency,
		RawInitResponse: &rawInit,
	}
	if err := s.paymentRepo.Upsert(ctx, payment); err != nil {
		return nil, err
	}

	return tx, nil
}

// getOrCreateUser is idempotent under concurrent first sightings of the same
// email: a duplicate-entry failure means another request won the insert, so
// the existing row is fetched instead.
func (s *BillingService) getOrCreateUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &entity.User{Email: email}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return s.userRepo.FindByEmail(ctx, email)
		}
		return nil, err
	}

	return user, nil
}

func (s *BillingService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}
