package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
)

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert writes the subscription keyed by the unique (user_id, plan) pair.
// The GREATEST guard keeps last_paid_at monotonic under duplicate and
// out-of-order deliveries.
func (r *SubscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			user_id, plan, status, provider, provider_plan_code, last_paid_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			status = VALUES(status),
			provider_plan_code = VALUES(provider_plan_code),
			last_paid_at = GREATEST(COALESCE(last_paid_at, VALUES(last_paid_at)), VALUES(last_paid_at)),
			updated_at = VALUES(updated_at)
	`

	now := time.Now().UTC()
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = now
	}
	subscription.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		subscription.UserID,
		subscription.Plan,
		subscription.Status,
		subscription.Provider,
		subscription.ProviderPlanCode,
		nullableTimeValue(subscription.LastPaidAt),
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		subscription.ID = uint64(id)
	}

	return nil
}

// UpdateStatusByUserAndPlan sets the status of an existing row. No matching
// row is a no-op, not an error.
func (r *SubscriptionRepository) UpdateStatusByUserAndPlan(ctx context.Context, userID uint64, plan, status string) error {
	query := `
		UPDATE subscriptions SET
			status = ?,
			updated_at = ?
		WHERE user_id = ? AND plan = ?
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), userID, plan)
	return err
}

// ListByUser returns the user's subscription rows ordered by id. The order
// only matters as a stable tie-break when several plans are active at once.
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Subscription, error) {
	query := `
		SELECT id, user_id, plan, status, provider, provider_plan_code, last_paid_at, created_at, updated_at
		FROM subscriptions
		WHERE user_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]*entity.Subscription, 0)
	for rows.Next() {
		item, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscriptions, nil
}

type subscriptionScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(scan subscriptionScanner) (*entity.Subscription, error) {
	var lastPaidAt sql.NullTime

	subscription := &entity.Subscription{}
	err := scan.Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.Plan,
		&subscription.Status,
		&subscription.Provider,
		&subscription.ProviderPlanCode,
		&lastPaidAt,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	subscription.LastPaidAt = timePtrFromNull(lastPaidAt)

	return subscription, nil
}
