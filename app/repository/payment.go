package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/goamponsah/AI-Math-Tutor/app/entity"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Upsert writes the payment keyed by its unique reference. Concurrent or
// duplicate deliveries of the same event converge on one row; the duplicate
// path refreshes status, amount, currency and the audit payload.
func (r *PaymentRepository) Upsert(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			reference, user_id, status, amount_minor, currency,
			raw_init_response, raw_webhook_event, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			user_id = COALESCE(VALUES(user_id), user_id),
			status = VALUES(status),
			amount_minor = COALESCE(VALUES(amount_minor), amount_minor),
			currency = VALUES(currency),
			raw_webhook_event = COALESCE(VALUES(raw_webhook_event), raw_webhook_event),
			updated_at = VALUES(updated_at)
	`

	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		payment.Reference,
		nullableUint64Value(payment.UserID),
		payment.Status,
		nullableInt64Value(payment.AmountMinor),
		payment.Currency,
		nullableStringValue(payment.RawInitResponse),
		nullableStringValue(payment.RawWebhookEvent),
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil && id > 0 {
		payment.ID = uint64(id)
	}

	return nil
}

// UpdateStatusByReference marks existing rows for the reference. No matching
// row is a no-op, not an error; the payment may never have been recorded.
func (r *PaymentRepository) UpdateStatusByReference(ctx context.Context, reference, status string, rawEvent *string) error {
	query := `
		UPDATE payments SET
			status = ?,
			raw_webhook_event = COALESCE(?, raw_webhook_event),
			updated_at = ?
		WHERE reference = ?
	`

	_, err := r.db.ExecContext(ctx, query, status, nullableStringValue(rawEvent), time.Now().UTC(), reference)
	return err
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	query := `
		SELECT id, reference, user_id, status, amount_minor, currency,
			raw_init_response, raw_webhook_event, created_at, updated_at
		FROM payments
		WHERE reference = ?
		LIMIT 1
	`

	var userID sql.NullInt64
	var amountMinor sql.NullInt64
	var rawInit sql.NullString
	var rawEvent sql.NullString

	payment := &entity.Payment{}
	err := r.db.QueryRowContext(ctx, query, reference).Scan(
		&payment.ID,
		&payment.Reference,
		&userID,
		&payment.Status,
		&amountMinor,
		&payment.Currency,
		&rawInit,
		&rawEvent,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	payment.UserID = uint64PtrFromNull(userID)
	payment.AmountMinor = int64PtrFromNull(amountMinor)
	payment.RawInitResponse = stringPtrFromNull(rawInit)
	payment.RawWebhookEvent = stringPtrFromNull(rawEvent)

	return payment, nil
}
