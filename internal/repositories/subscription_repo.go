package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, q Querier, sub *models.Subscription) error
	Update(ctx context.Context, q Querier, sub *models.Subscription) error
	GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Subscription, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Subscription, error)
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type subscriptionRepo struct {
	db Querier
}

func NewSubscriptionRepo(db Querier) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `id, client_id, package_id, start_date, end_date, duration_value,
		duration_unit, payment_status, payment_method, price_before_disc, discount_applied,
		discount_type, discount_value, price_after_disc, on_hold, hold_start_date, created_at, updated_at`

func (r *subscriptionRepo) Create(ctx context.Context, q Querier, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, client_id, package_id, start_date, end_date, duration_value,
			duration_unit, payment_status, payment_method, price_before_disc, discount_applied,
			discount_type, discount_value, price_after_disc, on_hold, hold_start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err := q.Exec(ctx, query,
		sub.ID, sub.ClientID, sub.PackageID, sub.StartDate, sub.EndDate, sub.DurationValue,
		sub.DurationUnit, sub.PaymentStatus, sub.PaymentMethod, sub.PriceBeforeDisc,
		sub.DiscountApplied, sub.DiscountType, sub.DiscountValue, sub.PriceAfterDisc,
		sub.OnHold, sub.HoldStartDate)
	return mapWriteError(err)
}

func (r *subscriptionRepo) Update(ctx context.Context, q Querier, sub *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET package_id = $1, start_date = $2, end_date = $3, duration_value = $4, duration_unit = $5,
			payment_status = $6, payment_method = $7, price_before_disc = $8, discount_applied = $9,
			discount_type = $10, discount_value = $11, price_after_disc = $12, on_hold = $13,
			hold_start_date = $14, updated_at = NOW()
		WHERE id = $15 AND client_id = $16
	`
	tag, err := q.Exec(ctx, query,
		sub.PackageID, sub.StartDate, sub.EndDate, sub.DurationValue, sub.DurationUnit,
		sub.PaymentStatus, sub.PaymentMethod, sub.PriceBeforeDisc, sub.DiscountApplied,
		sub.DiscountType, sub.DiscountValue, sub.PriceAfterDisc, sub.OnHold, sub.HoldStartDate,
		sub.ID, sub.ClientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Subscription, error) {
	sub := &models.Subscription{}
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	err := q.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.ClientID, &sub.PackageID, &sub.StartDate, &sub.EndDate, &sub.DurationValue,
		&sub.DurationUnit, &sub.PaymentStatus, &sub.PaymentMethod, &sub.PriceBeforeDisc,
		&sub.DiscountApplied, &sub.DiscountType, &sub.DiscountValue, &sub.PriceAfterDisc,
		&sub.OnHold, &sub.HoldStartDate, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return sub, nil
}

// ListByClient returns subscriptions newest first; index 0 is the current one.
func (r *subscriptionRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub := &models.Subscription{}
		if err := rows.Scan(
			&sub.ID, &sub.ClientID, &sub.PackageID, &sub.StartDate, &sub.EndDate, &sub.DurationValue,
			&sub.DurationUnit, &sub.PaymentStatus, &sub.PaymentMethod, &sub.PriceBeforeDisc,
			&sub.DiscountApplied, &sub.DiscountType, &sub.DiscountValue, &sub.PriceAfterDisc,
			&sub.OnHold, &sub.HoldStartDate, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *subscriptionRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM subscriptions WHERE client_id = $1`, clientID)
	return err
}
