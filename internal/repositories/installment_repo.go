package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type InstallmentRepository interface {
	Create(ctx context.Context, q Querier, inst *models.Installment) error
	Update(ctx context.Context, q Querier, inst *models.Installment) error
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Installment, error)
	DeleteByIDs(ctx context.Context, q Querier, subscriptionID uuid.UUID, ids []uuid.UUID) error
	DeleteBySubscriptions(ctx context.Context, q Querier, subscriptionIDs []uuid.UUID) error
}

type installmentRepo struct {
	db Querier
}

func NewInstallmentRepo(db Querier) InstallmentRepository {
	return &installmentRepo{db: db}
}

func (r *installmentRepo) Create(ctx context.Context, q Querier, inst *models.Installment) error {
	query := `
		INSERT INTO installments (id, subscription_id, paid_date, amount, remaining, next_installment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := q.Exec(ctx, query,
		inst.ID, inst.SubscriptionID, inst.PaidDate, inst.Amount, inst.Remaining,
		inst.NextInstallment, inst.Status)
	return mapWriteError(err)
}

func (r *installmentRepo) Update(ctx context.Context, q Querier, inst *models.Installment) error {
	query := `
		UPDATE installments
		SET paid_date = $1, amount = $2, remaining = $3, next_installment = $4, status = $5, updated_at = NOW()
		WHERE id = $6 AND subscription_id = $7
	`
	tag, err := q.Exec(ctx, query,
		inst.PaidDate, inst.Amount, inst.Remaining, inst.NextInstallment, inst.Status,
		inst.ID, inst.SubscriptionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *installmentRepo) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Installment, error) {
	query := `
		SELECT id, subscription_id, paid_date, amount, remaining, next_installment, status, created_at, updated_at
		FROM installments
		WHERE subscription_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.Installment
	for rows.Next() {
		inst := &models.Installment{}
		if err := rows.Scan(&inst.ID, &inst.SubscriptionID, &inst.PaidDate, &inst.Amount,
			&inst.Remaining, &inst.NextInstallment, &inst.Status, &inst.CreatedAt, &inst.UpdatedAt); err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

func (r *installmentRepo) DeleteByIDs(ctx context.Context, q Querier, subscriptionID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM installments WHERE subscription_id = $1 AND id = ANY($2)`
	_, err := q.Exec(ctx, query, subscriptionID, ids)
	return err
}

func (r *installmentRepo) DeleteBySubscriptions(ctx context.Context, q Querier, subscriptionIDs []uuid.UUID) error {
	if len(subscriptionIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `DELETE FROM installments WHERE subscription_id = ANY($1)`, subscriptionIDs)
	return err
}
