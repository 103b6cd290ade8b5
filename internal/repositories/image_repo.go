package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ImageRepository tracks uploaded payment-proof objects. Deletions return
// the removed object keys so the caller can clean up object storage after
// the surrounding transaction commits.
type ImageRepository interface {
	CreateTransactionImage(ctx context.Context, q Querier, img *models.TransactionImage) error
	CreateSubscriptionImage(ctx context.Context, q Querier, img *models.SubscriptionImage) error
	DeleteTransactionImages(ctx context.Context, q Querier, ids []uuid.UUID) ([]string, error)
	DeleteSubscriptionImages(ctx context.Context, q Querier, ids []uuid.UUID) ([]string, error)
	DeleteBySubscriptions(ctx context.Context, q Querier, subscriptionIDs []uuid.UUID) ([]string, error)
	GetTransactionImage(ctx context.Context, id uuid.UUID) (*models.TransactionImage, error)
}

type imageRepo struct {
	db Querier
}

func NewImageRepo(db Querier) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) CreateTransactionImage(ctx context.Context, q Querier, img *models.TransactionImage) error {
	query := `INSERT INTO transaction_images (id, installment_id, object_key, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := q.Exec(ctx, query, img.ID, img.InstallmentID, img.ObjectKey)
	return err
}

func (r *imageRepo) CreateSubscriptionImage(ctx context.Context, q Querier, img *models.SubscriptionImage) error {
	query := `INSERT INTO subscription_images (id, subscription_id, object_key, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := q.Exec(ctx, query, img.ID, img.SubscriptionID, img.ObjectKey)
	return err
}

func (r *imageRepo) DeleteTransactionImages(ctx context.Context, q Querier, ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collectKeys(q.Query(ctx, `DELETE FROM transaction_images WHERE id = ANY($1) RETURNING object_key`, ids))
}

func (r *imageRepo) DeleteSubscriptionImages(ctx context.Context, q Querier, ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collectKeys(q.Query(ctx, `DELETE FROM subscription_images WHERE id = ANY($1) RETURNING object_key`, ids))
}

func (r *imageRepo) DeleteBySubscriptions(ctx context.Context, q Querier, subscriptionIDs []uuid.UUID) ([]string, error) {
	if len(subscriptionIDs) == 0 {
		return nil, nil
	}
	txKeys, err := collectKeys(q.Query(ctx, `
		DELETE FROM transaction_images
		WHERE installment_id IN (SELECT id FROM installments WHERE subscription_id = ANY($1))
		RETURNING object_key`, subscriptionIDs))
	if err != nil {
		return nil, err
	}
	subKeys, err := collectKeys(q.Query(ctx,
		`DELETE FROM subscription_images WHERE subscription_id = ANY($1) RETURNING object_key`, subscriptionIDs))
	if err != nil {
		return nil, err
	}
	return append(txKeys, subKeys...), nil
}

func (r *imageRepo) GetTransactionImage(ctx context.Context, id uuid.UUID) (*models.TransactionImage, error) {
	img := &models.TransactionImage{}
	query := `SELECT id, installment_id, object_key, created_at FROM transaction_images WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&img.ID, &img.InstallmentID, &img.ObjectKey, &img.CreatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return img, nil
}

func collectKeys(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
