package services

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is the slice of *pgxpool.Pool the transactional services need.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
