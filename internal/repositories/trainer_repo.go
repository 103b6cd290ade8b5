package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type TrainerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error)
	List(ctx context.Context, limit, offset int) ([]*models.Trainer, error)
}

type trainerRepo struct {
	db Querier
}

func NewTrainerRepo(db Querier) TrainerRepository {
	return &trainerRepo{db: db}
}

func (r *trainerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error) {
	trainer := &models.Trainer{}
	query := `SELECT id, email, name, created_at, updated_at FROM trainers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trainer.ID, &trainer.Email, &trainer.Name, &trainer.CreatedAt, &trainer.UpdatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return trainer, nil
}

func (r *trainerRepo) List(ctx context.Context, limit, offset int) ([]*models.Trainer, error) {
	query := `SELECT id, email, name, created_at, updated_at FROM trainers ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []*models.Trainer
	for rows.Next() {
		trainer := &models.Trainer{}
		if err := rows.Scan(&trainer.ID, &trainer.Email, &trainer.Name, &trainer.CreatedAt, &trainer.UpdatedAt); err != nil {
			return nil, err
		}
		trainers = append(trainers, trainer)
	}
	return trainers, rows.Err()
}
