package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

// DeletedTaskMarkerRepository backs the suppression list consulted by the
// automatic task generator. Markers are written once and never mutated.
type DeletedTaskMarkerRepository interface {
	Create(ctx context.Context, q Querier, marker *models.DeletedTaskMarker) error
	Exists(ctx context.Context, q Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error)
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type deletedTaskMarkerRepo struct {
	db Querier
}

func NewDeletedTaskMarkerRepo(db Querier) DeletedTaskMarkerRepository {
	return &deletedTaskMarkerRepo{db: db}
}

func (r *deletedTaskMarkerRepo) Create(ctx context.Context, q Querier, marker *models.DeletedTaskMarker) error {
	query := `
		INSERT INTO deleted_task_markers (id, trainer_id, client_id, category, task_type, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (trainer_id, client_id, category, task_type) DO NOTHING
	`
	_, err := q.Exec(ctx, query, marker.ID, marker.TrainerID, marker.ClientID, marker.Category, marker.TaskType)
	return err
}

func (r *deletedTaskMarkerRepo) Exists(ctx context.Context, q Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM deleted_task_markers
			WHERE trainer_id = $1 AND client_id = $2 AND category = $3 AND task_type = $4
		)
	`
	err := q.QueryRow(ctx, query, trainerID, clientID, category, taskType).Scan(&exists)
	return exists, err
}

func (r *deletedTaskMarkerRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM deleted_task_markers WHERE client_id = $1`, clientID)
	return err
}
