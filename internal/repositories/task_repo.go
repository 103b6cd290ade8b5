package repositories

import (
	"context"
	"time"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type TaskRepository interface {
	// CreateAutomatic inserts an automatic task. A partial unique index on
	// (client_id, category, task_type) WHERE status = 'open' backs the
	// application-level existence check; conflicting inserts are ignored.
	CreateAutomatic(ctx context.Context, q Querier, task *models.Task) error
	OpenTaskExists(ctx context.Context, q Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error)
	GetByID(ctx context.Context, trainerID, id uuid.UUID) (*models.Task, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error)
	Delete(ctx context.Context, q Querier, trainerID, id uuid.UUID) error
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
	MarkOverdue(ctx context.Context, trainerID uuid.UUID, now time.Time) (int64, error)
	CountOpenByTrainer(ctx context.Context, trainerID uuid.UUID) (int, error)
}

type taskRepo struct {
	db Querier
}

func NewTaskRepo(db Querier) TaskRepository {
	return &taskRepo{db: db}
}

const taskColumns = `id, trainer_id, client_id, category, task_type, status, due_date, title, description, created_at, updated_at`

func (r *taskRepo) CreateAutomatic(ctx context.Context, q Querier, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, trainer_id, client_id, category, task_type, status, due_date, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT DO NOTHING
	`
	_, err := q.Exec(ctx, query,
		task.ID, task.TrainerID, task.ClientID, task.Category, task.TaskType,
		task.Status, task.DueDate, task.Title, task.Description)
	return err
}

func (r *taskRepo) OpenTaskExists(ctx context.Context, q Querier, trainerID, clientID uuid.UUID, category, taskType string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE trainer_id = $1 AND client_id = $2 AND category = $3 AND task_type = $4 AND status = $5
		)
	`
	err := q.QueryRow(ctx, query, trainerID, clientID, category, taskType, models.TaskStatusOpen).Scan(&exists)
	return exists, err
}

func (r *taskRepo) GetByID(ctx context.Context, trainerID, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE trainer_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, trainerID, id).Scan(
		&task.ID, &task.TrainerID, &task.ClientID, &task.Category, &task.TaskType,
		&task.Status, &task.DueDate, &task.Title, &task.Description, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return task, nil
}

func (r *taskRepo) ListByTrainer(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE trainer_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY due_date ASC NULLS LAST, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, trainerID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.TrainerID, &task.ClientID, &task.Category, &task.TaskType,
			&task.Status, &task.DueDate, &task.Title, &task.Description, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) Delete(ctx context.Context, q Querier, trainerID, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE trainer_id = $1 AND id = $2`, trainerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM tasks WHERE client_id = $1`, clientID)
	return err
}

func (r *taskRepo) MarkOverdue(ctx context.Context, trainerID uuid.UUID, now time.Time) (int64, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE trainer_id = $2 AND status = $3 AND due_date IS NOT NULL AND due_date < $4
	`
	tag, err := r.db.Exec(ctx, query, models.TaskStatusOverdue, trainerID, models.TaskStatusOpen, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *taskRepo) CountOpenByTrainer(ctx context.Context, trainerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE trainer_id = $1 AND status = $2`
	err := r.db.QueryRow(ctx, query, trainerID, models.TaskStatusOpen).Scan(&count)
	return count, err
}
