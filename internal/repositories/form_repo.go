package repositories

import (
	"context"
	"encoding/json"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

// FormRepository reads trainer-defined intake forms. The forms subsystem
// owns writes; this service only resolves definitions for field mapping.
type FormRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Form, error)
}

type formRepo struct {
	db Querier
}

func NewFormRepo(db Querier) FormRepository {
	return &formRepo{db: db}
}

func (r *formRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Form, error) {
	form := &models.Form{}
	var questionsJSON []byte
	query := `SELECT id, trainer_id, title, questions, created_at, updated_at FROM forms WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&form.ID, &form.TrainerID, &form.Title, &questionsJSON, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &form.Questions); err != nil {
			return nil, err
		}
	}
	return form, nil
}
