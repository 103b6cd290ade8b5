package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type LabelRepository interface {
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Label, error)
	ReplaceClientLabels(ctx context.Context, q Querier, clientID uuid.UUID, labelIDs []uuid.UUID) error
	DeleteLinksByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type labelRepo struct {
	db Querier
}

func NewLabelRepo(db Querier) LabelRepository {
	return &labelRepo{db: db}
}

func (r *labelRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Label, error) {
	query := `
		SELECT l.id, l.trainer_id, l.name, l.color, l.created_at
		FROM labels l
		JOIN client_labels cl ON cl.label_id = l.id
		WHERE cl.client_id = $1
		ORDER BY l.name ASC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []*models.Label
	for rows.Next() {
		label := &models.Label{}
		if err := rows.Scan(&label.ID, &label.TrainerID, &label.Name, &label.Color, &label.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (r *labelRepo) ReplaceClientLabels(ctx context.Context, q Querier, clientID uuid.UUID, labelIDs []uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM client_labels WHERE client_id = $1`, clientID); err != nil {
		return err
	}
	for _, labelID := range labelIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO client_labels (client_id, label_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			clientID, labelID); err != nil {
			return err
		}
	}
	return nil
}

func (r *labelRepo) DeleteLinksByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM client_labels WHERE client_id = $1`, clientID)
	return err
}
