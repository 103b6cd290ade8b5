package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, q Querier, note *models.Note) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error)
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type noteRepo struct {
	db Querier
}

func NewNoteRepo(db Querier) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, q Querier, note *models.Note) error {
	query := `INSERT INTO notes (id, client_id, content, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := q.Exec(ctx, query, note.ID, note.ClientID, note.Content)
	return err
}

func (r *noteRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error) {
	query := `SELECT id, client_id, content, created_at FROM notes WHERE client_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.ClientID, &note.Content, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM notes WHERE client_id = $1`, clientID)
	return err
}
