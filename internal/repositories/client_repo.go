package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type ClientRepository interface {
	Create(ctx context.Context, q Querier, client *models.Client) error
	Update(ctx context.Context, q Querier, client *models.Client) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID, search string) ([]*models.Client, error)
}

type clientRepo struct {
	db Querier
}

func NewClientRepo(db Querier) ClientRepository {
	return &clientRepo{db: db}
}

const clientColumns = `id, trainer_id, full_name, phone, email, gender, age, source, level,
		registration_date, goals, injuries, selected_form_id, created_at, updated_at`

func (r *clientRepo) Create(ctx context.Context, q Querier, client *models.Client) error {
	query := `
		INSERT INTO clients (id, trainer_id, full_name, phone, email, gender, age, source, level,
			registration_date, goals, injuries, selected_form_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := q.Exec(ctx, query,
		client.ID, client.TrainerID, client.FullName, client.Phone, client.Email,
		client.Gender, client.Age, client.Source, client.Level, client.RegistrationDate,
		client.Goals, client.Injuries, client.SelectedFormID)
	return err
}

func (r *clientRepo) Update(ctx context.Context, q Querier, client *models.Client) error {
	query := `
		UPDATE clients
		SET full_name = $1, phone = $2, email = $3, gender = $4, age = $5, source = $6,
			level = $7, registration_date = $8, goals = $9, injuries = $10,
			selected_form_id = $11, updated_at = NOW()
		WHERE trainer_id = $12 AND id = $13
	`
	tag, err := q.Exec(ctx, query,
		client.FullName, client.Phone, client.Email, client.Gender, client.Age,
		client.Source, client.Level, client.RegistrationDate, client.Goals,
		client.Injuries, client.SelectedFormID, client.TrainerID, client.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID, &client.TrainerID, &client.FullName, &client.Phone, &client.Email,
		&client.Gender, &client.Age, &client.Source, &client.Level, &client.RegistrationDate,
		&client.Goals, &client.Injuries, &client.SelectedFormID, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return client, nil
}

func (r *clientRepo) ListByTrainer(ctx context.Context, trainerID uuid.UUID, search string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE trainer_id = $1 AND ($2 = '' OR full_name ILIKE '%' || $2 || '%' OR phone ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, trainerID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(
			&client.ID, &client.TrainerID, &client.FullName, &client.Phone, &client.Email,
			&client.Gender, &client.Age, &client.Source, &client.Level, &client.RegistrationDate,
			&client.Goals, &client.Injuries, &client.SelectedFormID, &client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}
