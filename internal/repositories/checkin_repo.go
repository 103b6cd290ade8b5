package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type CheckInRepository interface {
	Create(ctx context.Context, q Querier, sub *models.CheckInSubmission) error
	UpdateAnswers(ctx context.Context, q Querier, sub *models.CheckInSubmission) error
	LatestByClientAndForm(ctx context.Context, q Querier, clientID, formID uuid.UUID) (*models.CheckInSubmission, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.CheckInSubmission, error)
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type checkInRepo struct {
	db Querier
}

func NewCheckInRepo(db Querier) CheckInRepository {
	return &checkInRepo{db: db}
}

func (r *checkInRepo) Create(ctx context.Context, q Querier, sub *models.CheckInSubmission) error {
	query := `
		INSERT INTO check_in_submissions (id, client_id, form_id, answers, filled_by_trainer, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, sub.ID, sub.ClientID, sub.FormID, sub.Answers, sub.FilledByTrainer, sub.SubmittedAt)
	return err
}

func (r *checkInRepo) UpdateAnswers(ctx context.Context, q Querier, sub *models.CheckInSubmission) error {
	query := `
		UPDATE check_in_submissions
		SET answers = $1, filled_by_trainer = $2, submitted_at = $3
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, sub.Answers, sub.FilledByTrainer, sub.SubmittedAt, sub.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *checkInRepo) LatestByClientAndForm(ctx context.Context, q Querier, clientID, formID uuid.UUID) (*models.CheckInSubmission, error) {
	sub := &models.CheckInSubmission{}
	query := `
		SELECT id, client_id, form_id, answers, filled_by_trainer, submitted_at
		FROM check_in_submissions
		WHERE client_id = $1 AND form_id = $2
		ORDER BY submitted_at DESC
		LIMIT 1
	`
	err := q.QueryRow(ctx, query, clientID, formID).Scan(
		&sub.ID, &sub.ClientID, &sub.FormID, &sub.Answers, &sub.FilledByTrainer, &sub.SubmittedAt)
	if err != nil {
		return nil, mapScanError(err)
	}
	return sub, nil
}

// ListByClient returns all submissions newest first, across every form.
func (r *checkInRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.CheckInSubmission, error) {
	query := `
		SELECT id, client_id, form_id, answers, filled_by_trainer, submitted_at
		FROM check_in_submissions
		WHERE client_id = $1
		ORDER BY submitted_at DESC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.CheckInSubmission
	for rows.Next() {
		sub := &models.CheckInSubmission{}
		if err := rows.Scan(&sub.ID, &sub.ClientID, &sub.FormID, &sub.Answers, &sub.FilledByTrainer, &sub.SubmittedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *checkInRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM check_in_submissions WHERE client_id = $1`, clientID)
	return err
}
