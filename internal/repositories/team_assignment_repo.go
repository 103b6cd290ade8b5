package repositories

import (
	"context"

	"coachcrm/internal/models"

	"github.com/google/uuid"
)

type TeamAssignmentRepository interface {
	Create(ctx context.Context, q Querier, assignment *models.TeamAssignment) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.TeamAssignment, error)
	DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error
}

type teamAssignmentRepo struct {
	db Querier
}

func NewTeamAssignmentRepo(db Querier) TeamAssignmentRepository {
	return &teamAssignmentRepo{db: db}
}

func (r *teamAssignmentRepo) Create(ctx context.Context, q Querier, assignment *models.TeamAssignment) error {
	query := `
		INSERT INTO team_assignments (id, trainer_id, client_id, team_name, assigned_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := q.Exec(ctx, query, assignment.ID, assignment.TrainerID, assignment.ClientID, assignment.TeamName)
	return err
}

func (r *teamAssignmentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.TeamAssignment, error) {
	query := `
		SELECT id, trainer_id, client_id, team_name, assigned_at
		FROM team_assignments
		WHERE client_id = $1
		ORDER BY assigned_at ASC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.TeamAssignment
	for rows.Next() {
		a := &models.TeamAssignment{}
		if err := rows.Scan(&a.ID, &a.TrainerID, &a.ClientID, &a.TeamName, &a.AssignedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *teamAssignmentRepo) DeleteByClient(ctx context.Context, q Querier, clientID uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM team_assignments WHERE client_id = $1`, clientID)
	return err
}
