package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamAssignment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TrainerID  uuid.UUID `json:"trainer_id" db:"trainer_id"`
	ClientID   uuid.UUID `json:"client_id" db:"client_id"`
	TeamName   string    `json:"team_name" db:"team_name"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}
