package models

import (
	"time"

	"github.com/google/uuid"
)

// FormQuestion is one question of a trainer-defined intake form. Labels are
// free text; field mapping works off them heuristically.
type FormQuestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Form is the intake-form definition owned by the check-in-forms subsystem.
// This service only reads it.
type Form struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	TrainerID uuid.UUID      `json:"trainer_id" db:"trainer_id"`
	Title     string         `json:"title" db:"title"`
	Questions []FormQuestion `json:"questions" db:"questions"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
