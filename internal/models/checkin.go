package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckInSubmission stores one filled intake form. Answers are keyed by
// question id. History is retained; the latest submission per (client, form)
// is the one onboarding updates in place.
type CheckInSubmission struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	ClientID        uuid.UUID         `json:"client_id" db:"client_id"`
	FormID          uuid.UUID         `json:"form_id" db:"form_id"`
	Answers         map[string]string `json:"answers" db:"answers"`
	FilledByTrainer bool              `json:"filled_by_trainer" db:"filled_by_trainer"`
	SubmittedAt     time.Time         `json:"submitted_at" db:"submitted_at"`
}
