package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is the aggregate root for onboarding. Profile scalars may be blank
// when the trainer relies on an intake form; reads resolve them against the
// client's submission history.
type Client struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	TrainerID        uuid.UUID  `json:"trainer_id" db:"trainer_id"`
	FullName         string     `json:"full_name" db:"full_name"`
	Phone            string     `json:"phone" db:"phone"`
	Email            string     `json:"email" db:"email"`
	Gender           string     `json:"gender" db:"gender"`
	Age              string     `json:"age" db:"age"`
	Source           string     `json:"source" db:"source"`
	Level            string     `json:"level" db:"level"`
	RegistrationDate *time.Time `json:"registration_date" db:"registration_date"`
	// Goals and Injuries arrive as arrays and are stored comma-delimited.
	Goals          string     `json:"goals" db:"goals"`
	Injuries       string     `json:"injuries" db:"injuries"`
	SelectedFormID *uuid.UUID `json:"selected_form_id" db:"selected_form_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// Loaded relations (nil unless the repository hydrates them).
	Subscriptions   []*Subscription      `json:"subscriptions,omitempty" db:"-"`
	Notes           []*Note              `json:"notes,omitempty" db:"-"`
	Submissions     []*CheckInSubmission `json:"submissions,omitempty" db:"-"`
	TeamAssignments []*TeamAssignment    `json:"team_assignments,omitempty" db:"-"`
	Labels          []*Label             `json:"labels,omitempty" db:"-"`

	// ProfileCompletion is derived per read, never persisted.
	ProfileCompletion string `json:"profile_completion,omitempty" db:"-"`
}
