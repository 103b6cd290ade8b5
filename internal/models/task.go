package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskCategoryInstallment = "Installment"

	TaskTypeAutomatic = "automatic"
	TaskTypeUser      = "user"

	TaskStatusOpen    = "open"
	TaskStatusClosed  = "closed"
	TaskStatusOverdue = "overdue"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TrainerID   uuid.UUID  `json:"trainer_id" db:"trainer_id"`
	ClientID    uuid.UUID  `json:"client_id" db:"client_id"`
	Category    string     `json:"category" db:"category"`
	TaskType    string     `json:"task_type" db:"task_type"`
	Status      string     `json:"status" db:"status"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// DeletedTaskMarker records a trainer's manual deletion of an automatic
// task. Its presence permanently suppresses regeneration for the tuple.
type DeletedTaskMarker struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TrainerID uuid.UUID `json:"trainer_id" db:"trainer_id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Category  string    `json:"category" db:"category"`
	TaskType  string    `json:"task_type" db:"task_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
