package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is free text attached at client creation. Notes are never updated.
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
