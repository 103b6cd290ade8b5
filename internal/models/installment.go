package models

import (
	"time"

	"github.com/google/uuid"
)

type Installment struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	SubscriptionID uuid.UUID  `json:"subscription_id" db:"subscription_id"`
	PaidDate       *time.Time `json:"paid_date" db:"paid_date"`
	Amount         *float64   `json:"amount" db:"amount"`
	Remaining      *float64   `json:"remaining" db:"remaining"`
	// NextInstallment stays nil when the submitted date fails to parse.
	NextInstallment *time.Time `json:"next_installment" db:"next_installment"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
