package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionImage is a payment-proof upload attached to an installment.
type TransactionImage struct {
	ID            uuid.UUID `json:"id" db:"id"`
	InstallmentID uuid.UUID `json:"installment_id" db:"installment_id"`
	ObjectKey     string    `json:"object_key" db:"object_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// SubscriptionImage is a contract or receipt upload attached to a subscription.
type SubscriptionImage struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id" db:"subscription_id"`
	ObjectKey      string    `json:"object_key" db:"object_key"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
