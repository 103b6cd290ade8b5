package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses accepted on a subscription.
const (
	PaymentStatusPaid         = "paid"
	PaymentStatusFree         = "free"
	PaymentStatusFreeTrial    = "free_trial"
	PaymentStatusPending      = "pending"
	PaymentStatusInstallments = "installments"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Subscription struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ClientID        uuid.UUID  `json:"client_id" db:"client_id"`
	PackageID       *int64     `json:"package_id" db:"package_id"`
	StartDate       *time.Time `json:"start_date" db:"start_date"`
	EndDate         *time.Time `json:"end_date" db:"end_date"`
	DurationValue   *int       `json:"duration_value" db:"duration_value"`
	DurationUnit    string     `json:"duration_unit" db:"duration_unit"`
	PaymentStatus   string     `json:"payment_status" db:"payment_status"`
	PaymentMethod   string     `json:"payment_method" db:"payment_method"`
	PriceBeforeDisc *float64   `json:"price_before_disc" db:"price_before_disc"`
	DiscountApplied bool       `json:"discount_applied" db:"discount_applied"`
	DiscountType    string     `json:"discount_type" db:"discount_type"`
	DiscountValue   *float64   `json:"discount_value" db:"discount_value"`
	// PriceAfterDisc is denormalized from the discount fields at write time.
	PriceAfterDisc *float64   `json:"price_after_disc" db:"price_after_disc"`
	OnHold         bool       `json:"on_hold" db:"on_hold"`
	HoldStartDate  *time.Time `json:"hold_start_date" db:"hold_start_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	Installments []*Installment `json:"installments,omitempty" db:"-"`
}
