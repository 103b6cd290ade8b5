package services

import (
	"coachcrm/internal/models"
)

// DiscountInput carries the raw discount fields from a subscription payload.
type DiscountInput struct {
	PriceBeforeDisc *float64
	DiscountApplied bool
	DiscountType    string
	DiscountValue   *float64
}

// ApplyDiscount derives the persisted discount fields. The legacy defaulting
// rules are reproduced exactly because completeness checks depend on them:
// a supplied discount value forces DiscountApplied true, and the type
// defaults to percentage when a value arrives without one. The returned
// price is nil when no discount applies or the base price is absent.
func ApplyDiscount(in DiscountInput) (priceAfter *float64, applied bool, discountType string) {
	applied = in.DiscountApplied
	discountType = in.DiscountType

	if in.DiscountValue != nil {
		applied = true
		if discountType == "" {
			discountType = models.DiscountTypePercentage
		}
	}

	if !applied || in.PriceBeforeDisc == nil {
		return nil, applied, discountType
	}

	base := *in.PriceBeforeDisc
	value := 0.0
	if in.DiscountValue != nil {
		value = *in.DiscountValue
	}

	var result float64
	switch discountType {
	case models.DiscountTypeFixed:
		result = base - value
	default:
		result = base * (1 - value/100)
	}
	return &result, applied, discountType
}
