package services

import (
	"strings"

	"coachcrm/internal/fieldmap"
	"coachcrm/internal/models"

	"github.com/google/uuid"
)

const (
	ProfileCompleted    = "Completed"
	ProfileNotCompleted = "Not Completed"
)

// EvaluateProfileCompletion derives the completion status of a fully-loaded
// client aggregate. It is computed fresh on every read; nothing about it is
// persisted or cached. The forms map supplies question declarations for the
// client's submission history, keyed by form id.
func EvaluateProfileCompletion(client *models.Client, forms map[uuid.UUID]*models.Form) string {
	history := submissionHistory(client, forms)

	for _, field := range fieldmap.CoreFields {
		if fieldmap.Resolve(field, directValue(client, field), history) == "" {
			return ProfileNotCompleted
		}
	}

	if len(client.TeamAssignments) == 0 {
		return ProfileNotCompleted
	}

	if len(client.Subscriptions) == 0 {
		return ProfileNotCompleted
	}
	// Subscriptions are loaded newest first; index 0 is the current one.
	sub := client.Subscriptions[0]

	if sub.StartDate == nil || sub.DurationValue == nil || sub.DurationUnit == "" ||
		sub.PaymentStatus == "" || sub.PackageID == nil {
		return ProfileNotCompleted
	}
	if client.RegistrationDate == nil {
		return ProfileNotCompleted
	}

	if !isFreeStatus(sub.PaymentStatus) {
		if sub.PaymentMethod == "" || sub.PriceBeforeDisc == nil {
			return ProfileNotCompleted
		}
		if sub.DiscountApplied && sub.PriceAfterDisc == nil {
			return ProfileNotCompleted
		}
	}

	if strings.EqualFold(sub.PaymentStatus, models.PaymentStatusInstallments) {
		if len(sub.Installments) == 0 {
			return ProfileNotCompleted
		}
		for _, inst := range sub.Installments {
			if inst.Amount == nil {
				return ProfileNotCompleted
			}
		}
	}

	return ProfileCompleted
}

// submissionHistory orders the client's full submission history newest
// first for resolution; forms without a known definition still contribute
// their answers through the shape fallback.
func submissionHistory(client *models.Client, forms map[uuid.UUID]*models.Form) []fieldmap.Submission {
	history := make([]fieldmap.Submission, 0, len(client.Submissions))
	for _, sub := range client.Submissions {
		entry := fieldmap.Submission{Answers: sub.Answers}
		if form, ok := forms[sub.FormID]; ok && form != nil {
			entry.Questions = form.Questions
		}
		history = append(history, entry)
	}
	return history
}

func directValue(client *models.Client, field fieldmap.Field) string {
	switch field {
	case fieldmap.FieldFullName:
		return client.FullName
	case fieldmap.FieldPhone:
		return client.Phone
	case fieldmap.FieldEmail:
		return client.Email
	case fieldmap.FieldGender:
		return client.Gender
	case fieldmap.FieldAge:
		return client.Age
	case fieldmap.FieldSource:
		return client.Source
	}
	return ""
}

func isFreeStatus(status string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(status, "_", " "))
	return normalized == "free" || normalized == "free trial"
}
