package services

import (
	"context"
	"fmt"
	"time"

	"coachcrm/internal/caching"
	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const formCacheTTL = 10 * time.Minute

// FormService resolves intake-form definitions for field mapping and
// completeness evaluation. Definitions change rarely, so reads go through
// the cache.
type FormService interface {
	// GetForm returns the form and verifies it belongs to the trainer.
	GetForm(ctx context.Context, trainerID, formID uuid.UUID) (*models.Form, error)
	// GetForms loads the distinct form definitions behind a client's
	// submission history, keyed by form id. Missing forms are skipped.
	GetForms(ctx context.Context, formIDs []uuid.UUID) (map[uuid.UUID]*models.Form, error)
}

type formService struct {
	formRepo repositories.FormRepository
	cache    caching.CacheService
}

func NewFormService(formRepo repositories.FormRepository, cache caching.CacheService) FormService {
	return &formService{formRepo: formRepo, cache: cache}
}

func (s *formService) GetForm(ctx context.Context, trainerID, formID uuid.UUID) (*models.Form, error) {
	form, err := s.load(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.TrainerID != trainerID {
		return nil, fmt.Errorf("%w: form %s does not belong to this trainer", ErrValidation, formID)
	}
	return form, nil
}

func (s *formService) GetForms(ctx context.Context, formIDs []uuid.UUID) (map[uuid.UUID]*models.Form, error) {
	forms := make(map[uuid.UUID]*models.Form, len(formIDs))
	for _, id := range formIDs {
		if _, ok := forms[id]; ok {
			continue
		}
		form, err := s.load(ctx, id)
		if err != nil {
			if err == repositories.ErrNotFound {
				continue
			}
			return nil, err
		}
		forms[id] = form
	}
	return forms, nil
}

func (s *formService) load(ctx context.Context, formID uuid.UUID) (*models.Form, error) {
	if s.cache != nil {
		cached, err := s.cache.GetForm(ctx, formID)
		if err != nil {
			log.Warn().Err(err).Str("form_id", formID.String()).Msg("form cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetForm(ctx, form, formCacheTTL); err != nil {
			log.Warn().Err(err).Str("form_id", formID.String()).Msg("form cache write failed")
		}
	}
	return form, nil
}
