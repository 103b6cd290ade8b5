package jobs

import (
	"context"
	"time"

	"coachcrm/internal/analytics"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StatsRefreshService rebuilds the cached dashboard stats for every trainer
// so the dashboard stays warm between requests.
type StatsRefreshService struct {
	analyticsService analytics.Service
	trainerRepo      repositories.TrainerRepository
}

type StatsRefreshResult struct {
	TrainersProcessed int
	LastRefreshAt     time.Time
}

func NewStatsRefreshService(analyticsService analytics.Service, trainerRepo repositories.TrainerRepository) *StatsRefreshService {
	return &StatsRefreshService{
		analyticsService: analyticsService,
		trainerRepo:      trainerRepo,
	}
}

func (s *StatsRefreshService) RefreshTrainerStats(ctx context.Context, trainerID uuid.UUID) error {
	if _, err := s.analyticsService.RefreshTrainerStats(ctx, trainerID); err != nil {
		log.Error().Err(err).Str("trainer_id", trainerID.String()).Msg("failed to refresh trainer stats")
		return err
	}
	return nil
}

func (s *StatsRefreshService) RefreshAllTrainerStats(ctx context.Context) (*StatsRefreshResult, error) {
	trainers, err := s.trainerRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	result := &StatsRefreshResult{LastRefreshAt: time.Now()}
	for _, trainer := range trainers {
		if err := s.RefreshTrainerStats(ctx, trainer.ID); err != nil {
			continue
		}
		result.TrainersProcessed++
	}

	log.Info().Int("trainers", result.TrainersProcessed).Msg("trainer stats refresh complete")
	return result, nil
}
