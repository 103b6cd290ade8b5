package analytics

import (
	"context"
	"time"

	"coachcrm/internal/caching"
	"coachcrm/internal/repositories"
	"coachcrm/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const statsCacheTTL = 5 * time.Minute

// TrainerStats is the dashboard summary for one trainer.
type TrainerStats struct {
	TotalClients      int     `json:"total_clients"`
	CompletedProfiles int     `json:"completed_profiles"`
	CompletionRate    float64 `json:"completion_rate"`
	OpenTasks         int     `json:"open_tasks"`
}

type Service interface {
	// GetTrainerStats serves the dashboard, preferring the cached copy.
	GetTrainerStats(ctx context.Context, trainerID uuid.UUID) (*TrainerStats, error)
	// RefreshTrainerStats recomputes and caches the stats; used by the
	// background refresh job.
	RefreshTrainerStats(ctx context.Context, trainerID uuid.UUID) (*TrainerStats, error)
}

type service struct {
	clientService services.ClientService
	taskRepo      repositories.TaskRepository
	cache         caching.CacheService
}

func NewService(clientService services.ClientService, taskRepo repositories.TaskRepository, cache caching.CacheService) Service {
	return &service{clientService: clientService, taskRepo: taskRepo, cache: cache}
}

func (s *service) GetTrainerStats(ctx context.Context, trainerID uuid.UUID) (*TrainerStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetTrainerStats(ctx, trainerID)
		if err != nil {
			log.Warn().Err(err).Str("trainer_id", trainerID.String()).Msg("stats cache read failed")
		} else if cached != nil {
			return statsFromMap(cached), nil
		}
	}
	return s.RefreshTrainerStats(ctx, trainerID)
}

func (s *service) RefreshTrainerStats(ctx context.Context, trainerID uuid.UUID) (*TrainerStats, error) {
	clients, err := s.clientService.ListClients(ctx, trainerID, "")
	if err != nil {
		return nil, err
	}

	stats := &TrainerStats{TotalClients: len(clients)}
	for _, client := range clients {
		if client.ProfileCompletion == services.ProfileCompleted {
			stats.CompletedProfiles++
		}
	}
	if stats.TotalClients > 0 {
		stats.CompletionRate = float64(stats.CompletedProfiles) / float64(stats.TotalClients)
	}

	if stats.OpenTasks, err = s.taskRepo.CountOpenByTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		payload := map[string]interface{}{
			"total_clients":      stats.TotalClients,
			"completed_profiles": stats.CompletedProfiles,
			"completion_rate":    stats.CompletionRate,
			"open_tasks":         stats.OpenTasks,
		}
		if err := s.cache.SetTrainerStats(ctx, trainerID, payload, statsCacheTTL); err != nil {
			log.Warn().Err(err).Str("trainer_id", trainerID.String()).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func statsFromMap(m map[string]interface{}) *TrainerStats {
	stats := &TrainerStats{}
	if v, ok := m["total_clients"].(float64); ok {
		stats.TotalClients = int(v)
	}
	if v, ok := m["completed_profiles"].(float64); ok {
		stats.CompletedProfiles = int(v)
	}
	if v, ok := m["completion_rate"].(float64); ok {
		stats.CompletionRate = v
	}
	if v, ok := m["open_tasks"].(float64); ok {
		stats.OpenTasks = int(v)
	}
	return stats
}
