package jobs

import (
	"context"
	"time"

	"coachcrm/internal/repositories"

	"github.com/rs/zerolog/log"
)

// TaskSweepService flips open tasks whose due date has passed to overdue.
// It never creates tasks; generation happens only inside onboarding
// requests.
type TaskSweepService struct {
	taskRepo    repositories.TaskRepository
	trainerRepo repositories.TrainerRepository
}

type TaskSweepResult struct {
	TasksMarkedOverdue int64
	SweptAt            time.Time
}

func NewTaskSweepService(taskRepo repositories.TaskRepository, trainerRepo repositories.TrainerRepository) *TaskSweepService {
	return &TaskSweepService{taskRepo: taskRepo, trainerRepo: trainerRepo}
}

func (s *TaskSweepService) SweepOverdueTasks(ctx context.Context) (*TaskSweepResult, error) {
	trainers, err := s.trainerRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	result := &TaskSweepResult{SweptAt: time.Now()}
	for _, trainer := range trainers {
		marked, err := s.taskRepo.MarkOverdue(ctx, trainer.ID, result.SweptAt)
		if err != nil {
			log.Error().Err(err).Str("trainer_id", trainer.ID.String()).Msg("overdue sweep failed for trainer")
			continue
		}
		result.TasksMarkedOverdue += marked
	}

	if result.TasksMarkedOverdue > 0 {
		log.Info().Int64("tasks", result.TasksMarkedOverdue).Msg("marked tasks overdue")
	}
	return result, nil
}
