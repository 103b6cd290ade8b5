package services

import (
	"context"
	"fmt"
	"time"

	"coachcrm/internal/models"
	"coachcrm/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InstallmentTaskInput carries everything the generator needs to decide
// whether an installment reminder should exist for a client.
type InstallmentTaskInput struct {
	TrainerID  uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	DueDate    time.Time
	Amount     *float64
}

type TaskService interface {
	// GenerateInstallmentTask creates an automatic installment reminder
	// unless a deletion marker suppresses it or an open one already exists.
	// It runs against the caller's executor so onboarding can include it in
	// its transaction.
	GenerateInstallmentTask(ctx context.Context, q repositories.Querier, input InstallmentTaskInput) error
	ListTasks(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error)
	DeleteTask(ctx context.Context, trainerID, taskID uuid.UUID) error
}

type taskService struct {
	db         TxBeginner
	taskRepo   repositories.TaskRepository
	markerRepo repositories.DeletedTaskMarkerRepository
}

func NewTaskService(db TxBeginner, taskRepo repositories.TaskRepository, markerRepo repositories.DeletedTaskMarkerRepository) TaskService {
	return &taskService{db: db, taskRepo: taskRepo, markerRepo: markerRepo}
}

func (s *taskService) GenerateInstallmentTask(ctx context.Context, q repositories.Querier, input InstallmentTaskInput) error {
	suppressed, err := s.markerRepo.Exists(ctx, q, input.TrainerID, input.ClientID, models.TaskCategoryInstallment, models.TaskTypeAutomatic)
	if err != nil {
		return fmt.Errorf("checking deletion marker: %w", err)
	}
	if suppressed {
		log.Debug().Str("client_id", input.ClientID.String()).Msg("installment task suppressed by deletion marker")
		return nil
	}

	exists, err := s.taskRepo.OpenTaskExists(ctx, q, input.TrainerID, input.ClientID, models.TaskCategoryInstallment, models.TaskTypeAutomatic)
	if err != nil {
		return fmt.Errorf("checking open tasks: %w", err)
	}
	if exists {
		return nil
	}

	due := input.DueDate
	task := &models.Task{
		ID:        uuid.New(),
		TrainerID: input.TrainerID,
		ClientID:  input.ClientID,
		Category:  models.TaskCategoryInstallment,
		TaskType:  models.TaskTypeAutomatic,
		Status:    models.TaskStatusOpen,
		DueDate:   &due,
		Title:     fmt.Sprintf("Installment due for %s", input.ClientName),
		Description: fmt.Sprintf("Collect the installment payment from %s due on %s.",
			input.ClientName, due.Format("2006-01-02")),
	}
	if input.Amount != nil {
		task.Description = fmt.Sprintf("Collect the installment payment of %.2f from %s due on %s.",
			*input.Amount, input.ClientName, due.Format("2006-01-02"))
	}

	if err := s.taskRepo.CreateAutomatic(ctx, q, task); err != nil {
		return fmt.Errorf("creating installment task: %w", err)
	}
	return nil
}

func (s *taskService) ListTasks(ctx context.Context, trainerID uuid.UUID, status string) ([]*models.Task, error) {
	return s.taskRepo.ListByTrainer(ctx, trainerID, status)
}

// DeleteTask removes a task and, for automatic tasks, records a deletion
// marker in the same transaction so the generator never recreates it.
func (s *taskService) DeleteTask(ctx context.Context, trainerID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, trainerID, taskID)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.taskRepo.Delete(ctx, tx, trainerID, taskID); err != nil {
		return err
	}

	if task.TaskType == models.TaskTypeAutomatic {
		marker := &models.DeletedTaskMarker{
			ID:        uuid.New(),
			TrainerID: trainerID,
			ClientID:  task.ClientID,
			Category:  task.Category,
			TaskType:  task.TaskType,
		}
		if err := s.markerRepo.Create(ctx, tx, marker); err != nil {
			return fmt.Errorf("recording deletion marker: %w", err)
		}
	}

	return tx.Commit(ctx)
}
