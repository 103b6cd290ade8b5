package handlers

import (
	"errors"
	"net/http"

	"coachcrm/internal/common"
	"coachcrm/internal/repositories"
	"coachcrm/internal/services"

	"github.com/labstack/echo/v4"
)

// TaskHandlers handles HTTP requests for the trainer's task list.
type TaskHandlers struct {
	taskService services.TaskService
}

func NewTaskHandlers(taskService services.TaskService) *TaskHandlers {
	return &TaskHandlers{taskService: taskService}
}

// ListTasks handles GET /v1/tasks
func (h *TaskHandlers) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tasks, err := h.taskService.ListTasks(ctx, trainerID, c.QueryParam("status"))
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve tasks: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// DeleteTask handles DELETE /v1/tasks/:id. Deleting an automatic task also
// suppresses its regeneration for that client.
func (h *TaskHandlers) DeleteTask(c echo.Context) error {
	ctx := c.Request().Context()

	trainerID, ok := common.GetTrainerIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	taskID, err := common.ValidateUUID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.taskService.DeleteTask(ctx, trainerID, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "task")
		}
		return common.SendServerError(c, "Failed to delete task: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Task deleted successfully",
	})
}
