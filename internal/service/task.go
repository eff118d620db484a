package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/db"
	"github.com/templui/goalgraph/internal/metrics"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/repository"
	"github.com/templui/goalgraph/internal/validation"
)

type TaskService struct {
	db               *sqlx.DB
	taskRepo         repository.TaskRepository
	goalRepo         repository.GoalRepository
	enforceOwnership bool
}

func NewTaskService(
	database *sqlx.DB,
	taskRepo repository.TaskRepository,
	goalRepo repository.GoalRepository,
	enforceOwnership bool,
) *TaskService {
	return &TaskService{
		db:               database,
		taskRepo:         taskRepo,
		goalRepo:         goalRepo,
		enforceOwnership: enforceOwnership,
	}
}

func (s *TaskService) ByID(ctx context.Context, taskID int64) (*model.Task, error) {
	task, err := s.taskRepo.ByID(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, &NotFoundError{Resource: "task", ID: taskID, Err: err}
	}
	if err != nil {
		return nil, storageErr("load task", err)
	}
	return task, nil
}

// UpdateProgress sets a task's current value and returns the parent goal.
// The value is stored as given; clamping only happens when progress is read.
//
// Callers are not required to own the goal unless ownership enforcement is
// enabled, in which case a foreign task is reported as not found.
func (s *TaskService) UpdateProgress(ctx context.Context, callerID string, taskID int64, value float64) (*model.Goal, error) {
	err := validation.ValidateValue(value)
	if err != nil {
		return nil, invalid("currentValue", err)
	}

	var goal *model.Goal
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		taskRepo := s.taskRepo.WithTx(tx)
		goalRepo := s.goalRepo.WithTx(tx)

		task, err := taskRepo.ByID(ctx, taskID)
		if errors.Is(err, repository.ErrTaskNotFound) {
			return &NotFoundError{Resource: "task", ID: taskID, Err: err}
		}
		if err != nil {
			return err
		}

		goal, err = goalRepo.ByID(ctx, task.GoalID)
		if err != nil {
			return err
		}

		if goal.OwnerID != callerID {
			if s.enforceOwnership {
				return &NotFoundError{Resource: "task", ID: taskID, Err: repository.ErrTaskNotFound}
			}
			slog.Warn("task progress updated by non-owner",
				"task_id", taskID,
				"goal_id", goal.ID,
				"owner_id", goal.OwnerID,
				"caller_id", callerID,
			)
		}

		return taskRepo.UpdateCurrentValue(ctx, taskID, value)
	})
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to update task progress", "error", err, "task_id", taskID)
		}
		return nil, storageErr("update task progress", err)
	}

	metrics.TaskProgressUpdates.Inc()
	slog.Debug("task progress updated", "task_id", taskID, "goal_id", goal.ID, "current_value", value)

	return goal, nil
}
