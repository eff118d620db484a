package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/db"
	"github.com/templui/goalgraph/internal/metrics"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/repository"
	"github.com/templui/goalgraph/internal/validation"
)

// TaskSpec describes a task created together with its goal. Nil values take
// the model defaults.
type TaskSpec struct {
	Name          string
	StartingValue *float64
	TargetValue   *float64
}

type CreateGoalInput struct {
	Name  string
	Tasks []TaskSpec
}

type GoalService struct {
	db       *sqlx.DB
	goalRepo repository.GoalRepository
	taskRepo repository.TaskRepository
}

func NewGoalService(
	database *sqlx.DB,
	goalRepo repository.GoalRepository,
	taskRepo repository.TaskRepository,
) *GoalService {
	return &GoalService{
		db:       database,
		goalRepo: goalRepo,
		taskRepo: taskRepo,
	}
}

// Create stores a goal owned by ownerID together with its tasks in a single
// transaction. Each task starts with CurrentValue equal to StartingValue.
func (s *GoalService) Create(ctx context.Context, ownerID string, input CreateGoalInput) (*model.Goal, []*model.Task, error) {
	if ownerID == "" {
		return nil, nil, ErrUnauthenticated
	}

	err := validateCreateGoal(input)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	goal := &model.Goal{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tasks := make([]*model.Task, 0, len(input.Tasks))
	for _, spec := range input.Tasks {
		task := &model.Task{
			Name:          strings.TrimSpace(spec.Name),
			StartingValue: model.DefaultStartingValue,
			TargetValue:   model.DefaultTargetValue,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if spec.StartingValue != nil {
			task.StartingValue = *spec.StartingValue
		}
		if spec.TargetValue != nil {
			task.TargetValue = *spec.TargetValue
		}
		task.CurrentValue = task.StartingValue
		tasks = append(tasks, task)
	}

	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		goalRepo := s.goalRepo.WithTx(tx)
		taskRepo := s.taskRepo.WithTx(tx)

		err := goalRepo.Create(ctx, goal)
		if err != nil {
			return fmt.Errorf("failed to insert goal: %w", err)
		}

		for i, task := range tasks {
			task.GoalID = goal.ID
			err := taskRepo.Create(ctx, task)
			if err != nil {
				return fmt.Errorf("failed to insert task %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("failed to create goal", "error", err, "owner_id", ownerID)
		return nil, nil, storageErr("create goal", err)
	}

	metrics.GoalsCreated.Inc()
	metrics.TasksCreated.Add(float64(len(tasks)))
	slog.Info("goal created", "goal_id", goal.ID, "owner_id", ownerID, "tasks", len(tasks))

	return goal, tasks, nil
}

func validateCreateGoal(input CreateGoalInput) error {
	err := validation.ValidateName("goal name", input.Name)
	if err != nil {
		return invalid("name", err)
	}

	for i, spec := range input.Tasks {
		field := fmt.Sprintf("tasks[%d]", i)

		err := validation.ValidateName("task name", spec.Name)
		if err != nil {
			return invalid(field+".name", err)
		}
		if spec.StartingValue != nil {
			err := validation.ValidateValue(*spec.StartingValue)
			if err != nil {
				return invalid(field+".startingValue", err)
			}
		}
		if spec.TargetValue != nil {
			err := validation.ValidateValue(*spec.TargetValue)
			if err != nil {
				return invalid(field+".targetValue", err)
			}
		}
	}

	return nil
}

func (s *GoalService) ByID(ctx context.Context, goalID int64) (*model.Goal, error) {
	goal, err := s.goalRepo.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, &NotFoundError{Resource: "goal", ID: goalID, Err: err}
	}
	if err != nil {
		return nil, storageErr("load goal", err)
	}
	return goal, nil
}

// Goals lists goals matching filter in creation order. limit <= 0 means no limit.
func (s *GoalService) Goals(ctx context.Context, filter model.GoalFilter, limit, offset int) ([]*model.Goal, error) {
	goals, err := s.goalRepo.Goals(ctx, filter, limit, offset)
	if err != nil {
		return nil, storageErr("list goals", err)
	}
	return goals, nil
}

func (s *GoalService) CountGoals(ctx context.Context, filter model.GoalFilter) (int, error) {
	count, err := s.goalRepo.Count(ctx, filter)
	if err != nil {
		return 0, storageErr("count goals", err)
	}
	return count, nil
}

func (s *GoalService) Tasks(ctx context.Context, goalID int64) ([]*model.Task, error) {
	tasks, err := s.taskRepo.ByGoal(ctx, goalID)
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	return tasks, nil
}

// TasksByGoal loads the tasks of several goals at once, keyed by goal id.
// Goals without tasks map to an empty slice.
func (s *GoalService) TasksByGoal(ctx context.Context, goalIDs []int64) (map[int64][]*model.Task, error) {
	tasks, err := s.taskRepo.ByGoals(ctx, goalIDs)
	if err != nil {
		return nil, storageErr("list tasks", err)
	}

	byGoal := make(map[int64][]*model.Task, len(goalIDs))
	for _, id := range goalIDs {
		byGoal[id] = []*model.Task{}
	}
	for _, t := range tasks {
		byGoal[t.GoalID] = append(byGoal[t.GoalID], t)
	}
	return byGoal, nil
}
