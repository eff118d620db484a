package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/model"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ByID(ctx context.Context, taskID int64) (*model.Task, error)
	ByGoal(ctx context.Context, goalID int64) ([]*model.Task, error)
	ByGoals(ctx context.Context, goalIDs []int64) ([]*model.Task, error)
	UpdateCurrentValue(ctx context.Context, taskID int64, value float64) error
	WithTx(tx *sqlx.Tx) TaskRepository
}

type taskRepository struct {
	db sqlx.ExtContext
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

// WithTx returns a repository whose statements run inside tx.
func (r *taskRepository) WithTx(tx *sqlx.Tx) TaskRepository {
	return &taskRepository{db: tx}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (goal_id, name, starting_value, target_value, current_value, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	return sqlx.GetContext(ctx, r.db, &task.ID, query,
		task.GoalID,
		task.Name,
		task.StartingValue,
		task.TargetValue,
		task.CurrentValue,
		task.CreatedAt,
		task.UpdatedAt,
	)
}

func (r *taskRepository) ByID(ctx context.Context, taskID int64) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, task, query, taskID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) ByGoal(ctx context.Context, goalID int64) ([]*model.Task, error) {
	var tasks []*model.Task
	query := `SELECT * FROM tasks WHERE goal_id = $1 ORDER BY id ASC`

	err := sqlx.SelectContext(ctx, r.db, &tasks, query, goalID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// ByGoals loads the tasks of several goals in one round trip.
func (r *taskRepository) ByGoals(ctx context.Context, goalIDs []int64) ([]*model.Task, error) {
	if len(goalIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM tasks WHERE goal_id IN (?) ORDER BY goal_id ASC, id ASC`, goalIDs)
	if err != nil {
		return nil, err
	}

	var tasks []*model.Task
	err = sqlx.SelectContext(ctx, r.db, &tasks, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateCurrentValue writes only current_value and updated_at of one task.
func (r *taskRepository) UpdateCurrentValue(ctx context.Context, taskID int64, value float64) error {
	query := `UPDATE tasks
	          SET current_value = $1, updated_at = $2
	          WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, value, time.Now(), taskID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}
