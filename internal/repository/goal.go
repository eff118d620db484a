package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID int64) (*model.Goal, error)
	Goals(ctx context.Context, filter model.GoalFilter, limit, offset int) ([]*model.Goal, error)
	Count(ctx context.Context, filter model.GoalFilter) (int, error)
	WithTx(tx *sqlx.Tx) GoalRepository
}

type goalRepository struct {
	db sqlx.ExtContext
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// WithTx returns a repository whose statements run inside tx.
func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{db: tx}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (owner_id, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	return sqlx.GetContext(ctx, r.db, &goal.ID, query,
		goal.OwnerID,
		goal.Name,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
}

func (r *goalRepository) ByID(ctx context.Context, goalID int64) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals returns goals matching filter in creation order. A non-positive limit
// returns every match.
func (r *goalRepository) Goals(ctx context.Context, filter model.GoalFilter, limit, offset int) ([]*model.Goal, error) {
	var goals []*model.Goal

	where, args := goalWhere(filter)
	query := `SELECT * FROM goals` + where + ` ORDER BY id ASC`

	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	err := sqlx.SelectContext(ctx, r.db, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Count(ctx context.Context, filter model.GoalFilter) (int, error) {
	var count int

	where, args := goalWhere(filter)
	query := `SELECT COUNT(*) FROM goals` + where

	err := sqlx.GetContext(ctx, r.db, &count, query, args...)
	return count, err
}

// goalWhere builds the WHERE clause shared by Goals and Count.
func goalWhere(filter model.GoalFilter) (string, []any) {
	if filter.NameContains == "" {
		return "", nil
	}

	pattern := "%" + escapeLike(strings.ToLower(filter.NameContains)) + "%"
	return ` WHERE LOWER(name) LIKE $1 ESCAPE '\'`, []any{pattern}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
