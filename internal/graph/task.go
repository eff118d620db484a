package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/templui/goalgraph/internal/model"
)

type taskResolver struct {
	root *Resolver
	task *model.Task
	goal *model.Goal // parent when already known
}

func (r *taskResolver) ID() graphql.ID {
	return taskID(r.task.ID)
}

func (r *taskResolver) Pk(ctx context.Context) (int32, error) {
	return intPK(ctx, kindTask, r.task.ID)
}

func (r *taskResolver) Name() string {
	return r.task.Name
}

func (r *taskResolver) StartingValue() float64 {
	return r.task.StartingValue
}

func (r *taskResolver) TargetValue() float64 {
	return r.task.TargetValue
}

func (r *taskResolver) CurrentValue() float64 {
	return r.task.CurrentValue
}

func (r *taskResolver) Progress() float64 {
	return r.task.Progress()
}

func (r *taskResolver) Goal(ctx context.Context) (*goalResolver, error) {
	goal := r.goal
	if goal == nil {
		var err error
		goal, err = r.root.goals.ByID(ctx, r.task.GoalID)
		if err != nil {
			return nil, clientError(ctx, err)
		}
	}
	return newGoalResolver(r.root, goal, nil), nil
}
