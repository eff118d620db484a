package graph

import (
	"context"
	"sync"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/templui/goalgraph/internal/model"
)

type goalResolver struct {
	root *Resolver
	goal *model.Goal

	mu    sync.Mutex
	tasks []*model.Task // nil until loaded
}

func newGoalResolver(root *Resolver, goal *model.Goal, tasks []*model.Task) *goalResolver {
	return &goalResolver{root: root, goal: goal, tasks: tasks}
}

// loadTasks fetches the goal's tasks once. Sibling fields (progress, tasks)
// resolve concurrently and share the result.
func (r *goalResolver) loadTasks(ctx context.Context) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tasks != nil {
		return r.tasks, nil
	}

	tasks, err := r.root.goals.Tasks(ctx, r.goal.ID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	r.tasks = tasks
	return tasks, nil
}

func (r *goalResolver) ID() graphql.ID {
	return goalID(r.goal.ID)
}

func (r *goalResolver) Pk(ctx context.Context) (int32, error) {
	return intPK(ctx, kindGoal, r.goal.ID)
}

func (r *goalResolver) Name() string {
	return r.goal.Name
}

func (r *goalResolver) Owner(ctx context.Context) (*ownerResolver, error) {
	user, err := r.root.users.ByID(ctx, r.goal.OwnerID)
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return &ownerResolver{user: user}, nil
}

func (r *goalResolver) Progress(ctx context.Context) (float64, error) {
	tasks, err := r.loadTasks(ctx)
	if err != nil {
		return 0, clientError(ctx, err)
	}
	return model.Progress(tasks), nil
}

func (r *goalResolver) Tasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := r.loadTasks(ctx)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	out := make([]*taskResolver, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &taskResolver{root: r.root, task: t, goal: r.goal})
	}
	return out, nil
}

func (r *goalResolver) CreatedAt() string {
	return r.goal.CreatedAt.UTC().Format(time.RFC3339)
}
