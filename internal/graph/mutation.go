package graph

import (
	"context"

	"github.com/templui/goalgraph/internal/ctxkeys"
	"github.com/templui/goalgraph/internal/service"
)

type taskInput struct {
	Name          string
	StartingValue *float64
	TargetValue   *float64
}

type goalInput struct {
	Name  string
	Tasks *[]taskInput
}

type createGoalArgs struct {
	Input struct {
		Goal             goalInput
		ClientMutationID *string
	}
}

type createGoalPayloadResolver struct {
	goal             *goalResolver
	clientMutationID *string
}

func (r *createGoalPayloadResolver) Goal() *goalResolver       { return r.goal }
func (r *createGoalPayloadResolver) ClientMutationID() *string { return r.clientMutationID }

// CreateGoal stores a goal and its tasks for the authenticated caller.
func (r *Resolver) CreateGoal(ctx context.Context, args createGoalArgs) (*createGoalPayloadResolver, error) {
	input := service.CreateGoalInput{Name: args.Input.Goal.Name}
	if args.Input.Goal.Tasks != nil {
		for _, t := range *args.Input.Goal.Tasks {
			input.Tasks = append(input.Tasks, service.TaskSpec{
				Name:          t.Name,
				StartingValue: t.StartingValue,
				TargetValue:   t.TargetValue,
			})
		}
	}

	goal, tasks, err := r.goals.Create(ctx, callerID(ctx), input)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	return &createGoalPayloadResolver{
		goal:             newGoalResolver(r, goal, tasks),
		clientMutationID: args.Input.ClientMutationID,
	}, nil
}

type updateTaskProgressArgs struct {
	Input struct {
		TaskID           int32
		CurrentValue     float64
		ClientMutationID *string
	}
}

type updateTaskProgressPayloadResolver struct {
	goal             *goalResolver
	clientMutationID *string
}

func (r *updateTaskProgressPayloadResolver) Goal() *goalResolver       { return r.goal }
func (r *updateTaskProgressPayloadResolver) ClientMutationID() *string { return r.clientMutationID }

// UpdateTaskProgress overwrites a task's current value and returns the
// parent goal with freshly loaded tasks.
func (r *Resolver) UpdateTaskProgress(ctx context.Context, args updateTaskProgressArgs) (*updateTaskProgressPayloadResolver, error) {
	goal, err := r.tasks.UpdateProgress(ctx, callerID(ctx), int64(args.Input.TaskID), args.Input.CurrentValue)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	return &updateTaskProgressPayloadResolver{
		goal:             newGoalResolver(r, goal, nil),
		clientMutationID: args.Input.ClientMutationID,
	}, nil
}

func callerID(ctx context.Context) string {
	user := ctxkeys.User(ctx)
	if user == nil {
		return ""
	}
	return user.ID
}
