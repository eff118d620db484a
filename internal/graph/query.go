package graph

import (
	"context"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/templui/goalgraph/internal/ctxkeys"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/service"
)

type goalFilterInput struct {
	NameContains *string
}

type goalsArgs struct {
	Filter *goalFilterInput
	First  *int32
	After  *string
}

// Goals lists goals matching the filter, paginated as a relay connection.
// An empty or missing filter lists every goal.
func (r *Resolver) Goals(ctx context.Context, args goalsArgs) (*goalConnectionResolver, error) {
	var filter model.GoalFilter
	if args.Filter != nil && args.Filter.NameContains != nil {
		filter.NameContains = *args.Filter.NameContains
	}

	limit := r.defaultPageSize
	if args.First != nil {
		if *args.First < 0 {
			return nil, clientError(ctx, &service.ValidationError{Field: "first", Message: "must not be negative"})
		}
		limit = min(int(*args.First), r.maxPageSize)
	}

	offset := 0
	if args.After != nil && *args.After != "" {
		after, err := decodeCursor(*args.After)
		if err != nil {
			return nil, clientError(ctx, err)
		}
		offset = after + 1
	}

	total, err := r.goals.CountGoals(ctx, filter)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	conn := &goalConnectionResolver{offset: offset, totalCount: total, edges: []*goalEdgeResolver{}}
	if limit == 0 || offset >= total {
		return conn, nil
	}

	goals, err := r.goals.Goals(ctx, filter, limit, offset)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	ids := make([]int64, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	tasks, err := r.goals.TasksByGoal(ctx, ids)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	for i, g := range goals {
		conn.edges = append(conn.edges, &goalEdgeResolver{
			cursor: encodeCursor(offset + i),
			node:   newGoalResolver(r, g, tasks[g.ID]),
		})
	}
	return conn, nil
}

type idArgs struct {
	ID graphql.ID
}

// Goal returns nil without an error when the goal does not exist.
func (r *Resolver) Goal(ctx context.Context, args idArgs) (*goalResolver, error) {
	pk, err := decodeIntID(args.ID, kindGoal)
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return r.goalByPK(ctx, pk)
}

func (r *Resolver) Task(ctx context.Context, args idArgs) (*taskResolver, error) {
	pk, err := decodeIntID(args.ID, kindTask)
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return r.taskByPK(ctx, pk)
}

func (r *Resolver) Node(ctx context.Context, args idArgs) (*nodeResolver, error) {
	switch relay.UnmarshalKind(args.ID) {
	case kindGoal:
		goal, err := r.Goal(ctx, args)
		if err != nil || goal == nil {
			return nil, err
		}
		return &nodeResolver{goal: goal}, nil
	case kindTask:
		task, err := r.Task(ctx, args)
		if err != nil || task == nil {
			return nil, err
		}
		return &nodeResolver{task: task}, nil
	case kindOwner:
		var id string
		err := relay.UnmarshalSpec(args.ID, &id)
		if err != nil || strings.TrimSpace(id) == "" {
			return nil, clientError(ctx, &service.ValidationError{Field: "id", Message: "malformed Owner id"})
		}
		user, err := r.users.ByID(ctx, id)
		if isNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, clientError(ctx, err)
		}
		return &nodeResolver{owner: &ownerResolver{user: user}}, nil
	default:
		return nil, clientError(ctx, &service.ValidationError{Field: "id", Message: "unknown node id"})
	}
}

// Me returns the caller's identity; anonymous callers get null.
func (r *Resolver) Me(ctx context.Context) *ownerResolver {
	user := ctxkeys.User(ctx)
	if user == nil {
		return nil
	}
	return &ownerResolver{user: user}
}

func (r *Resolver) goalByPK(ctx context.Context, pk int64) (*goalResolver, error) {
	goal, err := r.goals.ByID(ctx, pk)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return newGoalResolver(r, goal, nil), nil
}

func (r *Resolver) taskByPK(ctx context.Context, pk int64) (*taskResolver, error) {
	task, err := r.tasks.ByID(ctx, pk)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return &taskResolver{root: r, task: task}, nil
}
