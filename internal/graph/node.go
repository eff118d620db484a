package graph

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// nodeResolver backs the Node interface; exactly one field is set.
type nodeResolver struct {
	goal  *goalResolver
	task  *taskResolver
	owner *ownerResolver
}

func (r *nodeResolver) ID() graphql.ID {
	switch {
	case r.goal != nil:
		return r.goal.ID()
	case r.task != nil:
		return r.task.ID()
	default:
		return r.owner.ID()
	}
}

func (r *nodeResolver) ToGoal() (*goalResolver, bool) {
	return r.goal, r.goal != nil
}

func (r *nodeResolver) ToTask() (*taskResolver, bool) {
	return r.task, r.task != nil
}

func (r *nodeResolver) ToOwner() (*ownerResolver, bool) {
	return r.owner, r.owner != nil
}
