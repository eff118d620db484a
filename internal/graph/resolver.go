// Package graph exposes goals and tasks as a GraphQL schema.
package graph

import (
	"github.com/templui/goalgraph/internal/service"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	goals *service.GoalService
	tasks *service.TaskService
	users *service.UserService

	defaultPageSize int
	maxPageSize     int
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

func NewResolver(goals *service.GoalService, tasks *service.TaskService, users *service.UserService, opts Options) *Resolver {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.DefaultPageSize <= 0 || opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = min(20, opts.MaxPageSize)
	}

	return &Resolver{
		goals:           goals,
		tasks:           tasks,
		users:           users,
		defaultPageSize: opts.DefaultPageSize,
		maxPageSize:     opts.MaxPageSize,
	}
}
