package graph

import (
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/templui/goalgraph/internal/model"
)

type ownerResolver struct {
	user *model.User
}

func (r *ownerResolver) ID() graphql.ID {
	return ownerID(r.user.ID)
}

func (r *ownerResolver) FirstName() string {
	return r.user.FirstName
}

func (r *ownerResolver) LastName() string {
	return r.user.LastName
}

func (r *ownerResolver) FullName() string {
	return r.user.FullName()
}
