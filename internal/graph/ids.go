package graph

import (
	"context"
	"fmt"
	"math"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/templui/goalgraph/internal/service"
)

const (
	kindGoal  = "Goal"
	kindTask  = "Task"
	kindOwner = "Owner"
)

func goalID(id int64) graphql.ID   { return relay.MarshalID(kindGoal, id) }
func taskID(id int64) graphql.ID   { return relay.MarshalID(kindTask, id) }
func ownerID(id string) graphql.ID { return relay.MarshalID(kindOwner, id) }

// decodeIntID unpacks a global ID of the given kind into its primary key.
func decodeIntID(id graphql.ID, kind string) (int64, error) {
	if relay.UnmarshalKind(id) != kind {
		return 0, &service.ValidationError{Field: "id", Message: "not a " + kind + " id"}
	}

	var pk int64
	err := relay.UnmarshalSpec(id, &pk)
	if err != nil {
		return 0, &service.ValidationError{Field: "id", Message: "malformed " + kind + " id"}
	}
	return pk, nil
}

// intPK narrows a primary key to GraphQL's 32-bit Int. Larger keys are still
// reachable through their global id.
func intPK(ctx context.Context, kind string, id int64) (int32, error) {
	if id > math.MaxInt32 || id < math.MinInt32 {
		return 0, clientError(ctx, fmt.Errorf("%s pk %d exceeds the GraphQL Int range", kind, id))
	}
	return int32(id), nil
}
