package graph

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/templui/goalgraph/internal/service"
)

// Cursors are opaque to clients; internally they encode a zero-based offset
// into the filtered, id-ordered goal list.
const cursorPrefix = "offset:"

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, &service.ValidationError{Field: "after", Message: "malformed cursor"}
	}

	offset, err := strconv.Atoi(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil || !strings.HasPrefix(string(raw), cursorPrefix) || offset < 0 {
		return 0, &service.ValidationError{Field: "after", Message: "malformed cursor"}
	}
	return offset, nil
}

type goalConnectionResolver struct {
	edges      []*goalEdgeResolver
	offset     int
	totalCount int
}

func (r *goalConnectionResolver) Edges() []*goalEdgeResolver {
	return r.edges
}

func (r *goalConnectionResolver) TotalCount() int32 {
	return int32(r.totalCount)
}

func (r *goalConnectionResolver) PageInfo() *pageInfoResolver {
	info := &pageInfoResolver{
		hasPreviousPage: r.offset > 0,
		hasNextPage:     r.offset+len(r.edges) < r.totalCount,
	}
	if len(r.edges) > 0 {
		start := r.edges[0].cursor
		end := r.edges[len(r.edges)-1].cursor
		info.startCursor = &start
		info.endCursor = &end
	}
	return info
}

type goalEdgeResolver struct {
	cursor string
	node   *goalResolver
}

func (r *goalEdgeResolver) Cursor() string {
	return r.cursor
}

func (r *goalEdgeResolver) Node() *goalResolver {
	return r.node
}

type pageInfoResolver struct {
	hasNextPage     bool
	hasPreviousPage bool
	startCursor     *string
	endCursor       *string
}

func (r *pageInfoResolver) HasNextPage() bool {
	return r.hasNextPage
}

func (r *pageInfoResolver) HasPreviousPage() bool {
	return r.hasPreviousPage
}

func (r *pageInfoResolver) StartCursor() *string {
	return r.startCursor
}

func (r *pageInfoResolver) EndCursor() *string {
	return r.endCursor
}
