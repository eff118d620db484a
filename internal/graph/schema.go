package graph

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"runtime/debug"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

//go:embed schema.graphql
var SDL string

// MaxDepth bounds goal -> task -> goal nesting in a single query.
const MaxDepth = 12

// NewSchema binds the SDL to r. The result is safe for concurrent use and is
// meant to be built once at startup.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(SDL, r,
		graphql.MaxDepth(MaxDepth),
		graphql.Logger(panicLogger{}),
	)
}

// Validate checks the SDL with gqlparser, which is stricter than the
// executor about type system rules.
func Validate() error {
	_, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL})
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return nil
}

// FormatSDL returns the schema pretty-printed in canonical form.
func FormatSDL() (string, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL})
	if err != nil {
		return "", fmt.Errorf("invalid schema: %w", err)
	}

	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(schema)

	return buf.String(), nil
}

// panicLogger reports resolver panics through slog instead of the standard logger.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	slog.ErrorContext(ctx, "graphql resolver panic", "panic", value, "stack", string(debug.Stack()))
}
