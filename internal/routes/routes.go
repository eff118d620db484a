package routes

import (
	"net/http"

	"github.com/templui/goalgraph/internal/app"
	"github.com/templui/goalgraph/internal/handler"
	"github.com/templui/goalgraph/internal/metrics"
	"github.com/templui/goalgraph/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	gql := handler.NewGraphQLHandler(app.Schema, app.Cfg.GraphQLPlayground)
	health := handler.NewHealthHandler(app.DB)

	rateLimit := middleware.RateLimit(app.Cfg.RateLimitRequests, app.Cfg.RateLimitWindow)

	mux := http.NewServeMux()

	// GraphQL
	mux.Handle("POST /graphql", rateLimit(http.HandlerFunc(gql.Query)))
	mux.HandleFunc("GET /graphql", gql.Playground)

	// Operations
	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
