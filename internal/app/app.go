package app

import (
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/config"
	"github.com/templui/goalgraph/internal/db"
	"github.com/templui/goalgraph/internal/graph"
	"github.com/templui/goalgraph/internal/repository"
	"github.com/templui/goalgraph/internal/service"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	AuthService *service.AuthService
	UserService *service.UserService
	GoalService *service.GoalService
	TaskService *service.TaskService
	Schema      *graphql.Schema
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := NewWithDB(cfg, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

// NewWithDB wires services and the GraphQL schema on an already migrated
// database. Close releases it.
func NewWithDB(cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	taskRepository := repository.NewTaskRepository(database)

	// Services
	userService := service.NewUserService(userRepository)
	authService := service.NewAuthService(userService, cfg.JWTSecret, cfg.JWTExpiry)
	goalService := service.NewGoalService(database, goalRepository, taskRepository)
	taskService := service.NewTaskService(database, taskRepository, goalRepository, cfg.EnforceTaskOwnership)

	// GraphQL
	resolver := graph.NewResolver(goalService, taskService, userService, graph.Options{
		DefaultPageSize: cfg.GraphQLDefaultPageSize,
		MaxPageSize:     cfg.GraphQLMaxPageSize,
	})
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return &App{
		Cfg:         cfg,
		DB:          database,
		AuthService: authService,
		UserService: userService,
		GoalService: goalService,
		TaskService: taskService,
		Schema:      schema,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
