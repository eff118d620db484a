package cmd

import (
	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/app"
	"github.com/templui/goalgraph/internal/config"
	"github.com/templui/goalgraph/internal/db"
	"github.com/templui/goalgraph/internal/logger"
)

// loadConfig reads the same environment as the server and sets up logging.
func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")
	return cfg
}

// openApp opens and migrates the configured database.
func openApp() (*app.App, error) {
	return app.New(loadConfig())
}

// openDB opens the configured database without migrating it.
func openDB() (*sqlx.DB, *config.Config, error) {
	cfg := loadConfig()
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, err
	}
	return database, cfg, nil
}
