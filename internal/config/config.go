package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// GraphQL
	GraphQLPlayground      bool
	GraphQLDefaultPageSize int
	GraphQLMaxPageSize     int
	EnforceTaskOwnership   bool
	RateLimitRequests      int
	RateLimitWindow        time.Duration

	// Export storage (optional, S3-compatible)
	S3Bucket        string
	S3Region        string
	S3Prefix        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	ExportURLExpiry time.Duration

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "goalgraph"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goalgraph.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// GraphQL
		GraphQLPlayground:      envBool("GRAPHQL_PLAYGROUND", envString("APP_ENV", "development") == "development"),
		GraphQLDefaultPageSize: envInt("GRAPHQL_DEFAULT_PAGE_SIZE", 20),
		GraphQLMaxPageSize:     envInt("GRAPHQL_MAX_PAGE_SIZE", 100),
		EnforceTaskOwnership:   envBool("ENFORCE_TASK_OWNERSHIP", false),
		RateLimitRequests:      envInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:        envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Export storage
		S3Bucket:        envString("S3_BUCKET", ""),
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Prefix:        envString("S3_PREFIX", "exports"),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		ExportURLExpiry: envDuration("EXPORT_URL_EXPIRY", time.Hour),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses to start production deployments with settings that are only
// acceptable on a developer machine.
func validateProduction(cfg *Config) {
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires JWT_SECRET of at least 32 bytes")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid positive int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// The JWT secret and database connection string are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		Port:    c.Port,

		DBDriver: c.DBDriver,

		GraphQLPlayground:      c.GraphQLPlayground,
		GraphQLDefaultPageSize: c.GraphQLDefaultPageSize,
		GraphQLMaxPageSize:     c.GraphQLMaxPageSize,
		EnforceTaskOwnership:   c.EnforceTaskOwnership,
	}
}
