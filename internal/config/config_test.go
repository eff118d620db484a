package config

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("GG_STRING", "value")
	t.Setenv("GG_BOOL", "true")
	t.Setenv("GG_BAD_BOOL", "maybe")
	t.Setenv("GG_INT", "42")
	t.Setenv("GG_BAD_INT", "-3")
	t.Setenv("GG_DURATION", "90s")
	t.Setenv("GG_BAD_DURATION", "soon")

	if got := envString("GG_STRING", "def"); got != "value" {
		t.Errorf("envString = %q, want %q", got, "value")
	}
	if got := envString("GG_MISSING", "def"); got != "def" {
		t.Errorf("envString missing = %q, want %q", got, "def")
	}
	if got := envBool("GG_BOOL", false); !got {
		t.Error("envBool = false, want true")
	}
	if got := envBool("GG_BAD_BOOL", true); !got {
		t.Error("envBool with invalid value should fall back to default")
	}
	if got := envInt("GG_INT", 1); got != 42 {
		t.Errorf("envInt = %d, want 42", got)
	}
	if got := envInt("GG_BAD_INT", 7); got != 7 {
		t.Errorf("envInt with negative value = %d, want default 7", got)
	}
	if got := envDuration("GG_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("envDuration = %v, want 90s", got)
	}
	if got := envDuration("GG_BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("envDuration with invalid value = %v, want 1s", got)
	}
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:            "goalgraph",
		AppEnv:             "production",
		DBDriver:           "pgx",
		DBConnection:       "postgres://user:secret@db/goals",
		JWTSecret:          "super-secret",
		SentryDSN:          "https://key@sentry.example/1",
		S3AccessKey:        "access",
		S3SecretKey:        "s3-secret",
		GraphQLMaxPageSize: 50,
	}

	s := cfg.Sanitized()
	if s.JWTSecret != "" || s.DBConnection != "" || s.SentryDSN != "" || s.S3SecretKey != "" || s.S3AccessKey != "" {
		t.Fatalf("sanitized config leaked secrets: %+v", s)
	}
	if s.AppName != "goalgraph" || s.GraphQLMaxPageSize != 50 {
		t.Errorf("sanitized config lost public fields: %+v", s)
	}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("environment predicates disagree with AppEnv")
	}
}
