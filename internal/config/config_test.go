package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/repositories"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Store.Backend != repositories.BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Tables.Reviews != "MovieReviews" || cfg.Store.Tables.ReviewerIndex != "ReviewerNameIndex" {
		t.Errorf("unexpected tables: %+v", cfg.Store.Tables)
	}
	if cfg.Server.InvocationTimeout != 10*time.Second {
		t.Errorf("expected 10s invocation timeout, got %v", cfg.Server.InvocationTimeout)
	}
	if cfg.Translate.SourceLanguage != "en" {
		t.Errorf("expected en source language, got %q", cfg.Translate.SourceLanguage)
	}

	auth := cfg.AuthConfig()
	if auth.JWTSecret == "" || auth.TokenDuration != 24*time.Hour || auth.CookieName != "token" {
		t.Errorf("unexpected auth config: %+v", auth)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("REVIEWS_TABLE", "Reviews-test")
	t.Setenv("INVOCATION_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Store.Backend != repositories.BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Tables.Reviews != "Reviews-test" {
		t.Errorf("expected table override, got %q", cfg.Store.Tables.Reviews)
	}
	if cfg.Server.InvocationTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Server.InvocationTimeout)
	}
	if cfg.Server.RateLimitRPS != 5 {
		t.Errorf("expected 5 rps, got %v", cfg.Server.RateLimitRPS)
	}
	if auth := cfg.AuthConfig(); auth.JWTSecret != "s3cret" || auth.TokenDuration != 2*time.Hour {
		t.Errorf("unexpected auth config: %+v", auth)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "postgres"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
		{"zero timeout", map[string]string{"INVOCATION_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAdaptConfigForServerless(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "movie-reviews")
	t.Setenv("AWS_REGION", "us-east-2")
	t.Setenv("STORE_BACKEND", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Store.Backend != repositories.BackendDynamoDB {
		t.Errorf("expected dynamodb backend in Lambda, got %q", cfg.Store.Backend)
	}
	if cfg.Store.DynamoDB.Region != "us-east-2" {
		t.Errorf("expected region from runtime, got %q", cfg.Store.DynamoDB.Region)
	}
	if GetDeploymentMode() != "serverless" {
		t.Errorf("expected serverless mode")
	}

	logger := SetupLogging(cfg)
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON logs in Lambda, got %T", logger.Formatter)
	}
}

func TestSetupLoggingLevel(t *testing.T) {
	setBaseEnv(t)

	logger := SetupLogging(&Config{LogLevel: "debug", Environment: "development"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	logger = SetupLogging(&Config{LogLevel: "loud"})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info fallback, got %v", logger.GetLevel())
	}
}
