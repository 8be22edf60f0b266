package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"movie-reviews-api/internal/middleware"
	"movie-reviews-api/internal/repositories"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Store       *repositories.Config
	JWT         JWTConfig
	Translate   TranslateConfig
	Server      ServerConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
	CookieName  string
}

// TranslateConfig holds review translation configuration
type TranslateConfig struct {
	// SourceLanguage is the language reviews are written in
	SourceLanguage string
}

// ServerConfig holds request handling limits
type ServerConfig struct {
	InvocationTimeout    time.Duration
	ShutdownTimeout      time.Duration
	SlowRequestThreshold time.Duration
	RateLimitRPS         float64
	RateLimitBurst       int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_BACKEND", string(repositories.BackendSQLite))
	viper.SetDefault("AWS_REGION", "eu-west-1")
	viper.SetDefault("MOVIES_TABLE", "Movies")
	viper.SetDefault("CAST_TABLE", "MovieCast")
	viper.SetDefault("REVIEWS_TABLE", "MovieReviews")
	viper.SetDefault("REVIEWER_INDEX", "ReviewerNameIndex")
	viper.SetDefault("ROLE_INDEX", "roleIx")
	viper.SetDefault("DYNAMODB_BATCH_SIZE", repositories.MaxBatchWriteSize)
	viper.SetDefault("DB_CONNECTION_STRING", "./data/movies.db")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 1)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 1)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_ISSUER", "movie-reviews-api")
	viper.SetDefault("AUTH_COOKIE_NAME", middleware.DefaultCookieName)
	viper.SetDefault("TRANSLATE_SOURCE_LANGUAGE", "en")
	viper.SetDefault("INVOCATION_TIMEOUT", 10*time.Second)
	viper.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)
	viper.SetDefault("SLOW_REQUEST_THRESHOLD", time.Second)
	viper.SetDefault("RATE_LIMIT_RPS", 100)
	viper.SetDefault("RATE_LIMIT_BURST", 200)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Store: &repositories.Config{
			Backend: repositories.Backend(viper.GetString("STORE_BACKEND")),
			Tables: repositories.TableConfig{
				Movies:        viper.GetString("MOVIES_TABLE"),
				Cast:          viper.GetString("CAST_TABLE"),
				Reviews:       viper.GetString("REVIEWS_TABLE"),
				ReviewerIndex: viper.GetString("REVIEWER_INDEX"),
				RoleIndex:     viper.GetString("ROLE_INDEX"),
			},
			DynamoDB: repositories.DynamoDBConfig{
				Region:    viper.GetString("AWS_REGION"),
				Endpoint:  viper.GetString("DYNAMODB_ENDPOINT"),
				BatchSize: viper.GetInt("DYNAMODB_BATCH_SIZE"),
			},
			SQLite: repositories.SQLiteConfig{
				Path:            viper.GetString("DB_CONNECTION_STRING"),
				MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
				MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
				ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
				AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
			},
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			CookieName:  viper.GetString("AUTH_COOKIE_NAME"),
		},
		Translate: TranslateConfig{
			SourceLanguage: viper.GetString("TRANSLATE_SOURCE_LANGUAGE"),
		},
		Server: ServerConfig{
			InvocationTimeout:    viper.GetDuration("INVOCATION_TIMEOUT"),
			ShutdownTimeout:      viper.GetDuration("SHUTDOWN_TIMEOUT"),
			SlowRequestThreshold: viper.GetDuration("SLOW_REQUEST_THRESHOLD"),
			RateLimitRPS:         viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:       viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	AdaptConfigForServerless(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.IsProduction() && c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.JWT.ExpiryHours <= 0 {
		return errors.New("JWT_EXPIRY_HOURS must be positive")
	}
	if c.Server.InvocationTimeout <= 0 {
		return errors.New("INVOCATION_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthConfig returns the token settings for the auth service. Outside
// production a fixed development secret is used when none is configured.
func (c *Config) AuthConfig() *middleware.AuthConfig {
	secret := c.JWT.Secret
	if secret == "" {
		secret = "development-secret"
	}
	return &middleware.AuthConfig{
		JWTSecret:     secret,
		TokenDuration: time.Duration(c.JWT.ExpiryHours) * time.Hour,
		Issuer:        c.JWT.Issuer,
		CookieName:    c.JWT.CookieName,
	}
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
