package repositories

import (
	"errors"
	"fmt"
	"time"
)

// Backend names a store implementation
type Backend string

const (
	BackendDynamoDB Backend = "dynamodb"
	BackendSQLite   Backend = "sqlite"
	BackendMemory   Backend = "memory"
)

// Config represents repository configuration
type Config struct {
	// Backend selects the store implementation
	Backend Backend `json:"backend" yaml:"backend"`

	// Tables names the tables and secondary indexes
	Tables TableConfig `json:"tables" yaml:"tables"`

	// DynamoDB configuration, used by the dynamodb backend
	DynamoDB DynamoDBConfig `json:"dynamodb" yaml:"dynamodb"`

	// SQLite configuration, used by the sqlite backend
	SQLite SQLiteConfig `json:"sqlite" yaml:"sqlite"`
}

// TableConfig names the three tables and their indexes
type TableConfig struct {
	Movies  string `json:"movies" yaml:"movies"`
	Cast    string `json:"cast" yaml:"cast"`
	Reviews string `json:"reviews" yaml:"reviews"`

	// ReviewerIndex is the global secondary index on reviews keyed by reviewerName
	ReviewerIndex string `json:"reviewer_index" yaml:"reviewer_index"`

	// RoleIndex is the local secondary index on cast ordered by roleName
	RoleIndex string `json:"role_index" yaml:"role_index"`
}

// DynamoDBConfig represents DynamoDB client configuration
type DynamoDBConfig struct {
	Region string `json:"region" yaml:"region"`

	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// BatchSize is the number of items per BatchWriteItem call (max 25)
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// SQLiteConfig represents local database configuration
type SQLiteConfig struct {
	Path            string        `json:"path" yaml:"path"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `json:"auto_migrate" yaml:"auto_migrate"`
}

// MaxBatchWriteSize is the DynamoDB limit on items per BatchWriteItem request
const MaxBatchWriteSize = 25

// DefaultConfig returns a default repository configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendDynamoDB,
		Tables: TableConfig{
			Movies:        "Movies",
			Cast:          "MovieCast",
			Reviews:       "MovieReviews",
			ReviewerIndex: "ReviewerNameIndex",
			RoleIndex:     "roleIx",
		},
		DynamoDB: DynamoDBConfig{
			Region:    "eu-west-1",
			BatchSize: MaxBatchWriteSize,
		},
		SQLite: SQLiteConfig{
			Path:            "./data/movies.db",
			MaxOpenConns:    1, // SQLite works best with single connection
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
	}
}

// Validate validates the repository configuration
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendDynamoDB, BackendSQLite, BackendMemory:
	case "":
		return errors.New("store backend is required")
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}

	if c.Tables.Movies == "" || c.Tables.Cast == "" || c.Tables.Reviews == "" {
		return errors.New("movies, cast and reviews table names are required")
	}

	if c.Backend == BackendDynamoDB {
		if c.Tables.ReviewerIndex == "" {
			return errors.New("reviewer index name is required")
		}
		if c.DynamoDB.BatchSize <= 0 || c.DynamoDB.BatchSize > MaxBatchWriteSize {
			return fmt.Errorf("batch size must be between 1 and %d", MaxBatchWriteSize)
		}
	}

	if c.Backend == BackendSQLite {
		if c.SQLite.Path == "" {
			return errors.New("database path is required for SQLite")
		}
		if c.SQLite.MaxOpenConns <= 0 {
			return errors.New("max open connections must be greater than 0")
		}
		if c.SQLite.MaxIdleConns > c.SQLite.MaxOpenConns {
			return errors.New("max idle connections cannot exceed max open connections")
		}
	}

	return nil
}
