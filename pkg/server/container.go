package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/retry"
	"movie-reviews-api/internal/adapters/translate"
	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/database"
	"movie-reviews-api/internal/middleware"
	"movie-reviews-api/internal/repositories"
	"movie-reviews-api/internal/repositories/dynamo"
	"movie-reviews-api/internal/repositories/memory"
	"movie-reviews-api/internal/repositories/sqlite"
	"movie-reviews-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *logrus.Logger
	Repositories  *repositories.RepositoryContainer
	MovieService  services.MovieService
	ReviewService services.ReviewService
	AuthService   *middleware.AuthService
}

// NewContainer builds the store, the translator and the services selected by cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logrus.StandardLogger()

	var (
		repos      *repositories.RepositoryContainer
		translator translate.Translator
		err        error
	)

	switch cfg.Store.Backend {
	case repositories.BackendDynamoDB:
		var awsCfg aws.Config
		awsCfg, err = loadAWSConfig(ctx, cfg.Store.DynamoDB.Region)
		if err != nil {
			return nil, err
		}
		repos = dynamo.NewRepositoryContainer(dynamo.NewClient(awsCfg, cfg.Store.DynamoDB.Endpoint), cfg.Store, logger)
		translator = translate.NewRetryingTranslator(
			translate.NewAWSTranslator(translate.NewClient(awsCfg), logger),
			retry.DefaultConfig(),
		)

	case repositories.BackendSQLite:
		repos, err = newSQLiteRepositories(cfg.Store.SQLite, logger)
		if err != nil {
			return nil, err
		}

	case repositories.BackendMemory:
		repos = memory.NewRepositoryContainer(memory.NewStore())

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if translator == nil {
		logger.WithField("backend", cfg.Store.Backend).Info("Using mock translator")
		translator = translate.NewMockTranslator()
	}

	serviceContainer, err := services.NewServiceContainer(repos, &services.ServiceConfig{
		Translator:     translator,
		SourceLanguage: cfg.Translate.SourceLanguage,
		Logger:         logger,
	})
	if err != nil {
		if repos.Close != nil {
			_ = repos.Close()
		}
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"backend":     cfg.Store.Backend,
		"environment": cfg.Environment,
		"mode":        config.GetDeploymentMode(),
	}).Info("Container initialized")

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Repositories:  repos,
		MovieService:  serviceContainer.MovieService,
		ReviewService: serviceContainer.ReviewService,
		AuthService:   middleware.NewAuthService(cfg.AuthConfig()),
	}, nil
}

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}

func newSQLiteRepositories(cfg repositories.SQLiteConfig, logger *logrus.Logger) (*repositories.RepositoryContainer, error) {
	cm := database.NewConnectionManager(cfg, logger)
	if err := cm.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return sqlite.NewRepositoryContainer(cm.GetDB(), logger, cm.Close), nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Repositories == nil || c.Repositories.Close == nil {
		return nil
	}
	if err := c.Repositories.Close(); err != nil {
		return fmt.Errorf("failed to close repositories: %w", err)
	}
	return nil
}
