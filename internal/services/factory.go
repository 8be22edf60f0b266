package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/translate"
	"movie-reviews-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	MovieService  MovieService
	ReviewService ReviewService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Translator translate.Translator

	// SourceLanguage is the language reviews are written in
	SourceLanguage string

	Logger *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, config *ServiceConfig) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}
	if repos.Movies == nil || repos.Cast == nil || repos.Reviews == nil {
		return nil, fmt.Errorf("repository container is incomplete")
	}

	if config == nil {
		config = &ServiceConfig{}
	}
	if config.Translator == nil {
		config.Translator = translate.NewMockTranslator()
	}

	return &ServiceContainer{
		MovieService:  NewMovieService(repos.Movies, repos.Cast, config.Logger),
		ReviewService: NewReviewService(repos.Movies, repos.Reviews, config.Translator, config.SourceLanguage, config.Logger),
	}, nil
}
