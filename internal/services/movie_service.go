package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// movieService implements the MovieService interface
type movieService struct {
	movieRepo repositories.MovieRepository
	castRepo  repositories.CastRepository
	logger    *logrus.Logger
}

// NewMovieService creates a new movie service instance
func NewMovieService(movieRepo repositories.MovieRepository, castRepo repositories.CastRepository, logger *logrus.Logger) MovieService {
	if logger == nil {
		logger = logrus.New()
	}
	return &movieService{
		movieRepo: movieRepo,
		castRepo:  castRepo,
		logger:    logger,
	}
}

// GetMovie retrieves a movie by id
func (s *movieService) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	if id <= 0 {
		return nil, Invalid("movieId", "Invalid movie Id", nil)
	}

	movie, err := s.movieRepo.Get(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, NotFound("Invalid movie Id")
	}
	if err != nil {
		return nil, Fault(err)
	}
	return movie, nil
}

// ListMovies returns the whole catalog
func (s *movieService) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, Fault(err)
	}
	if len(movies) == 0 {
		return nil, NotFound("No movies found")
	}
	return movies, nil
}

// CreateMovie validates and stores a movie. An existing id is replaced.
func (s *movieService) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if movie == nil {
		return nil, Invalid("", "Movie data is required", models.ErrMissingBody)
	}
	if err := movie.Validate(); err != nil {
		return nil, Invalid("", "Invalid movie data", err)
	}

	if err := s.movieRepo.Put(ctx, movie); err != nil {
		return nil, Fault(fmt.Errorf("failed to create movie: %w", err))
	}

	s.logger.WithFields(logrus.Fields{"movie_id": movie.ID, "title": movie.Title}).Info("Movie created")
	return movie, nil
}

// ListCast returns a movie's cast, optionally narrowed by role or actor
func (s *movieService) ListCast(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error) {
	if movieID <= 0 {
		return nil, Invalid("movieId", "Invalid movie Id", nil)
	}

	cast, err := s.castRepo.QueryByMovie(ctx, movieID, filter)
	if err != nil {
		return nil, Fault(err)
	}
	if len(cast) == 0 {
		return nil, NotFound("No cast found for this movie")
	}
	return cast, nil
}
