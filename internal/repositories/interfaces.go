package repositories

import (
	"context"

	"movie-reviews-api/internal/models"
)

// MovieRepository defines operations on the movie catalog
type MovieRepository interface {
	// Get retrieves a movie by id. Returns a not-found error when absent.
	Get(ctx context.Context, id int) (*models.Movie, error)

	// Exists checks whether a movie with the given id is stored
	Exists(ctx context.Context, id int) (bool, error)

	// List returns every movie in the catalog
	List(ctx context.Context) ([]*models.Movie, error)

	// Put creates or replaces a movie
	Put(ctx context.Context, movie *models.Movie) error

	// PutBatch creates or replaces several movies
	PutBatch(ctx context.Context, movies []*models.Movie) error
}

// CastRepository defines read access to movie cast credits
type CastRepository interface {
	// QueryByMovie returns the cast of a movie, optionally narrowed by role or actor
	QueryByMovie(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error)

	// PutBatch creates or replaces cast entries
	PutBatch(ctx context.Context, cast []*models.MovieCast) error
}

// ReviewRepository defines operations on movie reviews
type ReviewRepository interface {
	// Get retrieves one review by its composite key. Returns a not-found error when absent.
	Get(ctx context.Context, key models.ReviewKey) (*models.MovieReview, error)

	// Exists checks whether a review is stored under the exact key
	Exists(ctx context.Context, key models.ReviewKey) (bool, error)

	// QueryByMovie returns all reviews of a movie ordered by reviewer name
	QueryByMovie(ctx context.Context, movieID int) ([]*models.MovieReview, error)

	// QueryByReviewer returns every review written by a reviewer across movies
	QueryByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error)

	// PutBatch creates or replaces reviews. Writes are not atomic across items;
	// a partial failure is reported with a BatchError.
	PutBatch(ctx context.Context, reviews []*models.MovieReview) error

	// Update overwrites the set fields of the review stored under key
	Update(ctx context.Context, key models.ReviewKey, update models.ReviewUpdate) error
}

// RepositoryContainer holds all repository instances of one backend
type RepositoryContainer struct {
	Movies  MovieRepository
	Cast    CastRepository
	Reviews ReviewRepository

	// Close releases the backend's resources. May be nil.
	Close func() error
}
