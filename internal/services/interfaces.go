package services

import (
	"context"

	"movie-reviews-api/internal/models"
)

// MovieService defines catalog operations
type MovieService interface {
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]*models.Movie, error)
	CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	ListCast(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error)
}

// ReviewService defines review queries and mutations
type ReviewService interface {
	// ReviewerExists reports whether a review is stored under the exact key
	ReviewerExists(ctx context.Context, key models.ReviewKey) (bool, error)

	ListMovieReviews(ctx context.Context, movieID int, filter models.ReviewFilter) ([]*models.MovieReview, error)
	GetReviewerReview(ctx context.Context, key models.ReviewKey) ([]*models.MovieReview, error)
	ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error)

	// AddReviews validates and stores reviews, returning how many were written
	AddReviews(ctx context.Context, reviews []*models.MovieReview) (int, error)

	// UpdateReview applies a partial update to an existing review
	UpdateReview(ctx context.Context, key models.ReviewKey, req *models.ReviewUpdateRequest) error

	TranslateReview(ctx context.Context, key models.ReviewKey, language string) (*TranslatedReview, error)
}

// TranslatedReview is a review whose content has been translated
type TranslatedReview struct {
	models.MovieReview
	OriginalContent string `json:"originalContent"`
	SourceLanguage  string `json:"sourceLanguage"`
	TargetLanguage  string `json:"targetLanguage"`
}
