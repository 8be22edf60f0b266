// Package seed loads catalog fixtures from JSON files into a store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/storage"
	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// Seed file names looked up in the fixture store
const (
	MoviesFile  = "movies.json"
	CastFile    = "movieCast.json"
	ReviewsFile = "movieReviews.json"
)

// Loader writes JSON fixtures through the repositories
type Loader struct {
	repos  *repositories.RepositoryContainer
	files  storage.FileStorage
	logger *logrus.Logger
}

// NewLoader creates a new JSON loader reading fixtures from files
func NewLoader(repos *repositories.RepositoryContainer, files storage.FileStorage, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{
		repos:  repos,
		files:  files,
		logger: logger,
	}
}

// Result reports what a load did
type Result struct {
	MoviesProcessed  int      `json:"movies_processed"`
	CastProcessed    int      `json:"cast_processed"`
	ReviewsProcessed int      `json:"reviews_processed"`
	Warnings         []string `json:"warnings"`
	Errors           []string `json:"errors"`
}

// CheckFilesExist reports which seed files are present
func (l *Loader) CheckFilesExist(ctx context.Context) (bool, []string) {
	var existing []string
	for _, name := range []string{MoviesFile, CastFile, ReviewsFile} {
		if ok, err := l.files.Exists(ctx, name); err == nil && ok {
			existing = append(existing, name)
		}
	}
	return len(existing) > 0, existing
}

// Load validates every record and batch-writes the valid ones. Invalid
// records are skipped and reported in Result.Errors. With dryRun nothing is
// written.
func (l *Loader) Load(ctx context.Context, dryRun bool) (*Result, error) {
	result := &Result{}

	var movies []*models.Movie
	if err := l.readFile(ctx, MoviesFile, &movies, result); err != nil {
		return nil, err
	}
	movies = validRecords(movies, "movie", result)

	var cast []*models.MovieCast
	if err := l.readFile(ctx, CastFile, &cast, result); err != nil {
		return nil, err
	}
	cast = validRecords(cast, "cast", result)

	var reviews []*models.MovieReview
	if err := l.readFile(ctx, ReviewsFile, &reviews, result); err != nil {
		return nil, err
	}
	reviews = validRecords(reviews, "review", result)

	if dryRun {
		l.logger.WithFields(logrus.Fields{
			"movies":  len(movies),
			"cast":    len(cast),
			"reviews": len(reviews),
		}).Info("Dry run, nothing written")
		return result, nil
	}

	if len(movies) > 0 {
		if err := l.repos.Movies.PutBatch(ctx, movies); err != nil {
			return result, fmt.Errorf("failed to load movies: %w", err)
		}
		result.MoviesProcessed = len(movies)
	}
	if len(cast) > 0 {
		if err := l.repos.Cast.PutBatch(ctx, cast); err != nil {
			return result, fmt.Errorf("failed to load cast: %w", err)
		}
		result.CastProcessed = len(cast)
	}
	if len(reviews) > 0 {
		if err := l.repos.Reviews.PutBatch(ctx, reviews); err != nil {
			return result, fmt.Errorf("failed to load reviews: %w", err)
		}
		result.ReviewsProcessed = len(reviews)
	}

	l.logger.WithFields(logrus.Fields{
		"movies":  result.MoviesProcessed,
		"cast":    result.CastProcessed,
		"reviews": result.ReviewsProcessed,
	}).Info("Seed data loaded")

	return result, nil
}

// Validate checks that every seeded movie and review can be read back
func (l *Loader) Validate(ctx context.Context) error {
	var movies []*models.Movie
	if err := l.readFile(ctx, MoviesFile, &movies, &Result{}); err != nil {
		return err
	}
	for _, m := range movies {
		if m.Validate() != nil {
			continue
		}
		exists, err := l.repos.Movies.Exists(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("failed to check movie %d: %w", m.ID, err)
		}
		if !exists {
			return fmt.Errorf("movie %d is missing", m.ID)
		}
	}

	var reviews []*models.MovieReview
	if err := l.readFile(ctx, ReviewsFile, &reviews, &Result{}); err != nil {
		return err
	}
	for _, r := range reviews {
		if r.Validate() != nil {
			continue
		}
		exists, err := l.repos.Reviews.Exists(ctx, r.Key())
		if err != nil {
			return fmt.Errorf("failed to check review %s: %w", r.Key(), err)
		}
		if !exists {
			return fmt.Errorf("review %s is missing", r.Key())
		}
	}

	return nil
}

// readFile decodes a seed file into out. A missing file is a warning.
func (l *Loader) readFile(ctx context.Context, name string, out interface{}, result *Result) error {
	data, err := l.files.Retrieve(ctx, name)
	if storage.IsNotFound(err) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found, skipped", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

type validatable interface {
	Validate() error
}

func validRecords[T validatable](records []T, kind string, result *Result) []T {
	out := make([]T, 0, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %d: %v", kind, i, err))
			continue
		}
		out = append(out, r)
	}
	return out
}
