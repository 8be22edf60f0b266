package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

const reviewColumns = `movie_id, reviewer_name, review_date, content, rating`

// ReviewRepository implements repositories.ReviewRepository for SQLite
type ReviewRepository struct {
	baseRepository
}

// NewReviewRepository creates a new SQLite review repository
func NewReviewRepository(db *sql.DB, logger *logrus.Logger) *ReviewRepository {
	return &ReviewRepository{baseRepository: newBaseRepository(db, "movie_reviews", logger)}
}

func scanReview(row rowScanner) (*models.MovieReview, error) {
	var r models.MovieReview
	if err := row.Scan(&r.MovieID, &r.ReviewerName, &r.ReviewDate, &r.Content, &r.Rating); err != nil {
		return nil, err
	}
	return &r, nil
}

// Get retrieves a review by its composite key
func (r *ReviewRepository) Get(ctx context.Context, key models.ReviewKey) (*models.MovieReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM movie_reviews WHERE movie_id = ? AND reviewer_name = ?`

	review, err := scanReview(r.executeQueryRow(ctx, "get_review", query, key.MovieID, key.ReviewerName))
	if err == sql.ErrNoRows {
		return nil, repositories.NotFoundError(r.table, key.String())
	}
	if err != nil {
		return nil, repositories.NewRepositoryError("get_review", r.table, key.String(), err)
	}
	return review, nil
}

// Exists checks whether a review is stored under the exact key
func (r *ReviewRepository) Exists(ctx context.Context, key models.ReviewKey) (bool, error) {
	return r.exists(ctx, "review_exists", "movie_id = ? AND reviewer_name = ?", key.String(), key.MovieID, key.ReviewerName)
}

// QueryByMovie returns all reviews of a movie ordered by reviewer name
func (r *ReviewRepository) QueryByMovie(ctx context.Context, movieID int) ([]*models.MovieReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM movie_reviews WHERE movie_id = ? ORDER BY reviewer_name`
	return r.list(ctx, "query_reviews_by_movie", query, movieID)
}

// QueryByReviewer returns a reviewer's reviews ordered by movie id
func (r *ReviewRepository) QueryByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM movie_reviews WHERE reviewer_name = ? ORDER BY movie_id`
	return r.list(ctx, "query_reviews_by_reviewer", query, reviewerName)
}

func (r *ReviewRepository) list(ctx context.Context, operation, query string, args ...interface{}) ([]*models.MovieReview, error) {
	rows, err := r.executeQuery(ctx, operation, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.MovieReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError(operation, r.table, "", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return reviews, nil
}

// PutBatch creates or replaces reviews in one transaction
func (r *ReviewRepository) PutBatch(ctx context.Context, reviews []*models.MovieReview) error {
	query := `INSERT OR REPLACE INTO movie_reviews (` + reviewColumns + `) VALUES (?, ?, ?, ?, ?)`
	return r.inTransaction(ctx, "put_reviews", query, len(reviews), func(i int) []interface{} {
		rv := reviews[i]
		return []interface{}{rv.MovieID, rv.ReviewerName, rv.ReviewDate, rv.Content, rv.Rating}
	})
}

// Update overwrites the set fields. Like a DynamoDB UpdateItem it creates the
// row when the key is absent; callers check existence first.
func (r *ReviewRepository) Update(ctx context.Context, key models.ReviewKey, update models.ReviewUpdate) error {
	if update.IsEmpty() {
		return repositories.ValidationError(r.table, key.String(), repositories.ErrUnsupported)
	}

	var (
		insert models.MovieReview
		sets   []string
	)
	insert.MovieID, insert.ReviewerName = key.MovieID, key.ReviewerName
	update.ApplyTo(&insert)

	if update.ReviewDate != nil {
		sets = append(sets, "review_date = excluded.review_date")
	}
	if update.Content != nil {
		sets = append(sets, "content = excluded.content")
	}
	if update.Rating != nil {
		sets = append(sets, "rating = excluded.rating")
	}

	query := `INSERT INTO movie_reviews (` + reviewColumns + `) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (movie_id, reviewer_name) DO UPDATE SET ` + strings.Join(sets, ", ")

	_, err := r.executeExec(ctx, "update_review", query,
		insert.MovieID, insert.ReviewerName, insert.ReviewDate, insert.Content, insert.Rating)
	return err
}
