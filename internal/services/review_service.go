package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"movie-reviews-api/internal/adapters/translate"
	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// reviewService implements the ReviewService interface
type reviewService struct {
	movieRepo      repositories.MovieRepository
	reviewRepo     repositories.ReviewRepository
	translator     translate.Translator
	sourceLanguage string
	logger         *logrus.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(
	movieRepo repositories.MovieRepository,
	reviewRepo repositories.ReviewRepository,
	translator translate.Translator,
	sourceLanguage string,
	logger *logrus.Logger,
) ReviewService {
	if logger == nil {
		logger = logrus.New()
	}
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}
	return &reviewService{
		movieRepo:      movieRepo,
		reviewRepo:     reviewRepo,
		translator:     translator,
		sourceLanguage: sourceLanguage,
		logger:         logger,
	}
}

// ReviewerExists checks the exact (movieId, reviewerName) key
func (s *reviewService) ReviewerExists(ctx context.Context, key models.ReviewKey) (bool, error) {
	exists, err := s.reviewRepo.Exists(ctx, key)
	if err != nil {
		return false, Fault(err)
	}
	return exists, nil
}

// ListMovieReviews returns a movie's reviews after applying filter. The
// Movies table is consulted only when the movie has no reviews, to pick the
// 404 message; a failed lookup there never turns into a fault.
func (s *reviewService) ListMovieReviews(ctx context.Context, movieID int, filter models.ReviewFilter) ([]*models.MovieReview, error) {
	if movieID <= 0 {
		return nil, Invalid("movieId", "Invalid movie Id", nil)
	}

	reviews, err := s.reviewRepo.QueryByMovie(ctx, movieID)
	if err != nil {
		return nil, Fault(err)
	}

	if len(reviews) == 0 {
		return nil, NotFound(s.noReviewsMessage(ctx, movieID))
	}

	return filter.Apply(reviews), nil
}

func (s *reviewService) noReviewsMessage(ctx context.Context, movieID int) string {
	exists, err := s.movieRepo.Exists(ctx, movieID)
	if err != nil {
		s.logger.WithError(err).WithField("movie_id", movieID).Warn("Movie lookup failed")
		return "No movie reviews found for this movie"
	}
	if !exists {
		return "Movie not found"
	}
	return "No movie reviews found for this movie"
}

// GetReviewerReview returns the review a reviewer wrote for a movie. The
// existence check and the fetch run concurrently; absence in either is a 404.
func (s *reviewService) GetReviewerReview(ctx context.Context, key models.ReviewKey) ([]*models.MovieReview, error) {
	if !key.Complete() {
		return nil, NotFound("Missing movie Id or reviewer name")
	}

	exists, review, err := s.existsAndGet(ctx, key)
	if err != nil {
		return nil, Fault(err)
	}
	if !exists || review == nil {
		return nil, NotFound("No reviews found for this movie and reviewer")
	}
	return []*models.MovieReview{review}, nil
}

// existsAndGet fans out the existence check and the item read. A missing
// item is reported as a nil review, not an error.
func (s *reviewService) existsAndGet(ctx context.Context, key models.ReviewKey) (bool, *models.MovieReview, error) {
	var (
		exists bool
		review *models.MovieReview
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exists, err = s.reviewRepo.Exists(gctx, key)
		return err
	})
	g.Go(func() error {
		r, err := s.reviewRepo.Get(gctx, key)
		if repositories.IsNotFound(err) {
			return nil
		}
		review = r
		return err
	})

	if err := g.Wait(); err != nil {
		return false, nil, err
	}
	return exists, review, nil
}

// ListReviewsByReviewer returns every review by one reviewer across movies
func (s *reviewService) ListReviewsByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error) {
	if strings.TrimSpace(reviewerName) == "" {
		return nil, Invalid("reviewerName", "Missing reviewer name", nil)
	}

	reviews, err := s.reviewRepo.QueryByReviewer(ctx, reviewerName)
	if err != nil {
		return nil, Fault(err)
	}
	if len(reviews) == 0 {
		return nil, NotFound("No reviews found for this reviewer")
	}
	return reviews, nil
}

// AddReviews validates every review before writing any of them
func (s *reviewService) AddReviews(ctx context.Context, reviews []*models.MovieReview) (int, error) {
	if len(reviews) == 0 {
		return 0, Invalid("", "At least one review is required", models.ErrMissingBody)
	}

	for i, r := range reviews {
		if r == nil {
			return 0, Invalid(fmt.Sprintf("[%d]", i), fmt.Sprintf("Review %d is empty", i), models.ErrInvalidBody)
		}
		if err := r.Validate(); err != nil {
			return 0, Invalid(fmt.Sprintf("[%d]", i), fmt.Sprintf("Review %d is invalid", i), err)
		}
	}

	if err := s.reviewRepo.PutBatch(ctx, reviews); err != nil {
		var batchErr *repositories.BatchError
		if errors.As(err, &batchErr) {
			s.logger.WithFields(logrus.Fields{
				"total":       batchErr.Total,
				"unprocessed": batchErr.Unprocessed,
			}).Error("Review batch partially written")
		}
		return 0, Fault(err)
	}

	s.logger.WithField("count", len(reviews)).Info("Reviews added")
	return len(reviews), nil
}

// UpdateReview runs the update protocol: the path key must be complete, the
// review must exist, the body must name the same key, and the body must set
// at least one field. Only then is the single store write issued.
func (s *reviewService) UpdateReview(ctx context.Context, key models.ReviewKey, req *models.ReviewUpdateRequest) error {
	if !key.Complete() {
		return Invalid("", "Invalid request parameters", nil)
	}
	if req == nil {
		return Invalid("", "Request body is required", models.ErrMissingBody)
	}

	exists, current, err := s.existsAndGet(ctx, key)
	if err != nil {
		return Fault(err)
	}
	if !exists || current == nil {
		return NotFound("No reviews found for this movie and reviewer")
	}

	if !req.MatchesKey(key) {
		return Invalid("", "Invalid movieId or reviewerName", nil)
	}

	if req.Update.IsEmpty() {
		return Invalid("", "No updatable fields provided", nil)
	}
	if err := req.Update.Validate(); err != nil {
		return Invalid("", "Invalid review update", err)
	}

	if err := s.reviewRepo.Update(ctx, key, req.Update); err != nil {
		return Fault(err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":    key.String(),
		"fields": req.Update.Fields(),
	}).Info("Review updated")
	return nil
}

// TranslateReview returns the review with its content translated to language
func (s *reviewService) TranslateReview(ctx context.Context, key models.ReviewKey, language string) (*TranslatedReview, error) {
	if !key.Complete() {
		return nil, Invalid("", "Invalid request parameters", nil)
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, Invalid("language", "language query parameter is required", nil)
	}
	if s.translator == nil {
		return nil, Fault(errors.New("translation is not configured"))
	}

	review, err := s.reviewRepo.Get(ctx, key)
	if repositories.IsNotFound(err) {
		return nil, NotFound("No reviews found for this movie and reviewer")
	}
	if err != nil {
		return nil, Fault(err)
	}

	result, err := s.translator.Translate(ctx, review.Content, s.sourceLanguage, language)
	if translate.IsInvalidInput(err) {
		return nil, Invalid("language", fmt.Sprintf("Cannot translate review to %q", language), err)
	}
	if err != nil {
		return nil, Fault(err)
	}

	out := &TranslatedReview{
		MovieReview:     *review,
		OriginalContent: review.Content,
		SourceLanguage:  result.SourceLanguage,
		TargetLanguage:  result.TargetLanguage,
	}
	out.Content = result.Text
	return out, nil
}
