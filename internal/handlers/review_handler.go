package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/services"
	"movie-reviews-api/pkg/lambda"
)

// ReviewHandler serves review queries, mutations and translations
type ReviewHandler struct {
	reviewService services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// reviewKey reads the (movieId, reviewerName) path pair. Missing parts are
// left zero; only a present but malformed movieId is an error.
func reviewKey(req *lambda.Request) (models.ReviewKey, error) {
	key := models.ReviewKey{
		ReviewerName: models.NormalizeReviewerName(req.PathParam("reviewerName")),
	}

	raw := strings.TrimSpace(req.PathParam("movieId"))
	if raw == "" {
		return key, nil
	}

	movieID, err := models.ParseMovieID(raw)
	if err != nil {
		return key, err
	}
	key.MovieID = movieID
	return key, nil
}

// HandleListMovieReviews handles GET /movies/{movieId}/reviews
func (h *ReviewHandler) HandleListMovieReviews(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	movieID, err := models.ParseMovieID(req.PathParam("movieId"))
	if err != nil {
		return badRequest(err), nil
	}

	var filter models.ReviewFilter
	if filter.MinRating, err = models.ParseOptionalIntParam("minRating", req.QueryParam("minRating")); err != nil {
		return badRequest(err), nil
	}
	if filter.Year, err = models.ParseOptionalIntParam("year", req.QueryParam("year")); err != nil {
		return badRequest(err), nil
	}

	reviews, err := h.reviewService.ListMovieReviews(ctx, movieID, filter)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, reviews), nil
}

// HandleGetReviewerReview handles GET /movies/{movieId}/reviews/{reviewerName}
func (h *ReviewHandler) HandleGetReviewerReview(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	key, err := reviewKey(req)
	if err != nil {
		return badRequest(err), nil
	}

	reviews, err := h.reviewService.GetReviewerReview(ctx, key)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, reviews), nil
}

// HandleListReviewsByReviewer handles GET /reviews/{reviewerName}
func (h *ReviewHandler) HandleListReviewsByReviewer(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	reviewer := models.NormalizeReviewerName(req.PathParam("reviewerName"))

	reviews, err := h.reviewService.ListReviewsByReviewer(ctx, reviewer)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, reviews), nil
}

// HandleAddReviews handles POST /movies/reviews. The body is a single review
// or an array of reviews.
func (h *ReviewHandler) HandleAddReviews(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	reviews, err := models.DecodeReviews(req.Body)
	if err != nil {
		return badRequest(err), nil
	}

	count, err := h.reviewService.AddReviews(ctx, reviews)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return messageResponse(http.StatusCreated, fmt.Sprintf("%d review(s) added", count)), nil
}

// HandleUpdateReview handles PUT /movies/{movieId}/reviews/{reviewerName}
func (h *ReviewHandler) HandleUpdateReview(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	key, err := reviewKey(req)
	if err != nil || !key.Complete() {
		return errorResponse(http.StatusBadRequest, "Invalid request parameters"), nil
	}

	update, err := models.DecodeReviewUpdateRequest(req.Body)
	if err != nil {
		if errors.Is(err, models.ErrMissingBody) {
			return errorResponse(http.StatusBadRequest, "Invalid request parameters"), nil
		}
		return badRequest(err), nil
	}

	if err := h.reviewService.UpdateReview(ctx, key, update); err != nil {
		return errorFromService(req, err), nil
	}
	return messageResponse(http.StatusOK, "Review text updated successfully"), nil
}

// HandleTranslateReview handles GET /reviews/{reviewerName}/{movieId}/translation
func (h *ReviewHandler) HandleTranslateReview(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	key, err := reviewKey(req)
	if err != nil {
		return badRequest(err), nil
	}

	translated, err := h.reviewService.TranslateReview(ctx, key, req.QueryParam("language"))
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, translated), nil
}

// @Summary List a movie's reviews
// @Description List reviews of a movie, optionally filtered by minimum rating and review year
// @Tags reviews
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param minRating query int false "Minimum rating"
// @Param year query int false "Review year"
// @Success 200 {object} DataResponse{data=[]models.MovieReview}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/reviews [get]
func (h *ReviewHandler) ListMovieReviews(c *gin.Context) {
	serveGin(c, h.HandleListMovieReviews)
}

// @Summary Get a reviewer's review of a movie
// @Tags reviews
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param reviewerName path string true "Reviewer name"
// @Success 200 {object} DataResponse{data=[]models.MovieReview}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/reviews/{reviewerName} [get]
func (h *ReviewHandler) GetReviewerReview(c *gin.Context) {
	serveGin(c, h.HandleGetReviewerReview)
}

// @Summary List a reviewer's reviews
// @Tags reviews
// @Produce json
// @Param reviewerName path string true "Reviewer name"
// @Success 200 {object} DataResponse{data=[]models.MovieReview}
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reviews/{reviewerName} [get]
func (h *ReviewHandler) ListReviewsByReviewer(c *gin.Context) {
	serveGin(c, h.HandleListReviewsByReviewer)
}

// @Summary Add reviews
// @Description Add one review or an array of reviews. Existing keys are replaced.
// @Tags reviews
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param reviews body []models.MovieReview true "Reviews"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/reviews [post]
func (h *ReviewHandler) AddReviews(c *gin.Context) {
	serveGin(c, h.HandleAddReviews)
}

// @Summary Update a review
// @Description Update reviewDate, content and rating of an existing review. The body must repeat movieId and reviewerName.
// @Tags reviews
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param movieId path int true "Movie ID"
// @Param reviewerName path string true "Reviewer name"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/reviews/{reviewerName} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	serveGin(c, h.HandleUpdateReview)
}

// @Summary Translate a review
// @Tags translation
// @Produce json
// @Param reviewerName path string true "Reviewer name"
// @Param movieId path int true "Movie ID"
// @Param language query string true "Target language code"
// @Success 200 {object} DataResponse{data=services.TranslatedReview}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reviews/{reviewerName}/{movieId}/translation [get]
func (h *ReviewHandler) TranslateReview(c *gin.Context) {
	serveGin(c, h.HandleTranslateReview)
}
