package handlers

import (
	"net/http"

	"movie-reviews-api/pkg/lambda"
)

// RegisterMovieRoutes registers the catalog and cast resources
func RegisterMovieRoutes(router *lambda.Router, h *MovieHandler) {
	router.Handle(http.MethodGet, "/movies", h.HandleListMovies)
	router.Handle(http.MethodPost, "/movies", h.HandleCreateMovie)
	router.Handle(http.MethodGet, "/movies/{movieId}", h.HandleGetMovie)
	router.Handle(http.MethodGet, "/movies/{movieId}/cast", h.HandleListCast)
}

// RegisterReviewRoutes registers the review resources
func RegisterReviewRoutes(router *lambda.Router, h *ReviewHandler) {
	router.Handle(http.MethodPost, "/movies/reviews", h.HandleAddReviews)
	router.Handle(http.MethodGet, "/movies/{movieId}/reviews", h.HandleListMovieReviews)
	router.Handle(http.MethodGet, "/movies/{movieId}/reviews/{reviewerName}", h.HandleGetReviewerReview)
	router.Handle(http.MethodPut, "/movies/{movieId}/reviews/{reviewerName}", h.HandleUpdateReview)
	router.Handle(http.MethodGet, "/reviews/{reviewerName}", h.HandleListReviewsByReviewer)
}

// RegisterTranslationRoutes registers the translation resource
func RegisterTranslationRoutes(router *lambda.Router, h *ReviewHandler) {
	router.Handle(http.MethodGet, "/reviews/{reviewerName}/{movieId}/translation", h.HandleTranslateReview)
}
