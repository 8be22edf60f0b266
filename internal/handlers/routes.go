package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"movie-reviews-api/internal/middleware"
	"movie-reviews-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	MovieService  services.MovieService
	ReviewService services.ReviewService
	AuthService   *middleware.AuthService

	// SecureCookies marks issued token cookies Secure
	SecureCookies bool
}

// MiddlewareConfig tunes the global middleware chain
type MiddlewareConfig struct {
	RateLimitRPS         float64
	RateLimitBurst       int
	SlowRequestThreshold time.Duration
	MaxBodyBytes         int64
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	movieHandler := NewMovieHandler(config.MovieService)
	reviewHandler := NewReviewHandler(config.ReviewService)
	authHandler := NewAuthHandler(config.AuthService, config.SecureCookies)
	requireAuth := middleware.Authentication(config.AuthService)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "movie-reviews-api",
			"version": "1.0.0",
		})
	})

	movies := router.Group("/movies")
	{
		movies.GET("", movieHandler.ListMovies)
		movies.POST("", requireAuth, movieHandler.CreateMovie)
		movies.POST("/reviews", requireAuth, reviewHandler.AddReviews)
		movies.GET("/:movieId", movieHandler.GetMovie)
		movies.GET("/:movieId/cast", movieHandler.ListCast)
		movies.GET("/:movieId/reviews", reviewHandler.ListMovieReviews)
		movies.GET("/:movieId/reviews/:reviewerName", reviewHandler.GetReviewerReview)
		movies.PUT("/:movieId/reviews/:reviewerName", requireAuth, reviewHandler.UpdateReview)
	}

	reviews := router.Group("/reviews")
	{
		reviews.GET("/:reviewerName", reviewHandler.ListReviewsByReviewer)
		reviews.GET("/:reviewerName/:movieId/translation", reviewHandler.TranslateReview)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config MiddlewareConfig) {
	if config.RateLimitRPS <= 0 {
		config.RateLimitRPS = 100
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 200
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 1 << 20
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	router.Use(middleware.ContentTypeValidation("application/json"))
	router.Use(middleware.RateLimiter(config.RateLimitRPS, config.RateLimitBurst))
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.PerformanceMonitor(config.SlowRequestThreshold))
	router.Use(middleware.AuditLogger())
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	authHandler := NewAuthHandler(config.AuthService, config.SecureCookies)

	dev := router.Group("/dev")
	{
		dev.POST("/token", authHandler.IssueToken)
	}
}
