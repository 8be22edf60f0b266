package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/services"
	"movie-reviews-api/pkg/lambda"
)

// MovieHandler serves the movie catalog and cast listings
type MovieHandler struct {
	movieService services.MovieService
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieService services.MovieService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

// HandleGetMovie handles GET /movies/{movieId}
func (h *MovieHandler) HandleGetMovie(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	movieID, err := models.ParseMovieID(req.PathParam("movieId"))
	if err != nil {
		return badRequest(err), nil
	}

	movie, err := h.movieService.GetMovie(ctx, movieID)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, movie), nil
}

// HandleListMovies handles GET /movies
func (h *MovieHandler) HandleListMovies(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	movies, err := h.movieService.ListMovies(ctx)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, movies), nil
}

// HandleCreateMovie handles POST /movies
func (h *MovieHandler) HandleCreateMovie(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body := bytes.TrimSpace(req.Body)
	if len(body) == 0 {
		return badRequest(models.ErrMissingBody), nil
	}

	var movie models.Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid request body: "+err.Error()), nil
	}

	created, err := h.movieService.CreateMovie(ctx, &movie)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusCreated, created), nil
}

// HandleListCast handles GET /movies/{movieId}/cast
func (h *MovieHandler) HandleListCast(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	movieID, err := models.ParseMovieID(req.PathParam("movieId"))
	if err != nil {
		return badRequest(err), nil
	}

	filter := models.CastFilter{
		RoleName:  req.QueryParam("roleName"),
		ActorName: req.QueryParam("actorName"),
	}

	cast, err := h.movieService.ListCast(ctx, movieID, filter)
	if err != nil {
		return errorFromService(req, err), nil
	}
	return dataResponse(http.StatusOK, cast), nil
}

// @Summary Get a movie
// @Description Get a movie by id
// @Tags movies
// @Produce json
// @Param movieId path int true "Movie ID"
// @Success 200 {object} DataResponse{data=models.Movie}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	serveGin(c, h.HandleGetMovie)
}

// @Summary List movies
// @Description List every movie in the catalog
// @Tags movies
// @Produce json
// @Success 200 {object} DataResponse{data=[]models.Movie}
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c *gin.Context) {
	serveGin(c, h.HandleListMovies)
}

// @Summary Create a movie
// @Description Add a movie to the catalog, replacing any movie with the same id
// @Tags movies
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param movie body models.Movie true "Movie"
// @Success 201 {object} DataResponse{data=models.Movie}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	serveGin(c, h.HandleCreateMovie)
}

// @Summary List a movie's cast
// @Description List cast members, optionally filtered by role or actor
// @Tags cast
// @Produce json
// @Param movieId path int true "Movie ID"
// @Param roleName query string false "Role name"
// @Param actorName query string false "Actor name"
// @Success 200 {object} DataResponse{data=[]models.MovieCast}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/cast [get]
func (h *MovieHandler) ListCast(c *gin.Context) {
	serveGin(c, h.HandleListCast)
}
