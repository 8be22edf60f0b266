package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/translate"
	"movie-reviews-api/internal/middleware"
	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories/memory"
	"movie-reviews-api/internal/services"
	"movie-reviews-api/pkg/lambda"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
}

type testEnv struct {
	router     *gin.Engine
	lambda     *lambda.Router
	store      *memory.Store
	translator *translate.MockTranslator
	cookie     string
}

type envelope struct {
	Data             json.RawMessage     `json:"data"`
	Message          string              `json:"message"`
	Error            string              `json:"error"`
	ValidationErrors []models.FieldError `json:"validation_errors"`
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	repos := memory.NewRepositoryContainer(store)

	if err := repos.Movies.PutBatch(ctx, []*models.Movie{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
		{ID: 3, Title: "Unreviewed"},
	}); err != nil {
		t.Fatalf("seed movies: %v", err)
	}
	if err := repos.Reviews.PutBatch(ctx, []*models.MovieReview{
		{MovieID: 1, ReviewerName: "Jane Doe", ReviewDate: "2020-03-01", Content: "Loved it", Rating: 2},
		{MovieID: 1, ReviewerName: "Joe Bloggs", ReviewDate: "2021-06-01", Content: "Fine", Rating: 4},
		{MovieID: 1, ReviewerName: "Ann", ReviewDate: "2021-01-01", Content: "Great", Rating: 5},
		{MovieID: 1, ReviewerName: "Bob", ReviewDate: "2020-12-31", Content: "Superb", Rating: 5},
		{MovieID: 2, ReviewerName: "Jane Doe", ReviewDate: "2022-02-02", Content: "Meh", Rating: 3},
	}); err != nil {
		t.Fatalf("seed reviews: %v", err)
	}
	if err := repos.Cast.PutBatch(ctx, []*models.MovieCast{
		{MovieID: 1, ActorName: "Amy", RoleName: "Lead"},
		{MovieID: 1, ActorName: "Ben", RoleName: "Support"},
	}); err != nil {
		t.Fatalf("seed cast: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tr := translate.NewMockTranslator()
	svc, err := services.NewServiceContainer(repos, &services.ServiceConfig{
		Translator:     tr,
		SourceLanguage: "en",
		Logger:         logger,
	})
	if err != nil {
		t.Fatalf("NewServiceContainer() failed: %v", err)
	}

	auth := middleware.NewAuthService(&middleware.AuthConfig{JWTSecret: "test-secret"})
	token, err := auth.GenerateToken("tester")
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	cfg := &RouterConfig{
		MovieService:  svc.MovieService,
		ReviewService: svc.ReviewService,
		AuthService:   auth,
	}

	router := gin.New()
	SetupMiddleware(router, MiddlewareConfig{RateLimitRPS: 1000, RateLimitBurst: 1000})
	SetupRoutes(router, cfg)
	SetupDevelopmentRoutes(router, cfg)

	lr := lambda.NewRouter(time.Second, logger)
	movieHandler := NewMovieHandler(svc.MovieService)
	reviewHandler := NewReviewHandler(svc.ReviewService)
	RegisterMovieRoutes(lr, movieHandler)
	RegisterReviewRoutes(lr, reviewHandler)
	RegisterTranslationRoutes(lr, reviewHandler)

	return &testEnv{
		router:     router,
		lambda:     lr,
		store:      store,
		translator: tr,
		cookie:     auth.CookieName() + "=" + token,
	}
}

func (e *testEnv) do(t *testing.T, method, target, body string, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Cookie", e.cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func decodeReviews(t *testing.T, raw json.RawMessage) []models.MovieReview {
	t.Helper()
	var reviews []models.MovieReview
	if err := json.Unmarshal(raw, &reviews); err != nil {
		t.Fatalf("invalid review list %s: %v", raw, err)
	}
	return reviews
}

func reviewerNames(reviews []models.MovieReview) string {
	names := make([]string, len(reviews))
	for i, r := range reviews {
		names[i] = r.ReviewerName
	}
	return strings.Join(names, ",")
}

func TestListMovieReviews(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantNames   string
		wantMessage string
	}{
		{"all reviews", "/movies/1/reviews", http.StatusOK, "Ann,Bob,Jane Doe,Joe Bloggs", ""},
		{"min rating", "/movies/1/reviews?minRating=5", http.StatusOK, "Ann,Bob", ""},
		{"year", "/movies/1/reviews?year=2021", http.StatusOK, "Ann,Joe Bloggs", ""},
		{"min rating and year", "/movies/1/reviews?minRating=5&year=2021", http.StatusOK, "Ann", ""},
		{"filters remove everything", "/movies/1/reviews?minRating=5&year=1999", http.StatusOK, "", ""},
		{"non-numeric movie id", "/movies/abc/reviews", http.StatusBadRequest, "", `invalid movieId: "abc"`},
		{"non-numeric min rating", "/movies/1/reviews?minRating=high", http.StatusBadRequest, "", `invalid minRating: "high"`},
		{"non-numeric year", "/movies/1/reviews?year=last", http.StatusBadRequest, "", `invalid year: "last"`},
		{"movie without reviews", "/movies/3/reviews", http.StatusNotFound, "", "No movie reviews found for this movie"},
		{"unknown movie", "/movies/99/reviews", http.StatusNotFound, "", "Movie not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodGet, tt.target, "", false)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("unexpected content type %q", ct)
			}
			if tt.wantStatus != http.StatusOK {
				if body.Message != tt.wantMessage {
					t.Errorf("expected message %q, got %q", tt.wantMessage, body.Message)
				}
				return
			}
			if got := reviewerNames(decodeReviews(t, body.Data)); got != tt.wantNames {
				t.Errorf("expected reviewers %q, got %q", tt.wantNames, got)
			}
		})
	}
}

func TestGetReviewerReview(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"exact name", "/movies/1/reviews/Ann", http.StatusOK},
		{"encoded space", "/movies/1/reviews/Jane%20Doe", http.StatusOK},
		{"different case", "/movies/1/reviews/ann", http.StatusNotFound},
		{"other movie", "/movies/3/reviews/Ann", http.StatusNotFound},
		{"non-numeric movie id", "/movies/x/reviews/Ann", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodGet, tt.target, "", false)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusNotFound && body.Message != "No reviews found for this movie and reviewer" {
				t.Errorf("unexpected message %q", body.Message)
			}
			if tt.wantStatus == http.StatusOK {
				if reviews := decodeReviews(t, body.Data); len(reviews) != 1 {
					t.Errorf("expected one review, got %d", len(reviews))
				}
			}
		})
	}
}

func TestListReviewsByReviewer(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/reviews/Jane%20Doe", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	reviews := decodeReviews(t, body.Data)
	if len(reviews) != 2 || reviews[0].MovieID != 1 || reviews[1].MovieID != 2 {
		t.Errorf("unexpected reviews: %+v", reviews)
	}

	w, _ = env.do(t, http.MethodGet, "/reviews/Nobody", "", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRepeatedReadsAreIdentical(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	targets := []string{
		"/movies/1/reviews",
		"/movies/1/reviews?minRating=4&year=2021",
		"/movies/1/reviews/Jane%20Doe",
		"/movies/3/reviews",
		"/reviews/Jane%20Doe",
		"/reviews/Nobody",
	}

	for _, target := range targets {
		t.Run("gin "+target, func(t *testing.T) {
			first, _ := env.do(t, http.MethodGet, target, "", false)
			second, _ := env.do(t, http.MethodGet, target, "", false)

			if first.Code != second.Code {
				t.Errorf("status changed: %d then %d", first.Code, second.Code)
			}
			if first.Body.String() != second.Body.String() {
				t.Errorf("body changed:\n%s\n%s", first.Body.String(), second.Body.String())
			}
		})
	}

	for _, target := range targets {
		t.Run("lambda "+target, func(t *testing.T) {
			path, rawQuery, _ := strings.Cut(target, "?")
			event := events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: path}
			if rawQuery != "" {
				event.QueryStringParameters = map[string]string{}
				for _, pair := range strings.Split(rawQuery, "&") {
					k, v, _ := strings.Cut(pair, "=")
					event.QueryStringParameters[k] = v
				}
			}

			first, err := env.lambda.Serve(ctx, event)
			if err != nil {
				t.Fatalf("Serve() failed: %v", err)
			}
			second, err := env.lambda.Serve(ctx, event)
			if err != nil {
				t.Fatalf("Serve() failed: %v", err)
			}

			if first.StatusCode != second.StatusCode || first.Body != second.Body {
				t.Errorf("response changed: %d %s then %d %s",
					first.StatusCode, first.Body, second.StatusCode, second.Body)
			}
		})
	}
}

func TestUpdateReview(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		body        string
		authed      bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "unauthenticated",
			target:     "/movies/1/reviews/Ann",
			body:       `{"movieId":1,"reviewerName":"Ann","content":"x"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "updates content",
			target:      "/movies/1/reviews/Ann",
			body:        `{"movieId":1,"reviewerName":"Ann","content":"Changed my mind"}`,
			authed:      true,
			wantStatus:  http.StatusOK,
			wantMessage: "Review text updated successfully",
		},
		{
			name:        "encoded space in path",
			target:      "/movies/1/reviews/Jane%20Doe",
			body:        `{"movieId":1,"reviewerName":"Jane Doe","rating":7}`,
			authed:      true,
			wantStatus:  http.StatusOK,
			wantMessage: "Review text updated successfully",
		},
		{
			name:        "body key mismatch",
			target:      "/movies/1/reviews/Ann",
			body:        `{"movieId":2,"reviewerName":"Ann","content":"nope"}`,
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid movieId or reviewerName",
		},
		{
			name:        "body key missing",
			target:      "/movies/1/reviews/Ann",
			body:        `{"content":"nope"}`,
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid movieId or reviewerName",
		},
		{
			name:        "no updatable fields",
			target:      "/movies/1/reviews/Ann",
			body:        `{"movieId":1,"reviewerName":"Ann","rating":"ten"}`,
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "No updatable fields provided",
		},
		{
			name:        "unknown review",
			target:      "/movies/1/reviews/Zed",
			body:        `{"movieId":1,"reviewerName":"Zed","content":"hi"}`,
			authed:      true,
			wantStatus:  http.StatusNotFound,
			wantMessage: "No reviews found for this movie and reviewer",
		},
		{
			name:        "missing body",
			target:      "/movies/1/reviews/Ann",
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request parameters",
		},
		{
			name:        "non-numeric movie id",
			target:      "/movies/one/reviews/Ann",
			body:        `{"movieId":1,"reviewerName":"Ann","content":"x"}`,
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request parameters",
		},
		{
			name:       "rating out of range",
			target:     "/movies/1/reviews/Ann",
			body:       `{"movieId":1,"reviewerName":"Ann","rating":11}`,
			authed:     true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			w, body := env.do(t, http.MethodPut, tt.target, tt.body, tt.authed)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantMessage != "" && body.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, body.Message)
			}
		})
	}
}

func TestUpdateReviewLeavesOtherFields(t *testing.T) {
	env := setupTestEnv(t)
	body := `{"movieId":1,"reviewerName":"Ann","content":"Changed my mind"}`

	// applying the same update twice gives the same state
	for i := 0; i < 2; i++ {
		w, _ := env.do(t, http.MethodPut, "/movies/1/reviews/Ann", body, true)
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}

		_, got := env.do(t, http.MethodGet, "/movies/1/reviews/Ann", "", false)
		reviews := decodeReviews(t, got.Data)
		if len(reviews) != 1 {
			t.Fatalf("expected one review, got %d", len(reviews))
		}
		r := reviews[0]
		if r.Content != "Changed my mind" || r.Rating != 5 || r.ReviewDate != "2021-01-01" {
			t.Errorf("attempt %d: unexpected review %+v", i+1, r)
		}
	}

	// a rejected update leaves the review untouched
	env.do(t, http.MethodPut, "/movies/1/reviews/Ann", `{"movieId":1,"reviewerName":"Bob","content":"hijack"}`, true)
	_, got := env.do(t, http.MethodGet, "/movies/1/reviews/Ann", "", false)
	if r := decodeReviews(t, got.Data)[0]; r.Content != "Changed my mind" {
		t.Errorf("rejected update changed the review: %+v", r)
	}
}

func TestAddReviews(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/movies/reviews",
		`{"movieId":3,"reviewerName":"Cat","reviewDate":"2023-04-04","content":"Fun","rating":6}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("single: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if body.Message != "1 review(s) added" {
		t.Errorf("unexpected message %q", body.Message)
	}

	w, body = env.do(t, http.MethodPost, "/movies/reviews", `[
		{"movieId":3,"reviewerName":"Dan","reviewDate":"2023-05-05","content":"Dull","rating":3},
		{"movieId":3,"reviewerName":"Cat","reviewDate":"2023-06-06","content":"Better on rewatch","rating":8}
	]`, true)
	if w.Code != http.StatusCreated || body.Message != "2 review(s) added" {
		t.Fatalf("array: got %d %q", w.Code, body.Message)
	}

	_, list := env.do(t, http.MethodGet, "/movies/3/reviews", "", false)
	reviews := decodeReviews(t, list.Data)
	if reviewerNames(reviews) != "Cat,Dan" || reviews[0].Rating != 8 {
		t.Errorf("duplicate key should replace: %+v", reviews)
	}

	w, body = env.do(t, http.MethodPost, "/movies/reviews",
		`{"movieId":3,"reviewerName":"Eve","reviewDate":"2023-05-05","content":"x","rating":12}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid rating: expected 400, got %d", w.Code)
	}
	if len(body.ValidationErrors) == 0 || body.ValidationErrors[0].Field != "rating" {
		t.Errorf("expected rating validation error, got %+v", body.ValidationErrors)
	}

	w, _ = env.do(t, http.MethodPost, "/movies/reviews", `not json`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", w.Code)
	}

	w, _ = env.do(t, http.MethodPost, "/movies/reviews",
		`{"movieId":3,"reviewerName":"Cat","reviewDate":"2023-04-04","content":"Fun","rating":6}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: expected 401, got %d", w.Code)
	}
}

func TestTranslateReview(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/reviews/Jane%20Doe/1/translation?language=fr", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got services.TranslatedReview
	if err := json.Unmarshal(body.Data, &got); err != nil {
		t.Fatalf("invalid translation: %v", err)
	}
	if got.Content != "[fr] Loved it" || got.OriginalContent != "Loved it" || got.TargetLanguage != "fr" || got.SourceLanguage != "en" {
		t.Errorf("unexpected translation: %+v", got)
	}

	w, _ = env.do(t, http.MethodGet, "/reviews/Jane%20Doe/1/translation", "", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing language: expected 400, got %d", w.Code)
	}

	w, _ = env.do(t, http.MethodGet, "/reviews/Nobody/1/translation?language=fr", "", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown review: expected 404, got %d", w.Code)
	}

	env.translator.TranslateFunc = func(ctx context.Context, text, source, target string) (*translate.Result, error) {
		return nil, &translate.Error{Source: source, Target: target, Err: translate.ErrUnavailable}
	}
	w, _ = env.do(t, http.MethodGet, "/reviews/Ann/1/translation?language=fr", "", false)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("translator failure: expected 500, got %d", w.Code)
	}
}

func TestMovieEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/movies/2", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var movie models.Movie
	if err := json.Unmarshal(body.Data, &movie); err != nil || movie.Title != "Second" {
		t.Errorf("unexpected movie %s (%v)", body.Data, err)
	}

	if w, _ := env.do(t, http.MethodGet, "/movies/77", "", false); w.Code != http.StatusNotFound {
		t.Errorf("unknown movie: expected 404, got %d", w.Code)
	}
	if w, _ := env.do(t, http.MethodGet, "/movies/0", "", false); w.Code != http.StatusBadRequest {
		t.Errorf("zero id: expected 400, got %d", w.Code)
	}

	w, body = env.do(t, http.MethodGet, "/movies/1/cast?roleName=Lead", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("cast: expected 200, got %d", w.Code)
	}
	var cast []models.MovieCast
	if err := json.Unmarshal(body.Data, &cast); err != nil || len(cast) != 1 || cast[0].ActorName != "Amy" {
		t.Errorf("unexpected cast %s (%v)", body.Data, err)
	}

	w, _ = env.do(t, http.MethodPost, "/movies", `{"id":10,"title":"New","vote_average":6.5}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w, _ := env.do(t, http.MethodGet, "/movies/10", "", false); w.Code != http.StatusOK {
		t.Errorf("created movie: expected 200, got %d", w.Code)
	}

	if w, _ := env.do(t, http.MethodPost, "/movies", `{"title":"No id"}`, true); w.Code != http.StatusBadRequest {
		t.Errorf("invalid movie: expected 400, got %d", w.Code)
	}
	if w, _ := env.do(t, http.MethodPost, "/movies", `{"id":11,"title":"Anon"}`, false); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: expected 401, got %d", w.Code)
	}
}

func TestStoreFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.store.FailWith = errors.New("table unavailable")

	for _, target := range []string{"/movies/1/reviews", "/movies/1/reviews/Ann", "/movies", "/reviews/Ann"} {
		w, body := env.do(t, http.MethodGet, target, "", false)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", target, w.Code)
			continue
		}
		if !strings.Contains(body.Message, "table unavailable") {
			t.Errorf("%s: expected the cause in the message, got %q", target, body.Message)
		}
		if body.Error == "" {
			t.Errorf("%s: missing error title", target)
		}
	}
}

func TestLambdaRoutes(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		event      events.APIGatewayProxyRequest
		wantStatus int
	}{
		{
			name: "raw path with encoded space",
			event: events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodGet,
				Path:       "/movies/1/reviews/Jane%20Doe",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "resource template with path parameters",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:     http.MethodGet,
				Resource:       "/movies/{movieId}/reviews/{reviewerName}",
				Path:           "/movies/1/reviews/Jane%20Doe",
				PathParameters: map[string]string{"movieId": "1", "reviewerName": "Jane%20Doe"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "query filters",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:            http.MethodGet,
				Path:                  "/movies/1/reviews",
				QueryStringParameters: map[string]string{"minRating": "5"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "update",
			event: events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodPut,
				Path:       "/movies/1/reviews/Jane%20Doe",
				Body:       `{"movieId":1,"reviewerName":"Jane Doe","content":"Second thoughts"}`,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "translation",
			event: events.APIGatewayProxyRequest{
				HTTPMethod:            http.MethodGet,
				Path:                  "/reviews/Ann/1/translation",
				QueryStringParameters: map[string]string{"language": "de"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown route",
			event: events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodDelete,
				Path:       "/movies/1",
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.lambda.Serve(ctx, tt.event)
			if err != nil {
				t.Fatalf("Serve() failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.StatusCode, resp.Body)
			}
			if resp.Headers["Content-Type"] != "application/json" {
				t.Errorf("unexpected headers %v", resp.Headers)
			}
		})
	}
}

func TestDevToken(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/dev/token", strings.NewReader(`{"username":"joe"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.DefaultCookieName || cookies[0].Value == "" {
		t.Fatalf("expected token cookie, got %v", cookies)
	}

	me := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	me.AddCookie(cookies[0])
	mw := httptest.NewRecorder()
	env.router.ServeHTTP(mw, me)
	if mw.Code != http.StatusOK || !strings.Contains(mw.Body.String(), `"joe"`) {
		t.Errorf("expected current user joe, got %d %s", mw.Code, mw.Body.String())
	}
}
