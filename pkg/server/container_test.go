package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

func testConfig(backend repositories.Backend, dbPath string) *config.Config {
	store := repositories.DefaultConfig()
	store.Backend = backend
	store.SQLite.Path = dbPath

	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Store:       store,
		JWT:         config.JWTConfig{Secret: "test", ExpiryHours: 1},
		Translate:   config.TranslateConfig{SourceLanguage: "en"},
		Server:      config.ServerConfig{InvocationTimeout: time.Second},
	}
}

// TestNewContainer verifies that every local backend produces working services
func TestNewContainer(t *testing.T) {
	tests := []struct {
		name    string
		backend repositories.Backend
	}{
		{"memory", repositories.BackendMemory},
		{"sqlite", repositories.BackendSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(tt.backend, filepath.Join(t.TempDir(), "movies.db"))

			container, err := NewContainer(ctx, cfg)
			if err != nil {
				t.Fatalf("Failed to create container: %v", err)
			}
			defer container.Close()

			if container.MovieService == nil || container.ReviewService == nil {
				t.Fatal("services are not initialized")
			}
			if container.AuthService == nil {
				t.Fatal("AuthService is nil")
			}

			if _, err := container.MovieService.CreateMovie(ctx, &models.Movie{ID: 5, Title: "Container"}); err != nil {
				t.Fatalf("CreateMovie() failed: %v", err)
			}
			movie, err := container.MovieService.GetMovie(ctx, 5)
			if err != nil || movie.Title != "Container" {
				t.Errorf("GetMovie() = %+v, %v", movie, err)
			}

			// non-AWS backends translate with the mock
			if _, err := container.ReviewService.AddReviews(ctx, []*models.MovieReview{
				{MovieID: 5, ReviewerName: "Ann", ReviewDate: "2024-01-01", Content: "Good", Rating: 7},
			}); err != nil {
				t.Fatalf("AddReviews() failed: %v", err)
			}
			tr, err := container.ReviewService.TranslateReview(ctx, models.ReviewKey{MovieID: 5, ReviewerName: "Ann"}, "es")
			if err != nil || tr.Content != "[es] Good" {
				t.Errorf("TranslateReview() = %+v, %v", tr, err)
			}
		})
	}
}

func TestNewContainerUnknownBackend(t *testing.T) {
	cfg := testConfig("cassandra", "")
	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestContainerClose(t *testing.T) {
	cfg := testConfig(repositories.BackendMemory, "")
	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	// the memory store holds nothing to release
	if err := container.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
