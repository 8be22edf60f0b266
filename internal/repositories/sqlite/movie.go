package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

const movieColumns = `id, title, original_title, original_language, overview, release_date,
	genre_ids, popularity, vote_average, vote_count, adult, video, poster_path, backdrop_path`

const upsertMovie = `INSERT OR REPLACE INTO movies (` + movieColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// MovieRepository implements repositories.MovieRepository for SQLite
type MovieRepository struct {
	baseRepository
}

// NewMovieRepository creates a new SQLite movie repository
func NewMovieRepository(db *sql.DB, logger *logrus.Logger) *MovieRepository {
	return &MovieRepository{baseRepository: newBaseRepository(db, "movies", logger)}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		m      models.Movie
		genres string
	)
	err := row.Scan(
		&m.ID, &m.Title, &m.OriginalTitle, &m.OriginalLanguage, &m.Overview, &m.ReleaseDate,
		&genres, &m.Popularity, &m.VoteAverage, &m.VoteCount, &m.Adult, &m.Video,
		&m.PosterPath, &m.BackdropPath,
	)
	if err != nil {
		return nil, err
	}
	if genres != "" {
		if err := json.Unmarshal([]byte(genres), &m.GenreIDs); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func movieArgs(m *models.Movie) ([]interface{}, error) {
	genres := m.GenreIDs
	if genres == nil {
		genres = []int{}
	}
	encoded, err := json.Marshal(genres)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		m.ID, m.Title, m.OriginalTitle, m.OriginalLanguage, m.Overview, m.ReleaseDate,
		string(encoded), m.Popularity, m.VoteAverage, m.VoteCount, m.Adult, m.Video,
		m.PosterPath, m.BackdropPath,
	}, nil
}

// Get retrieves a movie by id
func (r *MovieRepository) Get(ctx context.Context, id int) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`

	movie, err := scanMovie(r.executeQueryRow(ctx, "get_movie", query, id))
	if err == sql.ErrNoRows {
		return nil, repositories.NotFoundError(r.table, strconv.Itoa(id))
	}
	if err != nil {
		return nil, repositories.NewRepositoryError("get_movie", r.table, strconv.Itoa(id), err)
	}
	return movie, nil
}

// Exists checks if a movie with the given id exists
func (r *MovieRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, "movie_exists", "id = ?", strconv.Itoa(id), id)
}

// List returns every movie ordered by id
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	rows, err := r.executeQuery(ctx, "list_movies", `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("list_movies", r.table, "", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_movies", r.table, "", err)
	}
	return movies, nil
}

// Put creates or replaces a movie
func (r *MovieRepository) Put(ctx context.Context, movie *models.Movie) error {
	args, err := movieArgs(movie)
	if err != nil {
		return repositories.NewRepositoryError("put_movie", r.table, strconv.Itoa(movie.ID), err)
	}
	_, err = r.executeExec(ctx, "put_movie", upsertMovie, args...)
	return err
}

// PutBatch creates or replaces several movies in one transaction
func (r *MovieRepository) PutBatch(ctx context.Context, movies []*models.Movie) error {
	all := make([][]interface{}, len(movies))
	for i, m := range movies {
		args, err := movieArgs(m)
		if err != nil {
			return repositories.NewRepositoryError("put_movies", r.table, strconv.Itoa(m.ID), err)
		}
		all[i] = args
	}
	return r.inTransaction(ctx, "put_movies", upsertMovie, len(all), func(i int) []interface{} { return all[i] })
}
