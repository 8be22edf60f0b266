package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// CastRepository implements repositories.CastRepository for SQLite
type CastRepository struct {
	baseRepository
}

// NewCastRepository creates a new SQLite cast repository
func NewCastRepository(db *sql.DB, logger *logrus.Logger) *CastRepository {
	return &CastRepository{baseRepository: newBaseRepository(db, "movie_cast", logger)}
}

// QueryByMovie returns the cast of a movie, optionally narrowed by role or actor
func (r *CastRepository) QueryByMovie(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error) {
	conditions := []string{"movie_id = ?"}
	args := []interface{}{movieID}
	order := "actor_name"

	if filter.ActorName != "" {
		conditions = append(conditions, "actor_name = ?")
		args = append(args, filter.ActorName)
	}
	if filter.RoleName != "" {
		conditions = append(conditions, "role_name = ?")
		args = append(args, filter.RoleName)
		order = "role_name, actor_name"
	}

	query := `SELECT movie_id, actor_name, role_name, role_description FROM movie_cast WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY ` + order

	rows, err := r.executeQuery(ctx, "query_cast", query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cast []*models.MovieCast
	for rows.Next() {
		var c models.MovieCast
		if err := rows.Scan(&c.MovieID, &c.ActorName, &c.RoleName, &c.RoleDescription); err != nil {
			return nil, repositories.NewRepositoryError("query_cast", r.table, strconv.Itoa(movieID), err)
		}
		cast = append(cast, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("query_cast", r.table, strconv.Itoa(movieID), err)
	}
	return cast, nil
}

// PutBatch creates or replaces cast entries
func (r *CastRepository) PutBatch(ctx context.Context, cast []*models.MovieCast) error {
	query := `INSERT OR REPLACE INTO movie_cast (movie_id, actor_name, role_name, role_description)
		VALUES (?, ?, ?, ?)`
	return r.inTransaction(ctx, "put_cast", query, len(cast), func(i int) []interface{} {
		c := cast[i]
		return []interface{}{c.MovieID, c.ActorName, c.RoleName, c.RoleDescription}
	})
}
