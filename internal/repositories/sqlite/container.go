package sqlite

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/repositories"
)

// NewRepositoryContainer wires the SQLite repositories over one connection.
// closeFn, when set, becomes the container's Close.
func NewRepositoryContainer(db *sql.DB, logger *logrus.Logger, closeFn func() error) *repositories.RepositoryContainer {
	return &repositories.RepositoryContainer{
		Movies:  NewMovieRepository(db, logger),
		Cast:    NewCastRepository(db, logger),
		Reviews: NewReviewRepository(db, logger),
		Close:   closeFn,
	}
}
