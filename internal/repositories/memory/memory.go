// Package memory provides map-backed repositories for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// Store holds the three tables in memory
type Store struct {
	mu      sync.RWMutex
	movies  map[int]models.Movie
	cast    map[int]map[string]models.MovieCast
	reviews map[int]map[string]models.MovieReview

	// FailWith, when set, is returned by every operation
	FailWith error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		movies:  make(map[int]models.Movie),
		cast:    make(map[int]map[string]models.MovieCast),
		reviews: make(map[int]map[string]models.MovieReview),
	}
}

// NewRepositoryContainer wires the memory repositories around one store
func NewRepositoryContainer(store *Store) *repositories.RepositoryContainer {
	if store == nil {
		store = NewStore()
	}
	return &repositories.RepositoryContainer{
		Movies:  &MovieRepository{store: store},
		Cast:    &CastRepository{store: store},
		Reviews: &ReviewRepository{store: store},
	}
}

func (s *Store) check(ctx context.Context, op, entity string) error {
	if err := ctx.Err(); err != nil {
		return repositories.NewRepositoryError(op, entity, "", err)
	}
	if s.FailWith != nil {
		return repositories.NewRepositoryError(op, entity, "", s.FailWith)
	}
	return nil
}

// MovieRepository implements repositories.MovieRepository
type MovieRepository struct {
	store *Store
}

// Get returns a copy of the movie with id
func (r *MovieRepository) Get(ctx context.Context, id int) (*models.Movie, error) {
	if err := r.store.check(ctx, "get", "movies"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.movies[id]
	if !ok {
		return nil, repositories.NotFoundError("movies", strconv.Itoa(id))
	}
	return &m, nil
}

// Exists reports whether a movie with id is stored
func (r *MovieRepository) Exists(ctx context.Context, id int) (bool, error) {
	if err := r.store.check(ctx, "exists", "movies"); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.movies[id]
	return ok, nil
}

// List returns every movie ordered by id
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	if err := r.store.check(ctx, "list", "movies"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*models.Movie, 0, len(r.store.movies))
	for _, m := range r.store.movies {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Put stores movie, replacing any existing entry
func (r *MovieRepository) Put(ctx context.Context, movie *models.Movie) error {
	return r.PutBatch(ctx, []*models.Movie{movie})
}

// PutBatch stores all movies under one lock
func (r *MovieRepository) PutBatch(ctx context.Context, movies []*models.Movie) error {
	if err := r.store.check(ctx, "put", "movies"); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, m := range movies {
		r.store.movies[m.ID] = *m
	}
	return nil
}

// CastRepository implements repositories.CastRepository
type CastRepository struct {
	store *Store
}

// QueryByMovie returns a movie's cast ordered by actor name, narrowed by filter
func (r *CastRepository) QueryByMovie(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error) {
	if err := r.store.check(ctx, "query", "cast"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*models.MovieCast
	for _, c := range r.store.cast[movieID] {
		if filter.ActorName != "" && c.ActorName != filter.ActorName {
			continue
		}
		if filter.RoleName != "" && c.RoleName != filter.RoleName {
			continue
		}
		c := c
		out = append(out, &c)
	}

	// Mirror the store's sort order: role index when filtering by role, actor otherwise
	sort.Slice(out, func(i, j int) bool {
		if filter.RoleName != "" && out[i].RoleName != out[j].RoleName {
			return out[i].RoleName < out[j].RoleName
		}
		return out[i].ActorName < out[j].ActorName
	})
	return out, nil
}

// PutBatch stores the cast entries keyed by movie and actor
func (r *CastRepository) PutBatch(ctx context.Context, cast []*models.MovieCast) error {
	if err := r.store.check(ctx, "put", "cast"); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range cast {
		if r.store.cast[c.MovieID] == nil {
			r.store.cast[c.MovieID] = make(map[string]models.MovieCast)
		}
		r.store.cast[c.MovieID][c.ActorName] = *c
	}
	return nil
}

// ReviewRepository implements repositories.ReviewRepository
type ReviewRepository struct {
	store *Store
}

// Get returns a copy of the review stored under key
func (r *ReviewRepository) Get(ctx context.Context, key models.ReviewKey) (*models.MovieReview, error) {
	if err := r.store.check(ctx, "get", "reviews"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rv, ok := r.store.reviews[key.MovieID][key.ReviewerName]
	if !ok {
		return nil, repositories.NotFoundError("reviews", key.String())
	}
	return &rv, nil
}

// Exists reports whether key is stored. Reviewer names match exactly.
func (r *ReviewRepository) Exists(ctx context.Context, key models.ReviewKey) (bool, error) {
	if err := r.store.check(ctx, "exists", "reviews"); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.reviews[key.MovieID][key.ReviewerName]
	return ok, nil
}

// QueryByMovie returns a movie's reviews ordered by reviewer name
func (r *ReviewRepository) QueryByMovie(ctx context.Context, movieID int) ([]*models.MovieReview, error) {
	if err := r.store.check(ctx, "query", "reviews"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*models.MovieReview
	for _, rv := range r.store.reviews[movieID] {
		rv := rv
		out = append(out, &rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewerName < out[j].ReviewerName })
	return out, nil
}

// QueryByReviewer returns one reviewer's reviews ordered by movie id
func (r *ReviewRepository) QueryByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error) {
	if err := r.store.check(ctx, "query", "reviews"); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*models.MovieReview
	for _, byReviewer := range r.store.reviews {
		if rv, ok := byReviewer[reviewerName]; ok {
			rv := rv
			out = append(out, &rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}

// PutBatch stores all reviews under one lock
func (r *ReviewRepository) PutBatch(ctx context.Context, reviews []*models.MovieReview) error {
	if err := r.store.check(ctx, "put", "reviews"); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rv := range reviews {
		if r.store.reviews[rv.MovieID] == nil {
			r.store.reviews[rv.MovieID] = make(map[string]models.MovieReview)
		}
		r.store.reviews[rv.MovieID][rv.ReviewerName] = *rv
	}
	return nil
}

// Update writes the set fields. Like the production store, an update on a
// missing key creates the item.
func (r *ReviewRepository) Update(ctx context.Context, key models.ReviewKey, update models.ReviewUpdate) error {
	if err := r.store.check(ctx, "update", "reviews"); err != nil {
		return err
	}
	if update.IsEmpty() {
		return repositories.ValidationError("reviews", key.String(), repositories.ErrUnsupported)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.reviews[key.MovieID] == nil {
		r.store.reviews[key.MovieID] = make(map[string]models.MovieReview)
	}
	rv, ok := r.store.reviews[key.MovieID][key.ReviewerName]
	if !ok {
		rv = models.MovieReview{MovieID: key.MovieID, ReviewerName: key.ReviewerName}
	}
	update.ApplyTo(&rv)
	r.store.reviews[key.MovieID][key.ReviewerName] = rv
	return nil
}
