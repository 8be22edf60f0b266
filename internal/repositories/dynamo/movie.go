package dynamo

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// MovieRepository implements repositories.MovieRepository for DynamoDB
type MovieRepository struct {
	baseTable
}

// NewMovieRepository creates a new DynamoDB movie repository
func NewMovieRepository(client DynamoDBAPI, table string, batchSize int, logger *logrus.Logger) *MovieRepository {
	return &MovieRepository{baseTable: newBaseTable(client, table, batchSize, logger)}
}

func movieKey(id int) item {
	return item{"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)}}
}

// Get retrieves a movie by id
func (r *MovieRepository) Get(ctx context.Context, id int) (*models.Movie, error) {
	it, err := r.getItem(ctx, "get_movie", movieKey(id), nil)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, repositories.NotFoundError(r.table, strconv.Itoa(id))
	}

	var movie models.Movie
	if err := attributevalue.UnmarshalMap(it, &movie); err != nil {
		return nil, repositories.NewRepositoryError("get_movie", r.table, strconv.Itoa(id), err)
	}
	return &movie, nil
}

// Exists checks if a movie with the given id exists
func (r *MovieRepository) Exists(ctx context.Context, id int) (bool, error) {
	it, err := r.getItem(ctx, "movie_exists", movieKey(id), aws.String("id"))
	if err != nil {
		return false, err
	}
	return it != nil, nil
}

// List returns every movie in the table
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	items, err := r.scan(ctx, "list_movies")
	if err != nil {
		return nil, err
	}

	var movies []*models.Movie
	if err := attributevalue.UnmarshalListOfMaps(items, &movies); err != nil {
		return nil, repositories.NewRepositoryError("list_movies", r.table, "", err)
	}
	return movies, nil
}

// Put creates or replaces a movie
func (r *MovieRepository) Put(ctx context.Context, movie *models.Movie) error {
	it, err := attributevalue.MarshalMap(movie)
	if err != nil {
		return repositories.NewRepositoryError("put_movie", r.table, strconv.Itoa(movie.ID), err)
	}
	return r.putItem(ctx, "put_movie", it)
}

// PutBatch creates or replaces several movies
func (r *MovieRepository) PutBatch(ctx context.Context, movies []*models.Movie) error {
	items := make([]item, 0, len(movies))
	for _, m := range movies {
		it, err := attributevalue.MarshalMap(m)
		if err != nil {
			return repositories.NewRepositoryError("put_movies", r.table, strconv.Itoa(m.ID), err)
		}
		items = append(items, it)
	}
	return r.batchPut(ctx, "put_movies", items)
}
