package dynamo

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// CastRepository implements repositories.CastRepository for DynamoDB
type CastRepository struct {
	baseTable
	roleIndex string
}

// NewCastRepository creates a new DynamoDB cast repository
func NewCastRepository(client DynamoDBAPI, table, roleIndex string, batchSize int, logger *logrus.Logger) *CastRepository {
	return &CastRepository{
		baseTable: newBaseTable(client, table, batchSize, logger),
		roleIndex: roleIndex,
	}
}

// QueryByMovie returns the cast of a movie. A role filter is served by the
// role index; an actor filter is a sort key match on the base table.
func (r *CastRepository) QueryByMovie(ctx context.Context, movieID int, filter models.CastFilter) ([]*models.MovieCast, error) {
	keyCond := expression.Key("movieId").Equal(expression.Value(movieID))
	builder := expression.NewBuilder()
	var index *string

	switch {
	case filter.ActorName != "":
		keyCond = keyCond.And(expression.Key("actorName").Equal(expression.Value(filter.ActorName)))
		if filter.RoleName != "" {
			builder = builder.WithFilter(expression.Name("roleName").Equal(expression.Value(filter.RoleName)))
		}
	case filter.RoleName != "" && r.roleIndex != "":
		keyCond = keyCond.And(expression.Key("roleName").Equal(expression.Value(filter.RoleName)))
		index = aws.String(r.roleIndex)
	case filter.RoleName != "":
		builder = builder.WithFilter(expression.Name("roleName").Equal(expression.Value(filter.RoleName)))
	}

	expr, err := builder.WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, repositories.NewRepositoryError("query_cast", r.table, strconv.Itoa(movieID), err)
	}

	items, err := r.query(ctx, "query_cast", &dynamodb.QueryInput{
		IndexName:                 index,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}

	var cast []*models.MovieCast
	if err := attributevalue.UnmarshalListOfMaps(items, &cast); err != nil {
		return nil, repositories.NewRepositoryError("query_cast", r.table, strconv.Itoa(movieID), err)
	}
	return cast, nil
}

// PutBatch creates or replaces cast entries
func (r *CastRepository) PutBatch(ctx context.Context, cast []*models.MovieCast) error {
	items := make([]item, 0, len(cast))
	for _, c := range cast {
		it, err := attributevalue.MarshalMap(c)
		if err != nil {
			return repositories.NewRepositoryError("put_cast", r.table, c.ActorName, err)
		}
		items = append(items, it)
	}
	return r.batchPut(ctx, "put_cast", items)
}
