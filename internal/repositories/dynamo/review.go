package dynamo

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/repositories"
)

// ReviewRepository implements repositories.ReviewRepository for DynamoDB
type ReviewRepository struct {
	baseTable
	reviewerIndex string
}

// NewReviewRepository creates a new DynamoDB review repository
func NewReviewRepository(client DynamoDBAPI, table, reviewerIndex string, batchSize int, logger *logrus.Logger) *ReviewRepository {
	return &ReviewRepository{
		baseTable:     newBaseTable(client, table, batchSize, logger),
		reviewerIndex: reviewerIndex,
	}
}

func reviewKey(key models.ReviewKey) item {
	return item{
		"movieId":      &types.AttributeValueMemberN{Value: strconv.Itoa(key.MovieID)},
		"reviewerName": &types.AttributeValueMemberS{Value: key.ReviewerName},
	}
}

// Get retrieves a review by its composite key
func (r *ReviewRepository) Get(ctx context.Context, key models.ReviewKey) (*models.MovieReview, error) {
	it, err := r.getItem(ctx, "get_review", reviewKey(key), nil)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, repositories.NotFoundError(r.table, key.String())
	}

	var review models.MovieReview
	if err := attributevalue.UnmarshalMap(it, &review); err != nil {
		return nil, repositories.NewRepositoryError("get_review", r.table, key.String(), err)
	}
	return &review, nil
}

// Exists checks whether a review is stored under the exact key
func (r *ReviewRepository) Exists(ctx context.Context, key models.ReviewKey) (bool, error) {
	it, err := r.getItem(ctx, "review_exists", reviewKey(key), aws.String("movieId"))
	if err != nil {
		return false, err
	}
	return it != nil, nil
}

// QueryByMovie returns all reviews of a movie
func (r *ReviewRepository) QueryByMovie(ctx context.Context, movieID int) ([]*models.MovieReview, error) {
	keyCond := expression.Key("movieId").Equal(expression.Value(movieID))
	return r.queryReviews(ctx, "query_reviews_by_movie", nil, keyCond)
}

// QueryByReviewer returns a reviewer's reviews through the reviewer index
func (r *ReviewRepository) QueryByReviewer(ctx context.Context, reviewerName string) ([]*models.MovieReview, error) {
	keyCond := expression.Key("reviewerName").Equal(expression.Value(reviewerName))
	return r.queryReviews(ctx, "query_reviews_by_reviewer", aws.String(r.reviewerIndex), keyCond)
}

func (r *ReviewRepository) queryReviews(ctx context.Context, operation string, index *string, keyCond expression.KeyConditionBuilder) ([]*models.MovieReview, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}

	items, err := r.query(ctx, operation, &dynamodb.QueryInput{
		IndexName:                 index,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}

	var reviews []*models.MovieReview
	if err := attributevalue.UnmarshalListOfMaps(items, &reviews); err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return reviews, nil
}

// PutBatch writes reviews in chunks; duplicates of an existing key replace it
func (r *ReviewRepository) PutBatch(ctx context.Context, reviews []*models.MovieReview) error {
	items := make([]item, 0, len(reviews))
	for _, rv := range reviews {
		it, err := attributevalue.MarshalMap(rv)
		if err != nil {
			return repositories.NewRepositoryError("put_reviews", r.table, rv.Key().String(), err)
		}
		items = append(items, it)
	}
	return r.batchPut(ctx, "put_reviews", items)
}

// Update issues a single unconditional SET of the fields present in update
func (r *ReviewRepository) Update(ctx context.Context, key models.ReviewKey, update models.ReviewUpdate) error {
	if update.IsEmpty() {
		return repositories.ValidationError(r.table, key.String(), repositories.ErrUnsupported)
	}

	var set expression.UpdateBuilder
	if update.ReviewDate != nil {
		set = set.Set(expression.Name("reviewDate"), expression.Value(*update.ReviewDate))
	}
	if update.Content != nil {
		set = set.Set(expression.Name("content"), expression.Value(*update.Content))
	}
	if update.Rating != nil {
		set = set.Set(expression.Name("rating"), expression.Value(*update.Rating))
	}

	expr, err := expression.NewBuilder().WithUpdate(set).Build()
	if err != nil {
		return repositories.NewRepositoryError("update_review", r.table, key.String(), err)
	}

	start := time.Now()
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       reviewKey(key),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	r.logCall("update_review", logrus.Fields{"key": key.String(), "fields": update.Fields()}, time.Since(start), err)

	if err != nil {
		return mapError("update_review", r.table, key.String(), err)
	}
	return nil
}
