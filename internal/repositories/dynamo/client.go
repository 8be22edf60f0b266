// Package dynamo implements the repositories on Amazon DynamoDB.
package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/repositories"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the repositories
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// NewClient builds a DynamoDB client from a loaded AWS configuration. A
// non-empty endpoint points the client at e.g. DynamoDB Local.
func NewClient(awsCfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// NewRepositoryContainer wires the DynamoDB repositories around one client
func NewRepositoryContainer(client DynamoDBAPI, cfg *repositories.Config, logger *logrus.Logger) *repositories.RepositoryContainer {
	if cfg == nil {
		cfg = repositories.DefaultConfig()
	}
	return &repositories.RepositoryContainer{
		Movies:  NewMovieRepository(client, cfg.Tables.Movies, cfg.DynamoDB.BatchSize, logger),
		Cast:    NewCastRepository(client, cfg.Tables.Cast, cfg.Tables.RoleIndex, cfg.DynamoDB.BatchSize, logger),
		Reviews: NewReviewRepository(client, cfg.Tables.Reviews, cfg.Tables.ReviewerIndex, cfg.DynamoDB.BatchSize, logger),
	}
}
