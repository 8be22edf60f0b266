package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/retry"
	"movie-reviews-api/internal/repositories"
)

type item = map[string]types.AttributeValue

// baseTable provides the call plumbing shared by all DynamoDB repositories
type baseTable struct {
	client    DynamoDBAPI
	table     string
	batchSize int
	retry     *retry.Config
	logger    *logrus.Logger
}

func newBaseTable(client DynamoDBAPI, table string, batchSize int, logger *logrus.Logger) baseTable {
	if logger == nil {
		logger = logrus.New()
	}
	if batchSize <= 0 || batchSize > repositories.MaxBatchWriteSize {
		batchSize = repositories.MaxBatchWriteSize
	}
	return baseTable{
		client:    client,
		table:     table,
		batchSize: batchSize,
		retry: &retry.Config{
			MaxAttempts:   3,
			InitialDelay:  50 * time.Millisecond,
			MaxDelay:      time.Second,
			BackoffFactor: 2.0,
			JitterEnabled: true,
			Retryable:     isUnprocessed,
		},
		logger: logger,
	}
}

// logCall logs a store call with its execution time
func (b *baseTable) logCall(operation string, fields logrus.Fields, duration time.Duration, err error) {
	entry := b.logger.WithFields(logrus.Fields{
		"operation": operation,
		"table":     b.table,
		"duration":  duration,
	}).WithFields(fields)

	if err != nil {
		entry.WithError(err).Error("DynamoDB call failed")
	} else {
		entry.Debug("DynamoDB call executed")
	}
}

// getItem fetches one item by key; a nil item means absent
func (b *baseTable) getItem(ctx context.Context, operation string, key item, projection *string) (item, error) {
	start := time.Now()
	out, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(b.table),
		Key:                  key,
		ProjectionExpression: projection,
	})
	b.logCall(operation, nil, time.Since(start), err)

	if err != nil {
		return nil, mapError(operation, b.table, "", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// query follows LastEvaluatedKey until every page has been read
func (b *baseTable) query(ctx context.Context, operation string, input *dynamodb.QueryInput) ([]item, error) {
	input.TableName = aws.String(b.table)

	var items []item
	pages := 0
	start := time.Now()

	for {
		out, err := b.client.Query(ctx, input)
		pages++
		if err != nil {
			b.logCall(operation, logrus.Fields{"pages": pages}, time.Since(start), err)
			return nil, mapError(operation, b.table, "", err)
		}
		items = append(items, out.Items...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	b.logCall(operation, logrus.Fields{"pages": pages, "items": len(items)}, time.Since(start), nil)
	return items, nil
}

// scan reads the whole table
func (b *baseTable) scan(ctx context.Context, operation string) ([]item, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(b.table)}

	var items []item
	start := time.Now()

	for {
		out, err := b.client.Scan(ctx, input)
		if err != nil {
			b.logCall(operation, nil, time.Since(start), err)
			return nil, mapError(operation, b.table, "", err)
		}
		items = append(items, out.Items...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	b.logCall(operation, logrus.Fields{"items": len(items)}, time.Since(start), nil)
	return items, nil
}

// putItem writes one item unconditionally
func (b *baseTable) putItem(ctx context.Context, operation string, it item) error {
	start := time.Now()
	_, err := b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.table),
		Item:      it,
	})
	b.logCall(operation, nil, time.Since(start), err)

	if err != nil {
		return mapError(operation, b.table, "", err)
	}
	return nil
}

// errUnprocessed signals that BatchWriteItem handed back unprocessed items
var errUnprocessed = errors.New("unprocessed items returned")

func isUnprocessed(err error) bool {
	return errors.Is(err, errUnprocessed)
}

// batchPut writes items in chunks of batchSize. Unprocessed items are
// resubmitted with backoff; whatever is still left over is reported as a
// BatchError. Chunks already written stay written.
func (b *baseTable) batchPut(ctx context.Context, operation string, items []item) error {
	total := len(items)
	written := 0

	for offset := 0; offset < total; offset += b.batchSize {
		end := offset + b.batchSize
		if end > total {
			end = total
		}

		pending := make([]types.WriteRequest, 0, end-offset)
		for _, it := range items[offset:end] {
			pending = append(pending, types.WriteRequest{PutRequest: &types.PutRequest{Item: it}})
		}

		err := retry.Do(ctx, b.retry, func(ctx context.Context) error {
			start := time.Now()
			out, err := b.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{b.table: pending},
			})
			b.logCall(operation, logrus.Fields{"batch": len(pending)}, time.Since(start), err)
			if err != nil {
				return mapError(operation, b.table, "", err)
			}

			pending = out.UnprocessedItems[b.table]
			if len(pending) > 0 {
				return fmt.Errorf("%w: %d", errUnprocessed, len(pending))
			}
			return nil
		})

		if err != nil {
			written += (end - offset) - len(pending)
			var cause error
			if !isUnprocessed(err) {
				cause = err
			}
			return &repositories.BatchError{
				Entity:      b.table,
				Total:       total,
				Unprocessed: total - written,
				Err:         cause,
			}
		}
		written += end - offset
	}

	return nil
}

// mapError tags SDK errors with repository sentinels
func mapError(operation, table, key string, err error) error {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		missing    *types.ResourceNotFoundException
	)

	switch {
	case errors.As(err, &throughput), errors.As(err, &limit):
		err = fmt.Errorf("%w: %w", repositories.ErrThrottled, err)
	case errors.As(err, &missing):
		err = fmt.Errorf("%w: table %s: %w", repositories.ErrConnection, table, err)
	}
	return repositories.NewRepositoryError(operation, table, key, err)
}
