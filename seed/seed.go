// Package seed provisions the members table and loads fixture data into it.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/sicko7947/members"
)

// batchWriteLimit is the maximum number of requests in one BatchWriteItem call
const batchWriteLimit = 25

// maxUnprocessedRetries bounds how often unprocessed items are resubmitted
const maxUnprocessedRetries = 5

// defaultRetryBaseDelayMs is the base of the exponential backoff applied
// before resubmitting unprocessed items
const defaultRetryBaseDelayMs = 100

// TableClient defines the DynamoDB operations used by the seeder
type TableClient interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ TableClient = (*dynamodb.Client)(nil)

// Seeder manages the members table
type Seeder struct {
	client           TableClient
	tableName        string
	logger           zerolog.Logger
	waitTimeout      time.Duration
	retryBaseDelayMs int
}

// NewSeeder creates a seeder for tableName
func NewSeeder(client TableClient, tableName string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		client:           client,
		tableName:        tableName,
		logger:           logger,
		waitTimeout:      2 * time.Minute,
		retryBaseDelayMs: defaultRetryBaseDelayMs,
	}
}

// HasTable reports whether the table exists
func (s *Seeder) HasTable(ctx context.Context) (bool, error) {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to describe table: %w", err)
}

// CreateTable creates the table keyed by the string attribute "id" and waits
// for it to become active
func (s *Seeder) CreateTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(members.AttrID), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(members.AttrID), KeyType: types.KeyTypeHash},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}, s.waitTimeout); err != nil {
		return fmt.Errorf("failed waiting for table: %w", err)
	}

	return nil
}

// DeleteTable drops the table and waits until it is gone
func (s *Seeder) DeleteTable(ctx context.Context) error {
	_, err := s.client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	waiter := dynamodb.NewTableNotExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	}, s.waitTimeout); err != nil {
		return fmt.Errorf("failed waiting for table deletion: %w", err)
	}

	return nil
}

// Seed writes the given members in batches
func (s *Seeder) Seed(ctx context.Context, list []members.Member) error {
	for start := 0; start < len(list); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(list) {
			end = len(list)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, member := range list[start:end] {
			if member.ID() == "" {
				return fmt.Errorf("seed member at index %d has no id", start+len(requests))
			}
			item, err := attributevalue.MarshalMap(map[string]interface{}(member))
			if err != nil {
				return fmt.Errorf("failed to marshal member %s: %w", member.ID(), err)
			}
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.writeBatch(ctx, requests); err != nil {
			return err
		}

		s.logger.Debug().
			Str("table", s.tableName).
			Int("count", len(requests)).
			Msg("Seeded batch")
	}

	return nil
}

func (s *Seeder) writeBatch(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.tableName: requests}

	for attempt := 0; attempt <= maxUnprocessedRetries; attempt++ {
		if delay := members.CalculateBackoff(s.retryBaseDelayMs, attempt, "EXPONENTIAL"); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("batch write interrupted with %d members unprocessed: %w", len(pending[s.tableName]), ctx.Err())
			case <-timer.C:
			}
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to batch write members: %w", err)
		}

		if len(out.UnprocessedItems[s.tableName]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		if attempt == maxUnprocessedRetries {
			break
		}

		s.logger.Warn().
			Str("table", s.tableName).
			Int("unprocessed", len(pending[s.tableName])).
			Int("attempt", attempt+1).
			Dur("backoff", members.CalculateBackoff(s.retryBaseDelayMs, attempt+1, "EXPONENTIAL")).
			Msg("Retrying unprocessed items")
	}

	return fmt.Errorf("%d members left unprocessed", len(pending[s.tableName]))
}

// Reset recreates the table and loads list into it
func (s *Seeder) Reset(ctx context.Context, list []members.Member) error {
	s.logger.Info().Str("table", s.tableName).Msg("Checking if table exists")

	exists, err := s.HasTable(ctx)
	if err != nil {
		return err
	}

	if exists {
		s.logger.Info().Str("table", s.tableName).Msg("Table exists, deleting")
		if err := s.DeleteTable(ctx); err != nil {
			return err
		}
	}

	s.logger.Info().Str("table", s.tableName).Msg("Creating table")
	if err := s.CreateTable(ctx); err != nil {
		return err
	}

	s.logger.Info().Str("table", s.tableName).Int("count", len(list)).Msg("Seeding data")
	return s.Seed(ctx, list)
}

// LoadFile reads a JSON array of members
func LoadFile(path string) ([]members.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var list []members.Member
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return list, nil
}
