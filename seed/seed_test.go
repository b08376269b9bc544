package seed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/sicko7947/members"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTableClient keeps a single table's existence and items in memory
type fakeTableClient struct {
	exists      bool
	items       []map[string]types.AttributeValue
	created     []*dynamodb.CreateTableInput
	deleted     int
	batchSizes  []int
	unprocessed int  // number of leading requests to bounce on the next batch call
	throttled   bool // bounce every request on every call
	batchCalls  []time.Time
	onBatch     func()
	describeErr error
}

func (f *fakeTableClient) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = append(f.created, params)
	f.exists = true
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeTableClient) DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
	f.deleted++
	f.exists = false
	f.items = nil
	return &dynamodb.DeleteTableOutput{}, nil
}

func (f *fakeTableClient) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if !f.exists {
		return nil, &types.ResourceNotFoundException{Message: params.TableName}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
		},
	}, nil
}

func (f *fakeTableClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchCalls = append(f.batchCalls, time.Now())
	if f.onBatch != nil {
		f.onBatch()
	}

	out := &dynamodb.BatchWriteItemOutput{}
	for table, requests := range params.RequestItems {
		f.batchSizes = append(f.batchSizes, len(requests))

		bounce := f.unprocessed
		if f.throttled || bounce > len(requests) {
			bounce = len(requests)
		}
		f.unprocessed = 0

		if bounce > 0 {
			out.UnprocessedItems = map[string][]types.WriteRequest{table: requests[:bounce]}
		}
		for _, req := range requests[bounce:] {
			f.items = append(f.items, req.PutRequest.Item)
		}
	}
	return out, nil
}

func newTestSeeder(client TableClient) *Seeder {
	seeder := NewSeeder(client, "members-test", zerolog.Nop())
	seeder.retryBaseDelayMs = 1
	return seeder
}

func generateMembers(n int) []members.Member {
	list := make([]members.Member, n)
	for i := range list {
		list[i] = members.Member{"id": fmt.Sprintf("%d", i), "name": fmt.Sprintf("member-%d", i)}
	}
	return list
}

func TestHasTable(t *testing.T) {
	client := &fakeTableClient{}
	seeder := newTestSeeder(client)

	exists, err := seeder.HasTable(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)

	client.exists = true
	exists, err = seeder.HasTable(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)

	client.describeErr = errors.New("access denied")
	_, err = seeder.HasTable(context.Background())
	assert.Error(t, err)
}

func TestCreateTable(t *testing.T) {
	client := &fakeTableClient{}

	require.NoError(t, newTestSeeder(client).CreateTable(context.Background()))

	require.Len(t, client.created, 1)
	input := client.created[0]
	assert.Equal(t, "members-test", *input.TableName)
	require.Len(t, input.KeySchema, 1)
	assert.Equal(t, members.AttrID, *input.KeySchema[0].AttributeName)
	assert.Equal(t, types.KeyTypeHash, input.KeySchema[0].KeyType)
	assert.Equal(t, types.ScalarAttributeTypeS, input.AttributeDefinitions[0].AttributeType)
	assert.Equal(t, int64(1), *input.ProvisionedThroughput.ReadCapacityUnits)
	assert.Equal(t, int64(1), *input.ProvisionedThroughput.WriteCapacityUnits)
}

func TestSeed_Batches(t *testing.T) {
	client := &fakeTableClient{exists: true}

	require.NoError(t, newTestSeeder(client).Seed(context.Background(), generateMembers(60)))

	assert.Equal(t, []int{25, 25, 10}, client.batchSizes)
	assert.Len(t, client.items, 60)
}

func TestSeed_RetriesUnprocessed(t *testing.T) {
	client := &fakeTableClient{exists: true, unprocessed: 3}

	require.NoError(t, newTestSeeder(client).Seed(context.Background(), generateMembers(10)))

	assert.Equal(t, []int{10, 3}, client.batchSizes)
	assert.Len(t, client.items, 10)
}

func TestSeed_BacksOffBetweenRetries(t *testing.T) {
	client := &fakeTableClient{exists: true, throttled: true}
	seeder := newTestSeeder(client)
	seeder.retryBaseDelayMs = 5

	err := seeder.Seed(context.Background(), generateMembers(4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left unprocessed")

	require.Len(t, client.batchCalls, maxUnprocessedRetries+1)
	for i := 1; i < len(client.batchCalls); i++ {
		gap := client.batchCalls[i].Sub(client.batchCalls[i-1])
		want := time.Duration(seeder.retryBaseDelayMs) * time.Millisecond * time.Duration(1<<(i-1))
		assert.GreaterOrEqual(t, gap, want, "resubmit %d", i)
	}
}

func TestSeed_RetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeTableClient{exists: true, throttled: true, onBatch: cancel}
	seeder := newTestSeeder(client)
	seeder.retryBaseDelayMs = int(time.Hour / time.Millisecond)

	start := time.Now()
	err := seeder.Seed(ctx, generateMembers(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, client.batchCalls, 1)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestSeed_MissingID(t *testing.T) {
	client := &fakeTableClient{exists: true}

	err := newTestSeeder(client).Seed(context.Background(), []members.Member{{"name": "anonymous"}})
	require.Error(t, err)
	assert.Empty(t, client.batchSizes)
}

func TestReset(t *testing.T) {
	client := &fakeTableClient{
		exists: true,
		items:  []map[string]types.AttributeValue{{"id": &types.AttributeValueMemberS{Value: "old"}}},
	}

	require.NoError(t, newTestSeeder(client).Reset(context.Background(), generateMembers(3)))

	assert.Equal(t, 1, client.deleted)
	assert.Len(t, client.created, 1)
	assert.Len(t, client.items, 3)
}

func TestReset_NoExistingTable(t *testing.T) {
	client := &fakeTableClient{}

	require.NoError(t, newTestSeeder(client).Reset(context.Background(), generateMembers(2)))

	assert.Equal(t, 0, client.deleted)
	assert.Len(t, client.created, 1)
	assert.Len(t, client.items, 2)
}

func TestLoadFile(t *testing.T) {
	list, err := LoadFile(filepath.Join("testdata", "members.json"))
	require.NoError(t, err)

	assert.Equal(t, []members.Member{
		{"id": "1", "name": "Miguel"},
		{"id": "2", "name": "Francisco"},
		{"id": "3", "name": "Nelson"},
	}, list)

	_, err = LoadFile(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)
}
