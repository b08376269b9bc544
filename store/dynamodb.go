package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/members"
)

// DynamoDBStore implements members.MemberStore using AWS DynamoDB
type DynamoDBStore struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBStore creates a new DynamoDB-backed member store
func NewDynamoDBStore(client DynamoDBClient, tableName string) members.MemberStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
	}
}

// TableName returns the table the store reads and writes
func (s *DynamoDBStore) TableName() string {
	return s.tableName
}

// List scans the whole table, following LastEvaluatedKey until the scan is exhausted.
func (s *DynamoDBStore) List(ctx context.Context) ([]members.Member, error) {
	result := make([]members.Member, 0)
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		scanInput := &dynamodb.ScanInput{
			TableName: aws.String(s.tableName),
		}

		if lastEvaluatedKey != nil {
			scanInput.ExclusiveStartKey = lastEvaluatedKey
		}

		page, err := s.client.Scan(ctx, scanInput)
		if err != nil {
			return nil, members.NewBackendError("list members", "", err)
		}

		for _, item := range page.Items {
			member, err := unmarshalMember(item)
			if err != nil {
				return nil, members.NewBackendError("list members", "", err)
			}
			result = append(result, member)
		}

		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		lastEvaluatedKey = page.LastEvaluatedKey
	}

	return result, nil
}

func (s *DynamoDBStore) Get(ctx context.Context, id string) (members.Member, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       memberKey(id),
	})
	if err != nil {
		return nil, false, members.NewBackendError("get member", id, err)
	}

	if result.Item == nil {
		return nil, false, nil
	}

	member, err := unmarshalMember(result.Item)
	if err != nil {
		return nil, false, members.NewBackendError("get member", id, err)
	}

	return member, true, nil
}

func (s *DynamoDBStore) Put(ctx context.Context, member members.Member) error {
	item, err := attributevalue.MarshalMap(map[string]interface{}(member))
	if err != nil {
		return members.NewBackendError("put member", member.ID(), fmt.Errorf("failed to marshal member: %w", err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return members.NewBackendError("put member", member.ID(), err)
	}

	return nil
}

func (s *DynamoDBStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       memberKey(id),
	})
	if err != nil {
		return members.NewBackendError("delete member", id, err)
	}

	return nil
}

func unmarshalMember(item map[string]types.AttributeValue) (members.Member, error) {
	var member members.Member
	if err := attributevalue.UnmarshalMap(item, &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}
	return member, nil
}
