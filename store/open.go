package store

import (
	"context"
	"fmt"

	"github.com/sicko7947/members"
)

// Store kinds accepted by Open
const (
	KindDynamoDB = "dynamodb"
	KindMemory   = "memory"
)

// Open builds the store selected by kind
func Open(ctx context.Context, kind string, cfg members.Config) (members.MemberStore, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindDynamoDB, "":
		client, err := NewDynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewDynamoDBStore(client, cfg.TableName), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
