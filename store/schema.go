package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/members"
)

// DynamoDB schema: a single hash key on members.AttrID, no sort key, no
// secondary indexes.

// memberKey builds the primary key of a member item
func memberKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		members.AttrID: &types.AttributeValueMemberS{Value: id},
	}
}
