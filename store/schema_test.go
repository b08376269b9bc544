package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/members"
)

func TestMemberKey(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "simple id", id: "1"},
		{name: "UUID id", id: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "empty id", id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := memberKey(tt.id)
			if len(key) != 1 {
				t.Fatalf("memberKey(%q) has %d attributes, want 1", tt.id, len(key))
			}

			attr, ok := key[members.AttrID].(*types.AttributeValueMemberS)
			if !ok {
				t.Fatalf("memberKey(%q)[%s] is %T, want string attribute", tt.id, members.AttrID, key[members.AttrID])
			}
			if attr.Value != tt.id {
				t.Errorf("memberKey(%q) = %s, want %s", tt.id, attr.Value, tt.id)
			}
		})
	}
}
