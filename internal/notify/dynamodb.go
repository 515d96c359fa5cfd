package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoUserDirectory looks up notification addresses in the
// user-emails table, keyed by userId with an email attribute.
type DynamoUserDirectory struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoUserDirectory returns a directory backed by the given table.
func NewDynamoUserDirectory(cfg aws.Config, table string) *DynamoUserDirectory {
	return &DynamoUserDirectory{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}
}

// Email resolves a user id to an address. A missing user or a user
// without an email attribute is an error; the caller treats it as a
// client problem, not a retryable one.
func (d *DynamoUserDirectory) Email(ctx context.Context, userID string) (string, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return "", fmt.Errorf("lookup user %s: %w", userID, err)
	}
	if out.Item == nil {
		return "", fmt.Errorf("user %s not found in %s", userID, d.table)
	}

	attr, ok := out.Item["email"].(*types.AttributeValueMemberS)
	if !ok || attr.Value == "" {
		return "", fmt.Errorf("user %s has no email address", userID)
	}
	return attr.Value, nil
}
