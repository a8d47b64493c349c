package repository

import (
	"context"
	"errors"
	"os"

	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const sequenceKeyIndex = "sequence_key-index"

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func tableOrDefault(name, envKey, def string) string {
	if name != "" {
		return name
	}
	return getenvDefault(envKey, def)
}

// documentTable holds the calls shared by every document repository. Items
// are keyed by identifier and carry a numeric version.
type documentTable struct {
	ddb       DynamoDBAPI
	tableName string
}

// create writes item only if the identifier is not taken.
func (t documentTable) create(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#identifier)"),
		ExpressionAttributeNames: map[string]string{
			"#identifier": "identifier",
		},
	})
	if isConditionalFailure(err) {
		return interfaces.ErrDuplicateIdentifier
	}
	return err
}

// get loads the item into out and reports whether it exists.
func (t documentTable) get(ctx context.Context, identifier string, out any) (bool, error) {
	res, err := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key: map[string]types.AttributeValue{
			"identifier": &types.AttributeValueMemberS{Value: identifier},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// replace overwrites the stored item only while it still holds expectedVersion.
func (t documentTable) replace(ctx context.Context, item any, expectedVersion int64) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	expected, err := attributevalue.Marshal(expectedVersion)
	if err != nil {
		return err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#identifier) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#identifier": "identifier",
			"#version":    "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": expected,
		},
	})
	if isConditionalFailure(err) {
		return interfaces.ErrStaleVersion
	}
	return err
}

// maxSequence reads the highest stored sequence for key from the
// sequence_key-index (PK: sequence_key, SK: sequence).
func (t documentTable) maxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	out, err := t.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(t.tableName),
		IndexName:              aws.String(sequenceKeyIndex),
		KeyConditionExpression: aws.String("sequence_key = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: key.String()},
		},
		ProjectionExpression: aws.String("#sequence"),
		ExpressionAttributeNames: map[string]string{
			"#sequence": "sequence",
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Items) == 0 {
		return 0, nil
	}
	var row struct {
		Sequence int64 `dynamodbav:"sequence"`
	}
	if err := attributevalue.UnmarshalMap(out.Items[0], &row); err != nil {
		return 0, err
	}
	return row.Sequence, nil
}

func isConditionalFailure(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return err != nil && errors.As(err, &cfe)
}
