package repository

import (
	"context"
	"fmt"
	"time"

	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSequencesTableName = "sequence_counters"

// SequenceDynamoAllocator keeps one atomic counter item per sequence key.
//
// Table requirements:
//   - PK: sequence_key (string), e.g. "order#2401"
//   - value (number) is created by the first ADD

type SequenceDynamoAllocator struct {
	ddb       DynamoDBAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ISequenceAllocator = (*SequenceDynamoAllocator)(nil)

func NewSequenceDynamoAllocator(ddb DynamoDBAPI, tableName string) *SequenceDynamoAllocator {
	return &SequenceDynamoAllocator{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, "SEQUENCES_TABLE", defaultSequencesTableName),
		now:       time.Now,
	}
}

func (a *SequenceDynamoAllocator) Next(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	out, err := a.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(a.tableName),
		Key: map[string]types.AttributeValue{
			"sequence_key": &types.AttributeValueMemberS{Value: key.String()},
		},
		UpdateExpression: aws.String("ADD #value :one SET #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#value":      "value",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: a.now().UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	var row struct {
		Value int64 `dynamodbav:"value"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return 0, err
	}
	if row.Value < 1 {
		return 0, fmt.Errorf("sequence counter %s returned %d", key, row.Value)
	}
	return row.Value, nil
}
