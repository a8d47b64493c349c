package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDynamo records the last input of each call and replies with whatever
// the test configured.
type stubDynamo struct {
	putIn    *dynamodb.PutItemInput
	putErr   error
	getIn    *dynamodb.GetItemInput
	getOut   *dynamodb.GetItemOutput
	updateIn *dynamodb.UpdateItemInput
	update   *dynamodb.UpdateItemOutput
	queryIn  *dynamodb.QueryInput
	queryOut *dynamodb.QueryOutput
	err      error
}

func (s *stubDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.putIn = in
	if s.putErr != nil {
		return nil, s.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (s *stubDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	s.getIn = in
	if s.err != nil {
		return nil, s.err
	}
	if s.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return s.getOut, nil
}

func (s *stubDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	s.updateIn = in
	if s.err != nil {
		return nil, s.err
	}
	return s.update, nil
}

func (s *stubDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	s.queryIn = in
	if s.err != nil {
		return nil, s.err
	}
	if s.queryOut == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return s.queryOut, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleOrder() entities.Order {
	created := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	start := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC)
	return entities.Order{
		Document: entities.Document{
			ID:         "0b7c7f0e-1111-4d7a-9c55-7f1d2b8b9a01",
			Identifier: "ORD24010007",
			Kind:       entities.EntityKindOrder,
			Status:     entities.OrderStatusDelivered,
			Timeline: []entities.TimelineEntry{
				{Status: entities.OrderStatusPending, Description: "Order created", Timestamp: created, ActorID: "desk-1"},
				{Status: entities.OrderStatusDelivered, Description: "handed over", Timestamp: start},
			},
			Warranty: &entities.Warranty{Duration: 6, Unit: entities.DurationUnitMonths, StartDate: &start, EndDate: &end},
			Payment: entities.Payment{
				PaidAmount:       dec("100.00"),
				RemainingBalance: dec("45.00"),
				Status:           entities.PaymentStatusPartial,
				Transactions: []entities.PaymentTransaction{
					{ID: "tx-1", Amount: dec("100.00"), Method: "cash", RecordedAt: created, RecordedBy: "desk-1"},
				},
			},
			Version:   3,
			CreatedAt: created,
			UpdatedAt: start,
		},
		CustomerID: "cust-1",
		Items: []entities.LineItem{
			{ProductID: "p-1", Name: "Screen", Quantity: 2, UnitPrice: dec("50.00"), Total: dec("100.00")},
			{ProductID: "p-2", Name: "Case", Quantity: 1, UnitPrice: dec("30.00"), Total: dec("30.00")},
		},
		Adjustments: entities.OrderAdjustments{Shipping: dec("10"), Tax: dec("5"), Discount: decimal.Zero},
		Totals:      entities.Totals{Subtotal: dec("130"), Shipping: dec("10"), Tax: dec("5"), Discount: decimal.Zero, Total: dec("145")},
		Notes:       "fragile",
	}
}

func TestOrderDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := &stubDynamo{}
	repo := NewOrderDynamoRepository(ddb, "orders-test")
	o := sampleOrder()

	_, err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	require.NotNil(t, ddb.putIn)
	assert.Equal(t, "orders-test", *ddb.putIn.TableName)
	assert.Equal(t, "attribute_not_exists(#identifier)", *ddb.putIn.ConditionExpression)

	sk, ok := ddb.putIn.Item["sequence_key"].(*types.AttributeValueMemberS)
	require.True(t, ok, "sequence_key must be a string attribute")
	assert.Equal(t, "order#2401", sk.Value)
	seq, ok := ddb.putIn.Item["sequence"].(*types.AttributeValueMemberN)
	require.True(t, ok, "sequence must be a number attribute")
	assert.Equal(t, "7", seq.Value)
	total, ok := ddb.putIn.Item["totals"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "145"}, total.Value["total"])

	ddb.getOut = &dynamodb.GetItemOutput{Item: ddb.putIn.Item}
	got, err := repo.GetByIdentifier(context.Background(), "ORD24010007")
	require.NoError(t, err)
	key := ddb.getIn.Key["identifier"].(*types.AttributeValueMemberS)
	assert.Equal(t, "ORD24010007", key.Value)

	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.Status, got.Status)
	assert.Equal(t, o.Version, got.Version)
	assert.True(t, o.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Timeline, 2)
	assert.Equal(t, "desk-1", got.Timeline[0].ActorID)
	assert.True(t, got.Timeline[1].Timestamp.Equal(o.Timeline[1].Timestamp))
	require.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].UnitPrice.Equal(dec("50")))
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.True(t, got.Totals.Total.Equal(dec("145")))
	assert.True(t, got.Adjustments.Shipping.Equal(dec("10")))
	require.NotNil(t, got.Warranty)
	assert.True(t, got.Warranty.EndDate.Equal(*o.Warranty.EndDate))
	assert.Equal(t, entities.PaymentStatusPartial, got.Payment.Status)
	require.Len(t, got.Payment.Transactions, 1)
	assert.True(t, got.Payment.Transactions[0].Amount.Equal(dec("100")))
	assert.Equal(t, "fragile", got.Notes)
}

func TestOrderDynamoRepository_GetMissing(t *testing.T) {
	repo := NewOrderDynamoRepository(&stubDynamo{}, "")
	got, err := repo.GetByIdentifier(context.Background(), "ORD24010001")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestOrderDynamoRepository_DefaultTableFromEnv(t *testing.T) {
	t.Setenv("ORDERS_TABLE", "orders-env")
	ddb := &stubDynamo{}
	repo := NewOrderDynamoRepository(ddb, "")
	_, err := repo.GetByIdentifier(context.Background(), "ORD24010001")
	require.NoError(t, err)
	assert.Equal(t, "orders-env", *ddb.getIn.TableName)
}

func TestOrderDynamoRepository_ConditionalFailures(t *testing.T) {
	cfe := &types.ConditionalCheckFailedException{Message: ptr("conditional request failed")}

	t.Run("duplicate identifier on create", func(t *testing.T) {
		repo := NewOrderDynamoRepository(&stubDynamo{putErr: cfe}, "orders")
		_, err := repo.Create(context.Background(), sampleOrder())
		assert.ErrorIs(t, err, interfaces.ErrDuplicateIdentifier)
	})

	t.Run("stale version on update", func(t *testing.T) {
		ddb := &stubDynamo{putErr: cfe}
		repo := NewOrderDynamoRepository(ddb, "orders")
		_, err := repo.Update(context.Background(), sampleOrder(), 2)
		assert.ErrorIs(t, err, interfaces.ErrStaleVersion)
		assert.Equal(t, "attribute_exists(#identifier) AND #version = :expected", *ddb.putIn.ConditionExpression)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "2"}, ddb.putIn.ExpressionAttributeValues[":expected"])
		assert.Equal(t, "version", ddb.putIn.ExpressionAttributeNames["#version"])
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("throttled")
		repo := NewOrderDynamoRepository(&stubDynamo{putErr: boom}, "orders")
		_, err := repo.Update(context.Background(), sampleOrder(), 2)
		assert.ErrorIs(t, err, boom)
	})
}

func TestOrderDynamoRepository_MaxSequence(t *testing.T) {
	key := lifecycle.SequenceKey{Kind: entities.EntityKindOrder, Year2: 24, Month2: 1}

	t.Run("highest stored", func(t *testing.T) {
		ddb := &stubDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			{"sequence": &types.AttributeValueMemberN{Value: "42"}},
		}}}
		repo := NewOrderDynamoRepository(ddb, "orders")
		got, err := repo.MaxSequence(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)
		assert.Equal(t, sequenceKeyIndex, *ddb.queryIn.IndexName)
		assert.False(t, *ddb.queryIn.ScanIndexForward)
		assert.Equal(t, int32(1), *ddb.queryIn.Limit)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "order#2401"}, ddb.queryIn.ExpressionAttributeValues[":sk"])
	})

	t.Run("empty month", func(t *testing.T) {
		repo := NewOrderDynamoRepository(&stubDynamo{}, "orders")
		got, err := repo.MaxSequence(context.Background(), key)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestRepairJobDynamoRepository_RoundTrip(t *testing.T) {
	completed := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	job := entities.RepairJob{
		Document: entities.Document{
			ID:         "job-1",
			Identifier: "TH24010003",
			Kind:       entities.EntityKindRepairJob,
			Status:     entities.RepairStatusCompleted,
			Warranty:   &entities.Warranty{Duration: 90, Unit: entities.DurationUnitDays, StartDate: &completed, EndDate: &end},
			Payment:    entities.Payment{PaidAmount: decimal.Zero, RemainingBalance: dec("105"), Status: entities.PaymentStatusUnpaid},
			Version:    6,
			CreatedAt:  completed,
			UpdatedAt:  completed,
		},
		CustomerID:   "cust-9",
		Device:       entities.Device{Type: "phone", Brand: "Acme", Model: "X1", SerialNumber: "SN-1", ReportedIssue: "cracked screen"},
		TechnicianID: "tech-1",
		Costs:        entities.CostComponents{Labor: dec("40"), Parts: dec("60"), Tax: dec("8"), Discount: dec("3")},
		Totals:       entities.Totals{Subtotal: dec("100"), Tax: dec("8"), Discount: dec("3"), Total: dec("105")},
		Diagnosis:    "replace panel",
	}

	ddb := &stubDynamo{}
	repo := NewRepairJobDynamoRepository(ddb, "jobs")
	_, err := repo.Update(context.Background(), job, 5)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "repair_job#2401"}, ddb.putIn.Item["sequence_key"])

	ddb.getOut = &dynamodb.GetItemOutput{Item: ddb.putIn.Item}
	got, err := repo.GetByIdentifier(context.Background(), job.Identifier)
	require.NoError(t, err)
	assert.Equal(t, job.Device, got.Device)
	assert.Equal(t, "tech-1", got.TechnicianID)
	assert.True(t, got.Costs.Discount.Equal(dec("3")))
	assert.True(t, got.Totals.Total.Equal(dec("105")))
	assert.True(t, got.Warranty.StartDate.Equal(completed))
	assert.Equal(t, entities.RepairStatusCompleted, got.Status)
	assert.Empty(t, got.Timeline)
}

func TestSequenceDynamoAllocator_Next(t *testing.T) {
	key := lifecycle.SequenceKey{Kind: entities.EntityKindRepairJob, Year2: 24, Month2: 2}

	t.Run("returns updated value", func(t *testing.T) {
		ddb := &stubDynamo{update: &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
			"value": &types.AttributeValueMemberN{Value: "12"},
		}}}
		a := NewSequenceDynamoAllocator(ddb, "seq")
		got, err := a.Next(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got)
		assert.Equal(t, "ADD #value :one SET #updated_at = :now", *ddb.updateIn.UpdateExpression)
		assert.Equal(t, types.ReturnValueUpdatedNew, ddb.updateIn.ReturnValues)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "repair_job#2402"}, ddb.updateIn.Key["sequence_key"])
	})

	t.Run("store error", func(t *testing.T) {
		a := NewSequenceDynamoAllocator(&stubDynamo{err: errors.New("down")}, "seq")
		_, err := a.Next(context.Background(), key)
		assert.EqualError(t, err, "down")
	})

	t.Run("missing value", func(t *testing.T) {
		a := NewSequenceDynamoAllocator(&stubDynamo{update: &dynamodb.UpdateItemOutput{}}, "seq")
		_, err := a.Next(context.Background(), key)
		assert.Error(t, err)
	})
}

func ptr(s string) *string { return &s }
