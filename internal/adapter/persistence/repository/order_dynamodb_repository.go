package repository

import (
	"context"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"
)

const defaultOrdersTableName = "orders"

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: identifier (string)
//   - GSI: sequence_key-index (PK: sequence_key string, SK: sequence number)

type OrderDynamoRepository struct {
	table documentTable
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

// NewOrderDynamoRepository uses tableName, falling back to ORDERS_TABLE and
// then "orders" when it is empty.
func NewOrderDynamoRepository(ddb DynamoDBAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		table: documentTable{ddb: ddb, tableName: tableOrDefault(tableName, "ORDERS_TABLE", defaultOrdersTableName)},
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	if err := r.table.create(ctx, toOrderItem(o)); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByIdentifier(ctx context.Context, identifier string) (entities.Order, error) {
	var it orderItem
	found, err := r.table.get(ctx, identifier, &it)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error) {
	if err := r.table.replace(ctx, toOrderItem(o), expectedVersion); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	return r.table.maxSequence(ctx, key)
}
