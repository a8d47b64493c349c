package repository

import (
	"context"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase/interfaces"
)

const defaultRepairJobsTableName = "repair_jobs"

// RepairJobDynamoRepository persists RepairJob entities in DynamoDB.
//
// Table requirements:
//   - PK: identifier (string)
//   - GSI: sequence_key-index (PK: sequence_key string, SK: sequence number)

type RepairJobDynamoRepository struct {
	table documentTable
}

var _ interfaces.IRepairJobRepository = (*RepairJobDynamoRepository)(nil)

// NewRepairJobDynamoRepository uses tableName, falling back to
// REPAIR_JOBS_TABLE and then "repair_jobs" when it is empty.
func NewRepairJobDynamoRepository(ddb DynamoDBAPI, tableName string) *RepairJobDynamoRepository {
	return &RepairJobDynamoRepository{
		table: documentTable{ddb: ddb, tableName: tableOrDefault(tableName, "REPAIR_JOBS_TABLE", defaultRepairJobsTableName)},
	}
}

func (r *RepairJobDynamoRepository) Create(ctx context.Context, j entities.RepairJob) (entities.RepairJob, error) {
	if err := r.table.create(ctx, toRepairJobItem(j)); err != nil {
		return entities.RepairJob{}, err
	}
	return j, nil
}

func (r *RepairJobDynamoRepository) GetByIdentifier(ctx context.Context, identifier string) (entities.RepairJob, error) {
	var it repairJobItem
	found, err := r.table.get(ctx, identifier, &it)
	if err != nil || !found {
		return entities.RepairJob{}, err
	}
	return fromRepairJobItem(it), nil
}

func (r *RepairJobDynamoRepository) Update(ctx context.Context, j entities.RepairJob, expectedVersion int64) (entities.RepairJob, error) {
	if err := r.table.replace(ctx, toRepairJobItem(j), expectedVersion); err != nil {
		return entities.RepairJob{}, err
	}
	return j, nil
}

func (r *RepairJobDynamoRepository) MaxSequence(ctx context.Context, key lifecycle.SequenceKey) (int64, error) {
	return r.table.maxSequence(ctx, key)
}
