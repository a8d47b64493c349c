package routes

import (
	"context"
	"fmt"
	"time"

	"repairshop/internal/adapter/persistence/memory"
	"repairshop/internal/adapter/persistence/postgres"
	"repairshop/internal/adapter/persistence/redisstore"
	"repairshop/internal/adapter/persistence/repository"
	"repairshop/internal/domain/entities"
	"repairshop/internal/infrastructure/config"
	"repairshop/internal/infrastructure/database"
	"repairshop/internal/infrastructure/logger"
	"repairshop/internal/infrastructure/payments"
	"repairshop/internal/usecase"
	"repairshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

// chargeLockTTL bounds how long a crashed charge can block its record.
const chargeLockTTL = 30 * time.Second

// Wire connects the configured backends and builds the use cases. The
// returned cleanup closes every connection that was opened.
func Wire(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (Dependencies, func(), error) {
		logger.LogError(log, "wiring", "wire", "backend setup failed", map[string]string{
			"store_driver":    cfg.StoreDriver,
			"sequence_driver": cfg.SequenceDriver,
		}, err)
		cleanup()
		return Dependencies{}, func() {}, err
	}

	var (
		ddb        *dynamodb.Client
		orderRepo  interfaces.IOrderRepository
		repairRepo interfaces.IRepairJobRepository
	)
	if cfg.StoreDriver == config.StoreDriverDynamoDB || cfg.SequenceDriver == config.SequenceDriverDynamoDB {
		client, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return fail(fmt.Errorf("connect dynamodb: %w", err))
		}
		ddb = client
	}

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		orderRepo = memory.NewOrderStore()
		repairRepo = memory.NewRepairJobStore()
	default:
		orderRepo = repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)
		repairRepo = repository.NewRepairJobDynamoRepository(ddb, cfg.RepairJobsTable)
	}
	log.WithField("store_driver", cfg.StoreDriver).Info("document store ready")

	floors := map[entities.EntityKind]interfaces.ISequenceFloor{
		entities.EntityKindOrder:     orderRepo,
		entities.EntityKindRepairJob: repairRepo,
	}
	var (
		allocator interfaces.ISequenceAllocator
		locker    interfaces.IRecordLocker = memory.NewRecordLocker()
	)
	switch cfg.SequenceDriver {
	case config.SequenceDriverRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.RedisAddress)
		if err != nil {
			return fail(fmt.Errorf("connect redis: %w", err))
		}
		closers = append(closers, func() { _ = rdb.Close() })
		allocator = redisstore.NewSequenceAllocator(rdb, floors, log)
		locker = redisstore.NewRecordLocker(rdb, chargeLockTTL, log)
	case config.SequenceDriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		closers = append(closers, pool.Close)
		pg := postgres.NewSequenceAllocator(pool, floors)
		if err := pg.EnsureSchema(ctx); err != nil {
			return fail(fmt.Errorf("ensure sequence schema: %w", err))
		}
		allocator = pg
	case config.SequenceDriverMemory:
		allocator = memory.NewSequenceAllocator()
	default:
		allocator = repository.NewSequenceDynamoAllocator(ddb, cfg.SequencesTable)
	}
	log.WithField("sequence_driver", cfg.SequenceDriver).Info("sequence allocator ready")

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.WithError(err).Warn("Mercado Pago gateway not configured")
	} else {
		gateway = mpGateway
	}

	orders := usecase.NewOrderUseCase(orderRepo, allocator, usecase.WithLogger(log))
	repairJobs := usecase.NewRepairJobUseCase(repairRepo, allocator, usecase.WithLogger(log))
	paymentsUC := usecase.NewPaymentUseCase(orders, repairJobs, gateway, usecase.PaymentSettings{
		MockMode:          cfg.PaymentGatewayMock,
		SandboxPayerEmail: cfg.SandboxPayerEmail,
		Locker:            locker,
		Logger:            log,
	})

	return Dependencies{Orders: orders, RepairJobs: repairJobs, Payments: paymentsUC}, cleanup, nil
}
