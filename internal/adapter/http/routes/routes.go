package routes

import (
	"context"
	"net/http"

	_ "repairshop/docs" // swag generated
	"repairshop/internal/adapter/http/handlers"
	"repairshop/internal/infrastructure/config"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Dependencies are the use cases served by the router.
type Dependencies struct {
	Orders     usecase.IOrderUseCase
	RepairJobs usecase.IRepairJobUseCase
	Payments   usecase.IPaymentUseCase
}

// Run wires the configured stores and starts the server.
func Run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	deps, cleanup, err := Wire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	router := NewRouter(cfg, deps, log)
	log.WithField("port", cfg.Port).Info("starting http server")
	return router.Run(":" + cfg.Port)
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(cfg *config.Config, deps Dependencies, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg.ServiceName, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	orderHandler := handlers.NewOrderHandler(deps.Orders, log)
	repairJobHandler := handlers.NewRepairJobHandler(deps.RepairJobs, log)
	chargeHandler := handlers.NewChargeHandler(deps.Payments, cfg.PaymentGatewayMock, log)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, orderHandler, chargeHandler)
	addRepairJobRoutes(v1, repairJobHandler, chargeHandler)
	return router
}

func setMiddlewares(router *gin.Engine, serviceName string, log logrus.FieldLogger) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	log = log.WithFields(logrus.Fields{"module": "http", "layer": "router"})
	return func(c *gin.Context) {
		c.Next()
		entry := log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Debug("request served")
	}
}
