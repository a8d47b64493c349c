package main

import (
	"context"
	"os"

	_ "repairshop/docs"
	"repairshop/internal/adapter/http/routes"
	"repairshop/internal/infrastructure/config"
	"repairshop/internal/infrastructure/logger"
	"repairshop/internal/infrastructure/telemetry"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// @title           Repair Shop API
// @version         1.0
// @description     Order and repair job lifecycle (identifiers, totals, timeline, warranty, payments).
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	entry := log.WithField("service", cfg.ServiceName)

	ctx := context.Background()
	shutdown, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		entry.WithError(err).Fatal("failed to initialize tracer")
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			entry.WithError(err).Warn("error shutting down tracer")
		}
	}()

	if err := routes.Run(ctx, cfg, entry); err != nil {
		entry.WithError(err).Error("failed to startup the application")
	}
}
