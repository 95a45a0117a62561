package main

import (
	"context"

	"github.com/banking/transaction-service/internal/app"
	"github.com/banking/transaction-service/internal/config"
	"github.com/banking/transaction-service/internal/di"
	"github.com/banking/transaction-service/internal/infrastructure/api/routers"
	"github.com/banking/transaction-service/pkg/log"
)

const (
	appName = "transaction-service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log.Init(appName, log.WithConsoleLogger())

	container := di.NewContainer(cfg)
	container.ResponseCache.Start()
	defer container.ResponseCache.Stop()

	statsReporter := app.NewCacheStatsReporter(container.ResponseCache, cfg.Process)
	go statsReporter.Run(ctx)

	router := routers.NewRouter(container)
	service := app.NewService(cfg)
	service.Run(ctx, router)
}
