package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/qwertymuzaffar/retail-backoffice/api/routes"
	customersvc "github.com/qwertymuzaffar/retail-backoffice/internal/customers"
	inventorysvc "github.com/qwertymuzaffar/retail-backoffice/internal/inventory"
	ordersvc "github.com/qwertymuzaffar/retail-backoffice/internal/orders"
	productsvc "github.com/qwertymuzaffar/retail-backoffice/internal/products"
	storesvc "github.com/qwertymuzaffar/retail-backoffice/internal/stores"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/config"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/metrics"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/migrate"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	productRepo := productsvc.NewRepository(dbClient.DB())
	inventoryRepo := inventorysvc.NewRepository(dbClient.DB())
	storeRepo := storesvc.NewRepository(dbClient.DB())
	customerRepo := customersvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())

	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	inventoryService, err := inventorysvc.NewService(inventoryRepo, productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	storeService, err := storesvc.NewService(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	customerService, err := customersvc.NewService(customerRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo, customerRepo, storeRepo, productRepo, inventoryRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Registry:    registry,
			HTTPMetrics: httpMetrics,
			Inventory:   inventoryService,
			Stores:      storeService,
			Products:    productService,
			Customers:   customerService,
			Orders:      orderService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
