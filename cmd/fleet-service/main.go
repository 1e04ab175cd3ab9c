package main

import (
	"context"
	"fmt"
	"os"

	"fleet-service/internal/auth"
	"fleet-service/internal/cache"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	var vehicleCache, driverCache cache.Cache
	if cfg.Cache.Enabled {
		vehicleCache = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		driverCache = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	} else {
		vehicleCache = cache.Noop{}
		driverCache = cache.Noop{}
	}

	txManager := repository.NewTxManager(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	driverRepo := repository.NewDriverRepository(database)
	logRepo := repository.NewAssignmentLogRepository(database)

	vehicleService := service.NewVehicleService(txManager, vehicleRepo, driverRepo, logRepo, vehicleCache, driverCache, log)
	driverService := service.NewDriverService(txManager, driverRepo, vehicleRepo, logRepo, driverCache, vehicleCache, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(vehicleService, driverService, log)
	router := httphandler.NewRouter(
		handler,
		middleware.Auth(tokenParser),
		middleware.RequireWriter(),
		func(ctx context.Context) error { return db.HealthCheck(ctx, database) },
		cfg.Environment,
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
