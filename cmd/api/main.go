package main

// @title Nearby POI Service API
// @version 1.0.0
// @description Поиск точек интереса (POI) заданной категории рядом с точкой с группировкой по почтовому индексу.
// @description Данные берутся из Mapbox Geocoding API.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nearby-poi-service/docs"
	"github.com/nearby-poi-service/internal/config"
	httpDelivery "github.com/nearby-poi-service/internal/delivery/http"
	"github.com/nearby-poi-service/internal/delivery/http/handler"
	"github.com/nearby-poi-service/internal/infrastructure/mapbox"
	"github.com/nearby-poi-service/internal/pkg/logger"
	"github.com/nearby-poi-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Nearby POI Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("place_type", cfg.Grouping.PlaceType),
		zap.Int("limit", cfg.Grouping.Limit),
		zap.String("missing_place", string(cfg.Grouping.MissingPlace)),
	)

	// 3. Provider client
	geocodingRepo := mapbox.NewMapboxClient(&cfg.Mapbox, log)

	// 4. Use cases
	nearbyUC := usecase.NewNearbyUseCase(geocodingRepo, cfg.Grouping, log)

	// 5. HTTP handlers and server
	nearbyHandler := handler.NewNearbyHandler(nearbyUC, log)
	server := httpDelivery.NewServer(cfg, log, nearbyHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
