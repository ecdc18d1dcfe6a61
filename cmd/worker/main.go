package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nearby-poi-service/internal/config"
	"github.com/nearby-poi-service/internal/infrastructure/mapbox"
	"github.com/nearby-poi-service/internal/pkg/logger"
	redisRepo "github.com/nearby-poi-service/internal/repository/redis"
	"github.com/nearby-poi-service/internal/usecase"
	"github.com/nearby-poi-service/internal/worker"
	"github.com/nearby-poi-service/internal/worker/nearby"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting POI Grouping Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_batch_size", cfg.Worker.MaxBatchSize),
		zap.String("place_type", cfg.Grouping.PlaceType),
		zap.Int("limit", cfg.Grouping.Limit))

	if err := run(cfg, log); err != nil {
		log.Error("Worker exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("Worker shutdown complete")
}

// run поднимает зависимости и воркеры и блокируется до сигнала или падения всех воркеров
func run(cfg *config.Config, log *zap.Logger) error {
	// 3. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocodingRepo := mapbox.NewMapboxClient(&cfg.Mapbox, log)

	// 5. Initialize use cases
	nearbyUC := usecase.NewNearbyUseCase(geocodingRepo, cfg.Grouping, log)

	// 6. Initialize workers
	groupingWorker := nearby.NewGroupingWorker(
		streamRepo,
		nearbyUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxBatchSize,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(groupingWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		// живых воркеров не осталось, ждать сигнала бессмысленно
		if err := workerManager.Err(); err != nil {
			return fmt.Errorf("all workers exited: %w", err)
		}
		return errors.New("all workers exited")
	}

	// Сначала Stop, чтобы текущий batch дошёл до ACK, затем отмена контекста
	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()

	return workerManager.Stop(stopCtx)
}
