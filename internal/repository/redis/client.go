package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/nearby-poi-service/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	connectTimeout = 5 * time.Second
	healthTimeout  = 2 * time.Second
)

// Redis - подключение к Redis, используемое только для стримов воркера
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis - создание подключения к Redis с проверкой доступности
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	addr := cfg.Addr()

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
		// XREADGROUP без BLOCK, поэтому длинный ReadTimeout не нужен
		ReadTimeout: 3 * time.Second,
	})

	r := &Redis{
		client: client,
		addr:   addr,
		logger: logger.With(zap.String("redis_addr", addr)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := r.Health(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	r.logger.Info("Redis connected", zap.Int("db", cfg.DB))
	return r, nil
}

// Health пингует Redis. Если у ctx нет дедлайна, ограничивает ожидание healthTimeout
func (r *Redis) Health(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, healthTimeout)
		defer cancel()
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}
