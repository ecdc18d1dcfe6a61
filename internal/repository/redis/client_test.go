package redis_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-poi-service/internal/config"
	redisRepo "github.com/nearby-poi-service/internal/repository/redis"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	r, err := redisRepo.NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, r.Health(context.Background()))
	assert.NotNil(t, r.Client())

	require.NoError(t, r.Close())
	assert.Error(t, r.Health(context.Background()))
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host := mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	// адрес берём до Close: после остановки miniredis не знает своего listener
	mr.Close()

	r, err := redisRepo.NewRedis(&config.RedisConfig{Host: host, Port: port}, zap.NewNop())
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
