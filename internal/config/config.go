package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/nearby-poi-service/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Mapbox   MapboxConfig
	Grouping GroupingConfig
	Redis    RedisConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout int // seconds
	UpstreamLimit  int
}

// GroupingConfig - параметры группировки POI по территориям
type GroupingConfig struct {
	PlaceType    string
	Limit        int
	MissingPlace domain.MissingPlacePolicy
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxBatchSize  int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
			UpstreamLimit:  viper.GetInt("MAPBOX_UPSTREAM_LIMIT"),
		},
		Grouping: GroupingConfig{
			PlaceType:    viper.GetString("GROUPING_PLACE_TYPE"),
			Limit:        viper.GetInt("GROUPING_LIMIT"),
			MissingPlace: domain.MissingPlacePolicy(viper.GetString("GROUPING_MISSING_PLACE")),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxBatchSize:  viper.GetInt("WORKER_MAX_BATCH_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults - значения по умолчанию для незаданных параметров
func setDefaults() {
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	viper.SetDefault("MAPBOX_REQUEST_TIMEOUT", 10)
	viper.SetDefault("MAPBOX_UPSTREAM_LIMIT", 10)

	viper.SetDefault("GROUPING_PLACE_TYPE", "postcode")
	viper.SetDefault("GROUPING_LIMIT", 6)
	viper.SetDefault("GROUPING_MISSING_PLACE", string(domain.MissingPlaceFail))

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("WORKER_CONSUMER_GROUP", "poi-grouping-workers")
	viper.SetDefault("WORKER_MAX_BATCH_SIZE", 20)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Grouping.Limit < 0 {
		return fmt.Errorf("GROUPING_LIMIT must not be negative, got %d", c.Grouping.Limit)
	}
	// Mapbox geocoding отдаёт не больше 10 фич на запрос
	if c.Mapbox.UpstreamLimit < 1 || c.Mapbox.UpstreamLimit > 10 {
		return fmt.Errorf("MAPBOX_UPSTREAM_LIMIT must be between 1 and 10, got %d", c.Mapbox.UpstreamLimit)
	}
	if c.Mapbox.UpstreamLimit < c.Grouping.Limit {
		return fmt.Errorf("MAPBOX_UPSTREAM_LIMIT (%d) must not be less than GROUPING_LIMIT (%d)",
			c.Mapbox.UpstreamLimit, c.Grouping.Limit)
	}
	if !c.Grouping.MissingPlace.Valid() {
		return fmt.Errorf("GROUPING_MISSING_PLACE must be %q or %q, got %q",
			domain.MissingPlaceFail, domain.MissingPlaceSkip, c.Grouping.MissingPlace)
	}
	if c.Mapbox.AccessToken == "" {
		return fmt.Errorf("MAPBOX_TOKEN is required")
	}
	if c.Mapbox.RequestTimeout < 0 {
		return fmt.Errorf("MAPBOX_REQUEST_TIMEOUT must not be negative, got %d", c.Mapbox.RequestTimeout)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// Addr возвращает адрес Redis в виде host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
