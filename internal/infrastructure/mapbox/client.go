package mapbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nearby-poi-service/internal/config"
	"github.com/nearby-poi-service/internal/domain/repository"
	"github.com/nearby-poi-service/internal/pkg/metrics"
	"github.com/nearby-poi-service/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	geocodingPath = "/geocoding/v5/mapbox.places/"
	poiType       = "poi"
	// maxErrorBody - сколько байт тела ошибки попадает в лог и сообщение
	maxErrorBody = 1024
)

type client struct {
	httpClient    *http.Client
	baseURL       string
	accessToken   string
	upstreamLimit int
	logger        *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox Geocoding API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:       cfg.BaseURL,
		accessToken:   cfg.AccessToken,
		upstreamLimit: cfg.UpstreamLimit,
		logger:        logger,
	}
}

// FetchPOIs запрашивает POI категории рядом с точкой. Провайдер ранжирует
// результаты по близости к proximity; фильтрация и лимит применяются позже.
func (c *client) FetchPOIs(ctx context.Context, category string, lng, lat float64) ([]byte, error) {
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}

	requestURL := c.buildURL(category, lng, lat)

	c.logger.Debug("Calling Mapbox Geocoding API",
		zap.String("category", category),
		zap.Float64("lng", lng),
		zap.Float64("lat", lat),
		zap.Int("limit", c.upstreamLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(metrics.OutcomeError).Observe(time.Since(start).Seconds())
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestDuration.WithLabelValues(metrics.OutcomeError).Observe(time.Since(start).Seconds())
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(metrics.OutcomeError).Observe(time.Since(start).Seconds())
		c.logger.Error("Failed to read response", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	metrics.ProviderRequestDuration.WithLabelValues(metrics.OutcomeSuccess).Observe(time.Since(start).Seconds())

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.Int("body_bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}

// buildURL собирает URL запроса; токен не логируется
func (c *client) buildURL(category string, lng, lat float64) string {
	query := url.Values{}
	query.Set("types", poiType)
	query.Set("limit", strconv.Itoa(c.upstreamLimit))
	query.Set("proximity", utils.FormatProximity(lng, lat))
	query.Set("access_token", c.accessToken)

	return c.baseURL + geocodingPath + url.PathEscape(category) + ".json?" + query.Encode()
}

// StatusError - ответ провайдера с кодом, отличным от 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mapbox API error: status %d, body: %s", e.StatusCode, e.Body)
}
