package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/nearby-poi-service/internal/config"
	"github.com/nearby-poi-service/internal/domain"
	"github.com/nearby-poi-service/internal/domain/repository"
	"github.com/nearby-poi-service/internal/infrastructure/mapbox"
	"github.com/nearby-poi-service/internal/pkg/errors"
	"github.com/nearby-poi-service/internal/pkg/metrics"
	"github.com/nearby-poi-service/internal/pkg/utils"
	"github.com/nearby-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

type NearbyUseCase struct {
	geocodingRepo repository.GeocodingRepository
	grouping      config.GroupingConfig
	logger        *zap.Logger
}

func NewNearbyUseCase(
	geocodingRepo repository.GeocodingRepository,
	grouping config.GroupingConfig,
	logger *zap.Logger,
) *NearbyUseCase {
	return &NearbyUseCase{
		geocodingRepo: geocodingRepo,
		grouping:      grouping,
		logger:        logger,
	}
}

// NormalizeCategory приводит категорию из пути к виду, в котором её отдаёт провайдер:
// "Museums" -> "museum"
func NormalizeCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return ""
	}
	return inflection.Singular(category)
}

// GroupNearby ищет POI категории рядом с точкой и группирует их по place type
func (uc *NearbyUseCase) GroupNearby(
	ctx context.Context,
	req dto.NearbyRequest,
) (*dto.NearbyResult, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	category := NormalizeCategory(req.Category)
	if category == "" {
		return nil, errors.ErrInvalidCategory
	}

	raw, err := uc.geocodingRepo.FetchPOIs(ctx, category, req.Lng, req.Lat)
	if err != nil {
		uc.logger.Error("Failed to fetch POIs from provider",
			zap.String("category", category),
			zap.Error(err))
		metrics.GroupingFailures.WithLabelValues("provider").Inc()
		return nil, providerError(err)
	}

	features, err := mapbox.DecodeFeatures(raw)
	if err != nil {
		uc.logger.Error("Failed to decode provider response",
			zap.String("category", category),
			zap.Error(err))
		metrics.GroupingFailures.WithLabelValues("decode").Inc()
		return nil, errors.ErrProviderResponse
	}

	groups, err := domain.GroupByPlaceType(features, domain.GroupingParams{
		PlaceType:    uc.grouping.PlaceType,
		Category:     category,
		Limit:        uc.grouping.Limit,
		MissingPlace: uc.grouping.MissingPlace,
	})
	if err != nil {
		uc.logger.Error("Failed to group POIs",
			zap.String("category", category),
			zap.String("place_type", uc.grouping.PlaceType),
			zap.Error(err))
		return nil, groupingError(err)
	}

	metrics.GroupedPOIs.Observe(float64(groups.Total()))

	uc.logger.Debug("POIs grouped",
		zap.String("category", category),
		zap.Int("features", len(features)),
		zap.Int("groups", len(groups)),
		zap.Int("pois", groups.Total()))

	return &dto.NearbyResult{
		Category: category,
		Groups:   groups,
	}, nil
}

func providerError(err error) error {
	var statusErr *mapbox.StatusError
	if stderrors.As(err, &statusErr) {
		return errors.ErrProviderUnavailable.WithDetails(map[string]interface{}{
			"provider_status": statusErr.StatusCode,
		})
	}
	return errors.ErrProviderUnavailable
}

func groupingError(err error) error {
	reason := "unknown"
	switch {
	case stderrors.Is(err, domain.ErrPlaceNotFound):
		reason = "place_not_found"
	case stderrors.Is(err, domain.ErrMalformedFeature):
		reason = "malformed_feature"
	}
	metrics.GroupingFailures.WithLabelValues(reason).Inc()

	return errors.ErrGroupingFailed.WithDetails(map[string]interface{}{
		"reason": reason,
		"error":  err.Error(),
	})
}
