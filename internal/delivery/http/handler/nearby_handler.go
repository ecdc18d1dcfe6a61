package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/nearby-poi-service/internal/pkg/errors"
	"github.com/nearby-poi-service/internal/pkg/utils"
	"github.com/nearby-poi-service/internal/pkg/validator"
	"github.com/nearby-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// NearbyGrouper - use case группировки POI рядом с точкой
type NearbyGrouper interface {
	GroupNearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResult, error)
}

// NearbyHandler - обработчик запросов поиска POI рядом с точкой
type NearbyHandler struct {
	nearbyUC NearbyGrouper
	logger   *zap.Logger
}

// NewNearbyHandler - создание нового NearbyHandler
func NewNearbyHandler(nearbyUC NearbyGrouper, logger *zap.Logger) *NearbyHandler {
	return &NearbyHandler{
		nearbyUC: nearbyUC,
		logger:   logger,
	}
}

// GetNearby godoc
// @Summary POI категории рядом с точкой, сгруппированные по почтовому индексу
// @Description Запрашивает POI у Mapbox с приоритетом близости к точке, оставляет только POI запрошенной категории и группирует их по почтовому индексу. Категория в пути приводится к единственному числу (museums -> museum).
// @Tags POI
// @Produce json
// @Param category path string true "Категория POI (например, museums)"
// @Param lng query number true "Долгота"
// @Param lat query number true "Широта"
// @Success 200 {object} map[string][]string
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/nearby/{category} [get]
func (h *NearbyHandler) GetNearby(c *fiber.Ctx) error {
	if c.Query("lng") == "" || c.Query("lat") == "" {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		h.logger.Debug("Failed to parse query", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	req.Category = c.Params("category")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearbyUC.GroupNearby(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, result.Groups)
}
