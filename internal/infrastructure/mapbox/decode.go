package mapbox

import (
	"encoding/json"
	"fmt"

	"github.com/nearby-poi-service/internal/domain"
)

// featureCollection - ответ Mapbox Geocoding API
type featureCollection struct {
	Type     string           `json:"type"`
	Query    []interface{}    `json:"query"`
	Features []domain.Feature `json:"features"`
}

// DecodeFeatures разбирает тело ответа провайдера и возвращает фичи в исходном порядке
func DecodeFeatures(raw []byte) ([]domain.Feature, error) {
	var collection featureCollection
	if err := json.Unmarshal(raw, &collection); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if collection.Features == nil {
		return nil, fmt.Errorf("failed to decode response: missing features")
	}
	return collection.Features, nil
}
