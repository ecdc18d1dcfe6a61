package repository

import (
	"context"
)

// GeocodingRepository определяет методы для работы с API геокодинга
type GeocodingRepository interface {
	// FetchPOIs ищет POI категории category рядом с точкой (lng, lat)
	// и возвращает сырое тело ответа провайдера
	FetchPOIs(ctx context.Context, category string, lng, lat float64) ([]byte, error)
}
