package dto

import "github.com/nearby-poi-service/internal/domain"

// NearbyRequest - запрос на поиск POI категории рядом с точкой
type NearbyRequest struct {
	Category string  `json:"category" query:"-" validate:"required,max=64"`
	Lng      float64 `json:"lng" query:"lng" validate:"min=-180,max=180"`
	Lat      float64 `json:"lat" query:"lat" validate:"min=-90,max=90"`
}

// NearbyResult - сгруппированные POI и категория, по которой шёл поиск
type NearbyResult struct {
	Category string
	Groups   domain.GroupedResult
}
