package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// categorySeparator - разделитель категорий в properties.category у Mapbox
	categorySeparator = ", "
	// placeIDSeparator - разделитель в id контекста вида "postcode.8412"
	placeIDSeparator = "."
)

var (
	// ErrMalformedFeature - у фичи нет строки категорий
	ErrMalformedFeature = errors.New("malformed feature")
	// ErrPlaceNotFound - в контексте фичи нет записи нужного place type
	ErrPlaceNotFound = errors.New("place not found in feature context")
)

// Feature - POI из ответа провайдера геокодинга
type Feature struct {
	ID         string            `json:"id"`
	Name       string            `json:"text"`
	PlaceName  string            `json:"place_name,omitempty"`
	Center     []float64         `json:"center,omitempty"`
	Properties FeatureProperties `json:"properties"`
	Context    []PlaceReference  `json:"context"`
}

// FeatureProperties - свойства POI. Category == nil означает, что провайдер не прислал поле.
type FeatureProperties struct {
	Category *string `json:"category"`
	Address  string  `json:"address,omitempty"`
	Maki     string  `json:"maki,omitempty"`
}

// PlaceReference - запись контекста, описывающая объемлющую территорию
type PlaceReference struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlaceType возвращает тип территории: часть id до первой точки
func (p PlaceReference) PlaceType() string {
	placeType, _, _ := strings.Cut(p.ID, placeIDSeparator)
	return placeType
}

// Categories возвращает список категорий фичи
func (f Feature) Categories() ([]string, error) {
	if f.Properties.Category == nil {
		return nil, fmt.Errorf("%w: %q has no category", ErrMalformedFeature, f.Name)
	}
	return strings.Split(*f.Properties.Category, categorySeparator), nil
}

// InCategory проверяет, что категория входит в список категорий фичи.
// Сравнение точное: "The Museum Café" с категорией "cafe" не попадёт в "museum".
func (f Feature) InCategory(category string) (bool, error) {
	categories, err := f.Categories()
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c == category {
			return true, nil
		}
	}
	return false, nil
}

// FindPlace ищет первую запись контекста заданного типа
func (f Feature) FindPlace(placeType string) (PlaceReference, bool) {
	for _, place := range f.Context {
		if place.PlaceType() == placeType {
			return place, true
		}
	}
	return PlaceReference{}, false
}
