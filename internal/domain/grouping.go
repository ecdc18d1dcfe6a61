package domain

import "fmt"

// MissingPlacePolicy определяет поведение, когда у подходящей POI нет нужного place type
type MissingPlacePolicy string

const (
	// MissingPlaceFail - прервать группировку с ошибкой ErrPlaceNotFound
	MissingPlaceFail MissingPlacePolicy = "fail"
	// MissingPlaceSkip - пропустить POI, не засчитывая её в лимит
	MissingPlaceSkip MissingPlacePolicy = "skip"
)

// Valid проверяет, что политика известна
func (p MissingPlacePolicy) Valid() bool {
	return p == MissingPlaceFail || p == MissingPlaceSkip
}

// GroupingParams - параметры группировки POI
type GroupingParams struct {
	PlaceType    string
	Category     string
	Limit        int
	MissingPlace MissingPlacePolicy
}

// GroupedResult - значение place type (например, почтовый индекс) -> имена POI в порядке ответа провайдера
type GroupedResult map[string][]string

// Add добавляет имя POI в группу, создавая её при необходимости
func (r GroupedResult) Add(key, name string) {
	r[key] = append(r[key], name)
}

// Total возвращает общее количество POI во всех группах
func (r GroupedResult) Total() int {
	total := 0
	for _, names := range r {
		total += len(names)
	}
	return total
}

// GroupByPlaceType фильтрует фичи по категории и группирует их по значению place type.
// В результат попадает не более params.Limit POI; обход останавливается сразу по достижении лимита.
func GroupByPlaceType(features []Feature, params GroupingParams) (GroupedResult, error) {
	result := make(GroupedResult)
	n := 0

	for i, feature := range features {
		if n >= params.Limit {
			return result, nil
		}

		ok, err := feature.InCategory(params.Category)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if !ok {
			continue
		}

		place, found := feature.FindPlace(params.PlaceType)
		if !found {
			if params.MissingPlace == MissingPlaceSkip {
				continue
			}
			return nil, fmt.Errorf("feature %d (%q): %w: %s", i, feature.Name, ErrPlaceNotFound, params.PlaceType)
		}

		result.Add(place.Text, feature.Name)
		n++
	}

	return result, nil
}
