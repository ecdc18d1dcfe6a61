package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func feature(name, categories string, context ...PlaceReference) Feature {
	return Feature{
		Name:       name,
		Properties: FeatureProperties{Category: strPtr(categories)},
		Context:    context,
	}
}

func postcode(id, text string) PlaceReference {
	return PlaceReference{ID: "postcode." + id, Text: text}
}

func sampleFeatures() []Feature {
	return []Feature{
		feature("A", "museum", postcode("1", "AB1")),
		feature("B", "cafe", postcode("1", "AB1")),
		feature("C", "museum", postcode("2", "CD2")),
	}
}

func museumParams(limit int) GroupingParams {
	return GroupingParams{
		PlaceType: "postcode",
		Category:  "museum",
		Limit:     limit,
	}
}

func TestPlaceReference_PlaceType(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{id: "postcode.8412", expected: "postcode"},
		{id: "place.123.456", expected: "place"},
		{id: "region", expected: "region"},
		{id: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlaceReference{ID: tt.id}.PlaceType())
		})
	}
}

func TestFeature_InCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories string
		category   string
		expected   bool
	}{
		{name: "single exact match", categories: "museum", category: "museum", expected: true},
		{name: "member of list", categories: "museum, gallery", category: "museum", expected: true},
		{name: "last member of list", categories: "tourism, museum", category: "museum", expected: true},
		{name: "substring is not membership", categories: "museum cafe", category: "museum", expected: false},
		{name: "different category", categories: "cafe, coffee", category: "museum", expected: false},
		{name: "case sensitive", categories: "Museum", category: "museum", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := feature("X", tt.categories).InCategory(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}

	t.Run("missing category is malformed", func(t *testing.T) {
		_, err := Feature{Name: "X"}.InCategory("museum")
		assert.True(t, errors.Is(err, ErrMalformedFeature))
	})
}

func TestFeature_FindPlace(t *testing.T) {
	f := feature("A", "museum",
		PlaceReference{ID: "neighborhood.1", Text: "Soho"},
		postcode("2", "W1D"),
		postcode("3", "W1F"),
	)

	place, ok := f.FindPlace("postcode")
	require.True(t, ok)
	assert.Equal(t, "W1D", place.Text)

	_, ok = f.FindPlace("region")
	assert.False(t, ok)
}

func TestGroupedResult_Add(t *testing.T) {
	result := make(GroupedResult)
	result.Add("AB1", "A")
	result.Add("AB1", "B")
	result.Add("CD2", "C")

	assert.Equal(t, GroupedResult{"AB1": {"A", "B"}, "CD2": {"C"}}, result)
	assert.Equal(t, 3, result.Total())
}

func TestGroupByPlaceType(t *testing.T) {
	t.Run("filters and groups by postcode", func(t *testing.T) {
		result, err := GroupByPlaceType(sampleFeatures(), museumParams(6))
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"AB1": {"A"}, "CD2": {"C"}}, result)
	})

	t.Run("stops at limit", func(t *testing.T) {
		result, err := GroupByPlaceType(sampleFeatures(), museumParams(1))
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"AB1": {"A"}}, result)
	})

	t.Run("does not inspect features after limit", func(t *testing.T) {
		features := append(sampleFeatures(), Feature{Name: "broken"})

		result, err := GroupByPlaceType(features, museumParams(2))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total())
	})

	t.Run("empty input", func(t *testing.T) {
		result, err := GroupByPlaceType(nil, museumParams(6))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("zero limit", func(t *testing.T) {
		result, err := GroupByPlaceType(sampleFeatures(), museumParams(0))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("negative limit behaves like zero", func(t *testing.T) {
		result, err := GroupByPlaceType(sampleFeatures(), museumParams(-3))
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("keeps provider order within a group", func(t *testing.T) {
		features := []Feature{
			feature("Tate", "museum, gallery", postcode("1", "SE1")),
			feature("Other", "museum", postcode("2", "WC1")),
			feature("Design", "museum", postcode("1", "SE1")),
			feature("Fashion", "museum", postcode("1", "SE1")),
		}

		result, err := GroupByPlaceType(features, museumParams(6))
		require.NoError(t, err)
		assert.Equal(t, []string{"Tate", "Design", "Fashion"}, result["SE1"])
		assert.Equal(t, []string{"Other"}, result["WC1"])
	})

	t.Run("non matching features do not count towards limit", func(t *testing.T) {
		features := []Feature{
			feature("Cafe 1", "cafe", postcode("1", "AB1")),
			feature("Cafe 2", "cafe", postcode("1", "AB1")),
			feature("A", "museum", postcode("1", "AB1")),
			feature("C", "museum", postcode("2", "CD2")),
		}

		result, err := GroupByPlaceType(features, museumParams(2))
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"AB1": {"A"}, "CD2": {"C"}}, result)
	})

	t.Run("groups by another place type", func(t *testing.T) {
		features := []Feature{
			feature("A", "museum", postcode("1", "AB1"), PlaceReference{ID: "region.7", Text: "England"}),
			feature("C", "museum", postcode("2", "CD2"), PlaceReference{ID: "region.7", Text: "England"}),
		}
		params := museumParams(6)
		params.PlaceType = "region"

		result, err := GroupByPlaceType(features, params)
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"England": {"A", "C"}}, result)
	})

	t.Run("malformed feature fails", func(t *testing.T) {
		features := []Feature{
			feature("A", "museum", postcode("1", "AB1")),
			{Name: "no category", Context: []PlaceReference{postcode("1", "AB1")}},
		}

		result, err := GroupByPlaceType(features, museumParams(6))
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrMalformedFeature)
	})

	t.Run("missing place fails by default", func(t *testing.T) {
		features := []Feature{
			feature("A", "museum", postcode("1", "AB1")),
			feature("Island Museum", "museum", PlaceReference{ID: "place.9", Text: "Nowhere"}),
		}

		result, err := GroupByPlaceType(features, museumParams(6))
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
		assert.Contains(t, err.Error(), "Island Museum")
	})

	t.Run("missing place is ignored for non matching features", func(t *testing.T) {
		features := []Feature{
			feature("Cafe", "cafe"),
			feature("A", "museum", postcode("1", "AB1")),
		}

		result, err := GroupByPlaceType(features, museumParams(6))
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"AB1": {"A"}}, result)
	})

	t.Run("skip policy omits features without place", func(t *testing.T) {
		features := []Feature{
			feature("Island Museum", "museum"),
			feature("A", "museum", postcode("1", "AB1")),
			feature("C", "museum", postcode("2", "CD2")),
		}
		params := museumParams(2)
		params.MissingPlace = MissingPlaceSkip

		result, err := GroupByPlaceType(features, params)
		require.NoError(t, err)
		assert.Equal(t, GroupedResult{"AB1": {"A"}, "CD2": {"C"}}, result)
	})
}

func TestGroupByPlaceType_LimitProperty(t *testing.T) {
	features := make([]Feature, 0, 20)
	for i := 0; i < 20; i++ {
		category := "museum"
		if i%3 == 0 {
			category = "cafe"
		}
		features = append(features, feature("poi", category, postcode("1", string(rune('A'+i%4)))))
	}
	matching := 0
	for _, f := range features {
		if ok, _ := f.InCategory("museum"); ok {
			matching++
		}
	}

	for limit := 0; limit <= 25; limit++ {
		result, err := GroupByPlaceType(features, museumParams(limit))
		require.NoError(t, err)
		assert.Equal(t, min(limit, matching), result.Total(), "limit %d", limit)
	}
}

func TestMissingPlacePolicy_Valid(t *testing.T) {
	assert.True(t, MissingPlaceFail.Valid())
	assert.True(t, MissingPlaceSkip.Valid())
	assert.False(t, MissingPlacePolicy("ignore").Valid())
	assert.False(t, MissingPlacePolicy("").Valid())
}
