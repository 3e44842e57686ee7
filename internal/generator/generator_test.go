package generator

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propscope/internal/models"
)

var testCities = map[string]models.CityProfile{
	"Mumbai": {
		BasePricePerSqft: 15000,
		PriceVariation:   0.4,
		AreaMultiplier:   0.8,
		CenterLat:        19.0760,
		CenterLng:        72.8777,
	},
	"Pune": {
		BasePricePerSqft: 7500,
		PriceVariation:   0.4,
		AreaMultiplier:   1.1,
		CenterLat:        18.5204,
		CenterLng:        73.8567,
	},
}

var testTypes = map[string]models.PropertyTypeProfile{
	"1BHK": {MinArea: 400, MaxArea: 600},
	"2BHK": {MinArea: 600, MaxArea: 900},
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	gen, err := New(testCities, testTypes, logger)
	require.NoError(t, err)
	return gen
}

func TestNew_EmptyProfiles(t *testing.T) {
	logger := logrus.New()

	_, err := New(nil, testTypes, logger)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(map[string]models.CityProfile{}, testTypes, logger)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(testCities, map[string]models.PropertyTypeProfile{}, logger)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_InvalidProfileValues(t *testing.T) {
	logger := logrus.New()

	tests := []struct {
		name   string
		cities map[string]models.CityProfile
		types  map[string]models.PropertyTypeProfile
	}{
		{
			name:   "min area above max area",
			cities: testCities,
			types: map[string]models.PropertyTypeProfile{
				"2BHK": {MinArea: 900, MaxArea: 600},
			},
		},
		{
			name: "non-positive base price",
			cities: map[string]models.CityProfile{
				"Mumbai": {BasePricePerSqft: 0, PriceVariation: 0.4, AreaMultiplier: 0.8},
			},
			types: testTypes,
		},
		{
			name: "variation above one",
			cities: map[string]models.CityProfile{
				"Mumbai": {BasePricePerSqft: 15000, PriceVariation: 1.2, AreaMultiplier: 0.8},
			},
			types: testTypes,
		},
		{
			name: "non-positive area multiplier",
			cities: map[string]models.CityProfile{
				"Mumbai": {BasePricePerSqft: 15000, PriceVariation: 0.4, AreaMultiplier: 0},
			},
			types: testTypes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cities, tt.types, logger)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	gen := newTestGenerator(t)
	now := time.Now()

	for _, count := range []int{0, -5} {
		_, err := gen.Generate(count, NewStreams(42), now)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestGenerate_NilStreams(t *testing.T) {
	gen := newTestGenerator(t)

	_, err := gen.Generate(10, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerate_Cardinality(t *testing.T) {
	gen := newTestGenerator(t)
	now := time.Now()

	for _, count := range []int{1, 10, 500} {
		properties, err := gen.Generate(count, NewStreams(42), now)
		require.NoError(t, err)
		assert.Len(t, properties, count)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := newTestGenerator(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := gen.Generate(200, NewStreams(42), now)
	require.NoError(t, err)
	second, err := gen.Generate(200, NewStreams(42), now)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed and inputs must reproduce the dataset field-for-field")

	different, err := gen.Generate(200, NewStreams(43), now)
	require.NoError(t, err)
	assert.NotEqual(t, first, different, "a different seed should change the dataset")
}

func TestGenerate_Invariants(t *testing.T) {
	gen := newTestGenerator(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	properties, err := gen.Generate(500, NewStreams(7), now)
	require.NoError(t, err)

	for _, p := range properties {
		assert.Contains(t, testCities, p.City)
		assert.Contains(t, testTypes, p.PropertyType)
		assert.GreaterOrEqual(t, p.AgeYears, 0)
		assert.LessOrEqual(t, p.AgeYears, 25)
		assert.GreaterOrEqual(t, p.FloorNumber, 1)
		assert.LessOrEqual(t, p.FloorNumber, 20)
		assert.GreaterOrEqual(t, p.TotalFloors, p.FloorNumber)
		assert.LessOrEqual(t, p.TotalFloors, 25)
		assert.GreaterOrEqual(t, p.LocationScore, 1)
		assert.LessOrEqual(t, p.LocationScore, 10)
		assert.True(t, p.ListingDate.Before(now))
		assert.False(t, p.ListingDate.Before(now.AddDate(0, 0, -730)))
		assert.Equal(t, p.ListingDate.Format("2006-01"), p.MonthListed)
	}
}

func TestGenerate_DerivedPriceConsistency(t *testing.T) {
	gen := newTestGenerator(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	properties, err := gen.Generate(500, NewStreams(99), now)
	require.NoError(t, err)

	for _, p := range properties {
		raw := float64(p.PricePerSqft*p.AreaSqft) / priceScaleDivisor
		bonus := 1 + float64(p.LocationScore-5)*0.02
		penalty := 1 - float64(p.AgeYears)*0.01
		expected := raw * bonus * penalty
		assert.InDelta(t, expected, p.PriceLakhs, 0.005,
			"stored price must be the derived price rounded to two decimals")
	}
}

func TestGenerate_CoordinatesNearCityCenter(t *testing.T) {
	gen := newTestGenerator(t)

	properties, err := gen.Generate(100, NewStreams(3), time.Now())
	require.NoError(t, err)

	for _, p := range properties {
		city := testCities[p.City]
		assert.InDelta(t, city.CenterLat, p.Latitude, coordJitterDegrees)
		assert.InDelta(t, city.CenterLng, p.Longitude, coordJitterDegrees)
	}
}

func TestGenerate_SingleProfileScenario(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cities := map[string]models.CityProfile{
		"Mumbai": {BasePricePerSqft: 15000, PriceVariation: 0.4, AreaMultiplier: 0.8},
	}
	types := map[string]models.PropertyTypeProfile{
		"2BHK": {MinArea: 600, MaxArea: 900},
	}

	gen, err := New(cities, types, logger)
	require.NoError(t, err)

	properties, err := gen.Generate(1, NewStreams(42), time.Now())
	require.NoError(t, err)
	require.Len(t, properties, 1)

	p := properties[0]
	assert.Equal(t, "Mumbai", p.City)
	assert.Equal(t, "2BHK", p.PropertyType)
	assert.GreaterOrEqual(t, p.AreaSqft, 480)
	assert.LessOrEqual(t, p.AreaSqft, 720)
	assert.GreaterOrEqual(t, p.PricePerSqft, 9000)
	assert.LessOrEqual(t, p.PricePerSqft, 21000)
}
