package config

import (
	"sort"

	"propscope/internal/models"
)

// DefaultCityProfiles covers the six metros the synthesizer models out of the
// box. Base prices are rupees per square foot; centers are the city cores the
// listing coordinates scatter around.
var DefaultCityProfiles = map[string]models.CityProfile{
	"Mumbai": {
		BasePricePerSqft: 15000,
		PriceVariation:   0.4,
		AreaMultiplier:   0.8, // smaller units
		CenterLat:        19.0760,
		CenterLng:        72.8777,
	},
	"Delhi": {
		BasePricePerSqft: 12000,
		PriceVariation:   0.3,
		AreaMultiplier:   1.0,
		CenterLat:        28.7041,
		CenterLng:        77.1025,
	},
	"Bangalore": {
		BasePricePerSqft: 8000,
		PriceVariation:   0.5,
		AreaMultiplier:   1.2,
		CenterLat:        12.9716,
		CenterLng:        77.5946,
	},
	"Chennai": {
		BasePricePerSqft: 7000,
		PriceVariation:   0.3,
		AreaMultiplier:   1.1,
		CenterLat:        13.0827,
		CenterLng:        80.2707,
	},
	"Pune": {
		BasePricePerSqft: 7500,
		PriceVariation:   0.4,
		AreaMultiplier:   1.1,
		CenterLat:        18.5204,
		CenterLng:        73.8567,
	},
	"Hyderabad": {
		BasePricePerSqft: 6500,
		PriceVariation:   0.5,
		AreaMultiplier:   1.3,
		CenterLat:        17.3850,
		CenterLng:        78.4867,
	},
}

// DefaultTypeProfiles holds the typical carpet-area ranges per unit type.
var DefaultTypeProfiles = map[string]models.PropertyTypeProfile{
	"1BHK": {MinArea: 400, MaxArea: 600},
	"2BHK": {MinArea: 600, MaxArea: 900},
	"3BHK": {MinArea: 900, MaxArea: 1400},
	"4BHK": {MinArea: 1400, MaxArea: 2000},
}

// DefaultProfiles returns a fresh copy of the built-in profile set so callers
// can modify it without touching the package defaults.
func DefaultProfiles() models.ProfileSet {
	cities := make(map[string]models.CityProfile, len(DefaultCityProfiles))
	for name, profile := range DefaultCityProfiles {
		cities[name] = profile
	}
	types := make(map[string]models.PropertyTypeProfile, len(DefaultTypeProfiles))
	for name, profile := range DefaultTypeProfiles {
		types[name] = profile
	}
	return models.ProfileSet{Cities: cities, PropertyTypes: types}
}

// CityNames returns the built-in city names in sorted order.
func CityNames() []string {
	names := make([]string, 0, len(DefaultCityProfiles))
	for name := range DefaultCityProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
