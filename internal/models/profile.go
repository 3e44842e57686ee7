package models

// CityProfile holds the sampling parameters for one city. BasePricePerSqft is
// rupees per square foot before variation, PriceVariation the symmetric
// multiplicative spread (0-1), AreaMultiplier scales typical unit sizes.
type CityProfile struct {
	BasePricePerSqft int     `json:"base_price_per_sqft"`
	PriceVariation   float64 `json:"price_variation"`
	AreaMultiplier   float64 `json:"area_multiplier"`
	CenterLat        float64 `json:"center_lat"`
	CenterLng        float64 `json:"center_lng"`
}

// PropertyTypeProfile bounds the uniform area draw for one unit type.
// MinArea must not exceed MaxArea.
type PropertyTypeProfile struct {
	MinArea int `json:"min_area"`
	MaxArea int `json:"max_area"`
}

// ProfileSet is the full generator configuration: one profile per city and
// one per property type.
type ProfileSet struct {
	Cities        map[string]CityProfile         `json:"cities"`
	PropertyTypes map[string]PropertyTypeProfile `json:"property_types"`
}
