package models

// MarketSummary covers the whole dataset.
type MarketSummary struct {
	TotalProperties      int     `json:"total_properties"`
	AveragePriceLakhs    float64 `json:"average_price_lakhs"`
	MinPriceLakhs        float64 `json:"min_price_lakhs"`
	MaxPriceLakhs        float64 `json:"max_price_lakhs"`
	AverageAreaSqft      float64 `json:"average_area_sqft"`
	MostExpensiveCity    string  `json:"most_expensive_city"`
	LeastExpensiveCity   string  `json:"least_expensive_city"`
	BestValueType        string  `json:"best_value_type"`
	LocationPremiumLakhs float64 `json:"location_premium_lakhs"`
}

type CityStats struct {
	City            string  `json:"city"`
	PropertyCount   int     `json:"property_count"`
	AvgPriceLakhs   float64 `json:"avg_price_lakhs"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft"`
	AvgAreaSqft     float64 `json:"avg_area_sqft"`
	MinPriceLakhs   float64 `json:"min_price_lakhs"`
	MaxPriceLakhs   float64 `json:"max_price_lakhs"`
}

type TypeStats struct {
	PropertyType    string  `json:"property_type"`
	PropertyCount   int     `json:"property_count"`
	AvgPriceLakhs   float64 `json:"avg_price_lakhs"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft"`
	AvgAreaSqft     float64 `json:"avg_area_sqft"`
}

// AgeBandStats aggregates an inclusive age range.
type AgeBandStats struct {
	Band          string  `json:"band"`
	MinAge        int     `json:"min_age"`
	MaxAge        int     `json:"max_age"`
	PropertyCount int     `json:"property_count"`
	AvgPriceLakhs float64 `json:"avg_price_lakhs"`
}

type LocationStats struct {
	Score           int     `json:"score"`
	PropertyCount   int     `json:"property_count"`
	AvgPriceLakhs   float64 `json:"avg_price_lakhs"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft"`
}

type MonthStats struct {
	Month         string  `json:"month"`
	Listings      int     `json:"listings"`
	AvgPriceLakhs float64 `json:"avg_price_lakhs"`
}

// DistanceBandStats aggregates listings by distance from their city center.
type DistanceBandStats struct {
	Band          string  `json:"band"`
	PropertyCount int     `json:"property_count"`
	AvgPriceLakhs float64 `json:"avg_price_lakhs"`
}
