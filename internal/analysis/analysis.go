// Package analysis computes descriptive aggregates over a generated dataset.
// Everything here is a read-only consumer: it never mutates records and keeps
// no state between calls.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"propscope/internal/models"
)

// ageBands partitions the 0-25 age range into inclusive integer bands so
// every record lands in exactly one.
var ageBands = []struct {
	label  string
	minAge int
	maxAge int
}{
	{"0-5 years", 0, 5},
	{"6-10 years", 6, 10},
	{"11-15 years", 11, 15},
	{"16-25 years", 16, 25},
}

// distanceBands groups listings by haversine distance from their city center.
var distanceBands = []struct {
	label string
	minKm float64
	maxKm float64
}{
	{"under 5 km", 0, 5},
	{"5-10 km", 5, 10},
	{"over 10 km", 10, math.MaxFloat64},
}

// Frame builds a dataframe from the records, with columns in the export
// order. The listing date is serialized as a plain date.
func Frame(properties []models.Property) dataframe.DataFrame {
	n := len(properties)
	cities := make([]string, n)
	propertyTypes := make([]string, n)
	areas := make([]int, n)
	prices := make([]float64, n)
	pricesPerSqft := make([]int, n)
	ages := make([]int, n)
	floors := make([]int, n)
	totalFloors := make([]int, n)
	scores := make([]int, n)
	latitudes := make([]float64, n)
	longitudes := make([]float64, n)
	listingDates := make([]string, n)
	months := make([]string, n)

	for i, p := range properties {
		cities[i] = p.City
		propertyTypes[i] = p.PropertyType
		areas[i] = p.AreaSqft
		prices[i] = p.PriceLakhs
		pricesPerSqft[i] = p.PricePerSqft
		ages[i] = p.AgeYears
		floors[i] = p.FloorNumber
		totalFloors[i] = p.TotalFloors
		scores[i] = p.LocationScore
		latitudes[i] = p.Latitude
		longitudes[i] = p.Longitude
		listingDates[i] = p.ListingDate.Format("2006-01-02")
		months[i] = p.MonthListed
	}

	return dataframe.New(
		series.New(cities, series.String, "city"),
		series.New(propertyTypes, series.String, "property_type"),
		series.New(areas, series.Int, "area_sqft"),
		series.New(prices, series.Float, "price_lakhs"),
		series.New(pricesPerSqft, series.Int, "price_per_sqft"),
		series.New(ages, series.Int, "property_age_years"),
		series.New(floors, series.Int, "floor_number"),
		series.New(totalFloors, series.Int, "total_floors"),
		series.New(scores, series.Int, "location_score"),
		series.New(latitudes, series.Float, "latitude"),
		series.New(longitudes, series.Float, "longitude"),
		series.New(listingDates, series.String, "listing_date"),
		series.New(months, series.String, "month_listed"),
	)
}

// Summarize answers the headline questions over the whole dataset.
func Summarize(properties []models.Property) (models.MarketSummary, error) {
	if len(properties) == 0 {
		return models.MarketSummary{}, fmt.Errorf("no properties to summarize")
	}

	df := Frame(properties)
	price := df.Col("price_lakhs")

	summary := models.MarketSummary{
		TotalProperties:   len(properties),
		AveragePriceLakhs: round2(price.Mean()),
		MinPriceLakhs:     price.Min(),
		MaxPriceLakhs:     price.Max(),
		AverageAreaSqft:   math.Round(df.Col("area_sqft").Mean()),
	}

	cityStats := ByCity(properties)
	if len(cityStats) > 0 {
		summary.MostExpensiveCity = cityStats[0].City
		summary.LeastExpensiveCity = cityStats[len(cityStats)-1].City
	}

	typeStats := ByType(properties)
	if len(typeStats) > 0 {
		best := typeStats[0]
		for _, ts := range typeStats[1:] {
			if ts.AvgPricePerSqft < best.AvgPricePerSqft {
				best = ts
			}
		}
		summary.BestValueType = best.PropertyType
	}

	locationStats := ByLocationScore(properties)
	var worst, top *models.LocationStats
	for i := range locationStats {
		switch locationStats[i].Score {
		case 1:
			worst = &locationStats[i]
		case 10:
			top = &locationStats[i]
		}
	}
	if worst != nil && top != nil {
		summary.LocationPremiumLakhs = round2(top.AvgPriceLakhs - worst.AvgPriceLakhs)
	}

	return summary, nil
}

// ByCity ranks cities by average price, most expensive first.
func ByCity(properties []models.Property) []models.CityStats {
	df := Frame(properties)
	stats := make([]models.CityStats, 0)

	for _, city := range uniqueValues(properties, func(p models.Property) string { return p.City }) {
		sub := df.Filter(dataframe.F{Colname: "city", Comparator: series.Eq, Comparando: city})
		if sub.Nrow() == 0 {
			continue
		}
		stats = append(stats, models.CityStats{
			City:            city,
			PropertyCount:   sub.Nrow(),
			AvgPriceLakhs:   round2(sub.Col("price_lakhs").Mean()),
			AvgPricePerSqft: math.Round(sub.Col("price_per_sqft").Mean()),
			AvgAreaSqft:     math.Round(sub.Col("area_sqft").Mean()),
			MinPriceLakhs:   sub.Col("price_lakhs").Min(),
			MaxPriceLakhs:   sub.Col("price_lakhs").Max(),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].AvgPriceLakhs > stats[j].AvgPriceLakhs })
	return stats
}

// ByType ranks property types by average price, cheapest first.
func ByType(properties []models.Property) []models.TypeStats {
	df := Frame(properties)
	stats := make([]models.TypeStats, 0)

	for _, propertyType := range uniqueValues(properties, func(p models.Property) string { return p.PropertyType }) {
		sub := df.Filter(dataframe.F{Colname: "property_type", Comparator: series.Eq, Comparando: propertyType})
		if sub.Nrow() == 0 {
			continue
		}
		stats = append(stats, models.TypeStats{
			PropertyType:    propertyType,
			PropertyCount:   sub.Nrow(),
			AvgPriceLakhs:   round2(sub.Col("price_lakhs").Mean()),
			AvgPricePerSqft: math.Round(sub.Col("price_per_sqft").Mean()),
			AvgAreaSqft:     math.Round(sub.Col("area_sqft").Mean()),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].AvgPriceLakhs < stats[j].AvgPriceLakhs })
	return stats
}

// ByAgeBand aggregates average price per age band, newest first. Bands with
// no records are omitted.
func ByAgeBand(properties []models.Property) []models.AgeBandStats {
	df := Frame(properties)
	stats := make([]models.AgeBandStats, 0, len(ageBands))

	for _, band := range ageBands {
		sub := df.
			Filter(dataframe.F{Colname: "property_age_years", Comparator: series.GreaterEq, Comparando: band.minAge}).
			Filter(dataframe.F{Colname: "property_age_years", Comparator: series.LessEq, Comparando: band.maxAge})
		if sub.Nrow() == 0 {
			continue
		}
		stats = append(stats, models.AgeBandStats{
			Band:          band.label,
			MinAge:        band.minAge,
			MaxAge:        band.maxAge,
			PropertyCount: sub.Nrow(),
			AvgPriceLakhs: round2(sub.Col("price_lakhs").Mean()),
		})
	}

	return stats
}

// ByLocationScore aggregates per location score, ascending. Scores with no
// records are omitted.
func ByLocationScore(properties []models.Property) []models.LocationStats {
	df := Frame(properties)
	stats := make([]models.LocationStats, 0, 10)

	for score := 1; score <= 10; score++ {
		sub := df.Filter(dataframe.F{Colname: "location_score", Comparator: series.Eq, Comparando: score})
		if sub.Nrow() == 0 {
			continue
		}
		stats = append(stats, models.LocationStats{
			Score:           score,
			PropertyCount:   sub.Nrow(),
			AvgPriceLakhs:   round2(sub.Col("price_lakhs").Mean()),
			AvgPricePerSqft: math.Round(sub.Col("price_per_sqft").Mean()),
		})
	}

	return stats
}

// ByMonth aggregates listing volume and average price per listing month,
// chronologically.
func ByMonth(properties []models.Property) []models.MonthStats {
	df := Frame(properties)
	months := uniqueValues(properties, func(p models.Property) string { return p.MonthListed })

	stats := make([]models.MonthStats, 0, len(months))
	for _, month := range months {
		sub := df.Filter(dataframe.F{Colname: "month_listed", Comparator: series.Eq, Comparando: month})
		if sub.Nrow() == 0 {
			continue
		}
		stats = append(stats, models.MonthStats{
			Month:         month,
			Listings:      sub.Nrow(),
			AvgPriceLakhs: round2(sub.Col("price_lakhs").Mean()),
		})
	}

	return stats
}

// ByDistanceBand groups listings by their haversine distance from the center
// of their own city. Cities missing from the profile map are skipped.
func ByDistanceBand(properties []models.Property, cities map[string]models.CityProfile) []models.DistanceBandStats {
	type accumulator struct {
		count int
		total float64
	}
	acc := make([]accumulator, len(distanceBands))

	for _, p := range properties {
		city, ok := cities[p.City]
		if !ok {
			continue
		}
		center := orb.Point{city.CenterLng, city.CenterLat}
		point := orb.Point{p.Longitude, p.Latitude}
		km := geo.Distance(center, point) / 1000

		for i, band := range distanceBands {
			if km >= band.minKm && km < band.maxKm {
				acc[i].count++
				acc[i].total += p.PriceLakhs
				break
			}
		}
	}

	stats := make([]models.DistanceBandStats, 0, len(distanceBands))
	for i, band := range distanceBands {
		if acc[i].count == 0 {
			continue
		}
		stats = append(stats, models.DistanceBandStats{
			Band:          band.label,
			PropertyCount: acc[i].count,
			AvgPriceLakhs: round2(acc[i].total / float64(acc[i].count)),
		})
	}

	return stats
}

// uniqueValues collects distinct values in sorted order.
func uniqueValues(properties []models.Property, key func(models.Property) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, p := range properties {
		if !seen[key(p)] {
			seen[key(p)] = true
			values = append(values, key(p))
		}
	}
	sort.Strings(values)
	return values
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
