package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"propscope/internal/models"
)

var (
	// ErrConfiguration covers empty or missing profile maps.
	ErrConfiguration = errors.New("invalid generator configuration")

	// ErrInvalidArgument covers bad counts and out-of-range profile values.
	ErrInvalidArgument = errors.New("invalid generator argument")
)

const (
	// priceScaleDivisor converts rupees to lakhs (1 lakh = 100,000).
	priceScaleDivisor = 100000.0

	maxPropertyAge   = 25
	maxFloorNumber   = 20
	maxTotalFloors   = 25
	maxLocationScore = 10

	// listingWindowDays is how far back a listing date can fall.
	listingWindowDays = 730

	// coordJitterDegrees bounds the sampled offset of a listing from its
	// city center, roughly 15 km at these latitudes.
	coordJitterDegrees = 0.15
)

// Streams bundles the two independent random sources the generator consumes:
// one for general integer sampling, one for the price variation draw. Both
// are derived from the same seed and must be fixed together; two runs with
// the same seed, count, profiles and reference time produce identical output.
type Streams struct {
	general   *rand.Rand
	variation *rand.Rand
}

// NewStreams returns deterministic random streams for the given seed.
func NewStreams(seed int64) *Streams {
	return &Streams{
		general:   rand.New(rand.NewSource(seed)),
		variation: rand.New(rand.NewSource(seed)),
	}
}

// Generator synthesizes property records from per-city and per-type sampling
// profiles. The profiles are validated once at construction and never
// mutated afterwards.
type Generator struct {
	cities    map[string]models.CityProfile
	types     map[string]models.PropertyTypeProfile
	cityNames []string
	typeNames []string
	logger    *logrus.Logger
}

// New validates the profile maps and returns a ready generator.
func New(cities map[string]models.CityProfile, types map[string]models.PropertyTypeProfile, logger *logrus.Logger) (*Generator, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	if len(cities) == 0 {
		return nil, fmt.Errorf("%w: no city profiles", ErrConfiguration)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no property type profiles", ErrConfiguration)
	}

	for name, profile := range cities {
		if profile.BasePricePerSqft <= 0 {
			return nil, fmt.Errorf("%w: city %s has non-positive base price", ErrInvalidArgument, name)
		}
		if profile.PriceVariation < 0 || profile.PriceVariation > 1 {
			return nil, fmt.Errorf("%w: city %s has price variation outside [0,1]", ErrInvalidArgument, name)
		}
		if profile.AreaMultiplier <= 0 {
			return nil, fmt.Errorf("%w: city %s has non-positive area multiplier", ErrInvalidArgument, name)
		}
	}
	for name, profile := range types {
		if profile.MinArea <= 0 {
			return nil, fmt.Errorf("%w: type %s has non-positive minimum area", ErrInvalidArgument, name)
		}
		if profile.MinArea > profile.MaxArea {
			return nil, fmt.Errorf("%w: type %s has min area above max area", ErrInvalidArgument, name)
		}
	}

	// Map iteration order is randomized; the draw sequence must index into
	// stable, sorted name slices to stay reproducible.
	cityNames := make([]string, 0, len(cities))
	for name := range cities {
		cityNames = append(cityNames, name)
	}
	sort.Strings(cityNames)

	typeNames := make([]string, 0, len(types))
	for name := range types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	return &Generator{
		cities:    cities,
		types:     types,
		cityNames: cityNames,
		typeNames: typeNames,
		logger:    logger,
	}, nil
}

// Generate produces count records in one batch. now anchors the listing
// dates; streams supplies all randomness, so the caller controls
// reproducibility. The function performs no I/O and either returns a
// complete, valid sequence or an error with no partial output.
func (g *Generator) Generate(count int, streams *Streams, now time.Time) ([]models.Property, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}
	if streams == nil {
		return nil, fmt.Errorf("%w: nil random streams", ErrInvalidArgument)
	}

	properties := make([]models.Property, 0, count)
	for i := 0; i < count; i++ {
		properties = append(properties, g.sample(streams, now))
	}

	g.logger.WithFields(logrus.Fields{
		"count":  count,
		"cities": len(g.cityNames),
		"types":  len(g.typeNames),
	}).Debug("Generated property dataset")

	return properties, nil
}

// sample draws one record. The draw order is fixed: city, type, base area,
// price variation, age, floor, total floors, location score, days ago, then
// the coordinate jitter. Reordering any of these breaks reproducibility.
//
// Rounding is pinned per step: area and price per sqft truncate toward zero,
// the final price rounds half-away-from-zero to two decimals.
func (g *Generator) sample(s *Streams, now time.Time) models.Property {
	cityName := g.cityNames[s.general.Intn(len(g.cityNames))]
	typeName := g.typeNames[s.general.Intn(len(g.typeNames))]
	city := g.cities[cityName]
	propertyType := g.types[typeName]

	baseArea := intBetween(s.general, propertyType.MinArea, propertyType.MaxArea)
	area := int(float64(baseArea) * city.AreaMultiplier)

	variation := 1 - city.PriceVariation + s.variation.Float64()*(2*city.PriceVariation)
	pricePerSqft := int(float64(city.BasePricePerSqft) * variation)

	rawPriceLakhs := float64(pricePerSqft*area) / priceScaleDivisor

	age := intBetween(s.general, 0, maxPropertyAge)
	floor := intBetween(s.general, 1, maxFloorNumber)
	totalFloors := intBetween(s.general, floor, maxTotalFloors)
	score := intBetween(s.general, 1, maxLocationScore)

	// +-10% across the score range, -1% per year of age
	locationBonus := 1 + float64(score-5)*0.02
	agePenalty := 1 - float64(age)*0.01
	priceLakhs := math.Round(rawPriceLakhs*locationBonus*agePenalty*100) / 100

	daysAgo := intBetween(s.general, 1, listingWindowDays)
	listingDate := now.AddDate(0, 0, -daysAgo)

	latitude := city.CenterLat + (s.general.Float64()*2-1)*coordJitterDegrees
	longitude := city.CenterLng + (s.general.Float64()*2-1)*coordJitterDegrees

	return models.Property{
		City:          cityName,
		PropertyType:  typeName,
		AreaSqft:      area,
		PriceLakhs:    priceLakhs,
		PricePerSqft:  pricePerSqft,
		AgeYears:      age,
		FloorNumber:   floor,
		TotalFloors:   totalFloors,
		LocationScore: score,
		Latitude:      latitude,
		Longitude:     longitude,
		ListingDate:   listingDate,
		MonthListed:   listingDate.Format("2006-01"),
	}
}

// intBetween draws a uniform integer from [lo, hi] inclusive.
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}
