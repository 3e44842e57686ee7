// Package charts renders the dashboard artifacts: static PNG charts for the
// headline aggregates and interactive HTML charts for exploration.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"

	"propscope/internal/models"
)

const (
	CityPriceChartFile    = "city_price_comparison.png"
	TypePriceChartFile    = "property_type_analysis.png"
	AgeTrendChartFile     = "price_vs_age.png"
	PriceAreaChartFile    = "interactive_price_area_chart.html"
	MonthlyTrendChartFile = "interactive_monthly_trend.html"
)

type Renderer struct {
	outputDir string
	logger    *logrus.Logger
}

func NewRenderer(outputDir string, logger *logrus.Logger) *Renderer {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Renderer{outputDir: outputDir, logger: logger}
}

// RenderAll writes every chart into the output directory.
func (r *Renderer) RenderAll(
	properties []models.Property,
	cities []models.CityStats,
	types []models.TypeStats,
	ages []models.AgeBandStats,
	months []models.MonthStats,
) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create dashboard directory: %v", err)
	}

	if err := r.CityPriceBar(cities); err != nil {
		return err
	}
	if err := r.TypePriceBar(types); err != nil {
		return err
	}
	if err := r.AgeTrendLine(ages); err != nil {
		return err
	}
	if err := r.PriceAreaScatter(properties); err != nil {
		return err
	}
	if err := r.MonthlyTrendLine(months); err != nil {
		return err
	}

	r.logger.WithField("dir", r.outputDir).Info("Rendered dashboard charts")
	return nil
}

// CityPriceBar renders the average price per city as a PNG bar chart.
func (r *Renderer) CityPriceBar(cities []models.CityStats) error {
	if len(cities) == 0 {
		return fmt.Errorf("no city stats to chart")
	}

	bars := make([]chart.Value, 0, len(cities))
	for _, city := range cities {
		bars = append(bars, chart.Value{Label: city.City, Value: city.AvgPriceLakhs})
	}

	graph := chart.BarChart{
		Title:      "Average Property Prices by City (lakhs)",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		Bars:       bars,
	}

	return r.renderPNG(&graph, CityPriceChartFile)
}

// TypePriceBar renders the average price per property type as a PNG bar
// chart, cheapest type first.
func (r *Renderer) TypePriceBar(types []models.TypeStats) error {
	if len(types) == 0 {
		return fmt.Errorf("no type stats to chart")
	}

	bars := make([]chart.Value, 0, len(types))
	for _, pt := range types {
		bars = append(bars, chart.Value{Label: pt.PropertyType, Value: pt.AvgPriceLakhs})
	}

	graph := chart.BarChart{
		Title:      "Average Prices by Property Type (lakhs)",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   80,
		Bars:       bars,
	}

	return r.renderPNG(&graph, TypePriceChartFile)
}

// AgeTrendLine renders average price per age band as a PNG line chart.
func (r *Renderer) AgeTrendLine(ages []models.AgeBandStats) error {
	if len(ages) == 0 {
		return fmt.Errorf("no age stats to chart")
	}

	xs := make([]float64, 0, len(ages))
	ys := make([]float64, 0, len(ages))
	for _, band := range ages {
		xs = append(xs, float64(band.MinAge))
		ys = append(ys, band.AvgPriceLakhs)
	}

	graph := chart.Chart{
		Title:  "Property Price vs Age",
		Width:  1024,
		Height: 512,
		XAxis:  chart.XAxis{Name: "Property age (years)"},
		YAxis:  chart.YAxis{Name: "Average price (lakhs)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Average price",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	file, err := os.Create(filepath.Join(r.outputDir, AgeTrendChartFile))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %v", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render age trend chart: %v", err)
	}
	return nil
}

// PriceAreaScatter renders an interactive price-vs-area scatter, one series
// per city.
func (r *Renderer) PriceAreaScatter(properties []models.Property) error {
	if len(properties) == 0 {
		return fmt.Errorf("no properties to chart")
	}

	byCity := make(map[string][]opts.ScatterData)
	for _, p := range properties {
		byCity[p.City] = append(byCity[p.City], opts.ScatterData{
			Value:      []interface{}{p.AreaSqft, p.PriceLakhs},
			SymbolSize: 8,
		})
	}

	cityNames := make([]string, 0, len(byCity))
	for city := range byCity {
		cityNames = append(cityNames, city)
	}
	sort.Strings(cityNames)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Property Price vs Area by City"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Area (sq ft)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price (lakhs)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	for _, city := range cityNames {
		scatter.AddSeries(city, byCity[city])
	}

	return r.renderHTML(scatter, PriceAreaChartFile)
}

// MonthlyTrendLine renders listing volume per month as an interactive line
// chart.
func (r *Renderer) MonthlyTrendLine(months []models.MonthStats) error {
	if len(months) == 0 {
		return fmt.Errorf("no month stats to chart")
	}

	labels := make([]string, 0, len(months))
	listings := make([]opts.LineData, 0, len(months))
	for _, month := range months {
		labels = append(labels, month.Month)
		listings = append(listings, opts.LineData{Value: month.Listings})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Listing Volume"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Listings"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).AddSeries("Listings", listings)

	return r.renderHTML(line, MonthlyTrendChartFile)
}

type htmlRenderer interface {
	Render(w io.Writer) error
}

func (r *Renderer) renderPNG(graph *chart.BarChart, name string) error {
	file, err := os.Create(filepath.Join(r.outputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %v", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render %s: %v", name, err)
	}
	return nil
}

func (r *Renderer) renderHTML(graph htmlRenderer, name string) error {
	file, err := os.Create(filepath.Join(r.outputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %v", err)
	}
	defer file.Close()

	if err := graph.Render(file); err != nil {
		return fmt.Errorf("failed to render %s: %v", name, err)
	}
	return nil
}
