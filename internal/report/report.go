// Package report renders a markdown market report from precomputed
// aggregates. It reads the aggregate tables only and never touches the raw
// records.
package report

import (
	"fmt"
	"io"
	"strings"

	"propscope/internal/models"
)

// Write renders the full report to w.
func Write(w io.Writer,
	summary models.MarketSummary,
	cities []models.CityStats,
	types []models.TypeStats,
	ages []models.AgeBandStats,
	locations []models.LocationStats,
) error {
	var b strings.Builder

	b.WriteString("# Property Market Report\n\n")

	b.WriteString("## Market snapshot\n\n")
	fmt.Fprintf(&b, "- Properties analyzed: %d\n", summary.TotalProperties)
	fmt.Fprintf(&b, "- Average price: Rs %.2f lakhs\n", summary.AveragePriceLakhs)
	fmt.Fprintf(&b, "- Price range: Rs %.2f - Rs %.2f lakhs\n", summary.MinPriceLakhs, summary.MaxPriceLakhs)
	fmt.Fprintf(&b, "- Average area: %.0f sq ft\n\n", summary.AverageAreaSqft)

	b.WriteString("## Which city is most expensive?\n\n")
	fmt.Fprintf(&b, "**%s** leads the market.\n\n", summary.MostExpensiveCity)
	for i, city := range cities {
		fmt.Fprintf(&b, "%d. %s: Rs %.2f lakhs average (Rs %.0f/sq ft, %d listings)\n",
			i+1, city.City, city.AvgPriceLakhs, city.AvgPricePerSqft, city.PropertyCount)
	}
	b.WriteString("\n")

	b.WriteString("## Which property type gives the best value?\n\n")
	fmt.Fprintf(&b, "**%s** has the lowest price per square foot.\n\n", summary.BestValueType)
	for _, pt := range types {
		fmt.Fprintf(&b, "- %s: Rs %.0f/sq ft, average area %.0f sq ft, average price Rs %.2f lakhs\n",
			pt.PropertyType, pt.AvgPricePerSqft, pt.AvgAreaSqft, pt.AvgPriceLakhs)
	}
	b.WriteString("\n")

	b.WriteString("## Do older properties cost less?\n\n")
	for _, band := range ages {
		fmt.Fprintf(&b, "- %s: Rs %.2f lakhs average (%d listings)\n",
			band.Band, band.AvgPriceLakhs, band.PropertyCount)
	}
	if len(ages) >= 2 {
		newest := ages[0]
		oldest := ages[len(ages)-1]
		difference := newest.AvgPriceLakhs - oldest.AvgPriceLakhs
		fmt.Fprintf(&b, "\nNewer properties average Rs %.2f lakhs more than the oldest band.\n", difference)
	}
	b.WriteString("\n")

	b.WriteString("## How much does location matter?\n\n")
	for _, loc := range locations {
		fmt.Fprintf(&b, "- Score %d: Rs %.2f lakhs average (Rs %.0f/sq ft)\n",
			loc.Score, loc.AvgPriceLakhs, loc.AvgPricePerSqft)
	}
	if summary.LocationPremiumLakhs != 0 {
		fmt.Fprintf(&b, "\nLocation premium: Rs %.2f lakhs between the best and worst locations.\n",
			summary.LocationPremiumLakhs)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
