package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propscope/internal/models"
)

func sampleProperties() []models.Property {
	listed := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return []models.Property{
		{
			City: "Mumbai", PropertyType: "2BHK", AreaSqft: 600, PriceLakhs: 95.5,
			PricePerSqft: 14000, AgeYears: 4, FloorNumber: 3, TotalFloors: 12,
			LocationScore: 7, Latitude: 19.08, Longitude: 72.88,
			ListingDate: listed, MonthListed: "2024-03",
		},
		{
			City: "Pune", PropertyType: "1BHK", AreaSqft: 450, PriceLakhs: 35.25,
			PricePerSqft: 7800, AgeYears: 10, FloorNumber: 1, TotalFloors: 5,
			LocationScore: 4, Latitude: 18.52, Longitude: 73.86,
			ListingDate: listed, MonthListed: "2024-03",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	exporter := NewExporter(logger)

	path := filepath.Join(t.TempDir(), "data", "properties.csv")
	err := exporter.WriteCSV(sampleProperties(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus one line per record")
	assert.Contains(t, lines[0], "city")
	assert.Contains(t, lines[0], "price_lakhs")
	assert.Contains(t, lines[1], "Mumbai")
	assert.Contains(t, lines[2], "Pune")
}

func TestWriteJSON(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	exporter := NewExporter(logger)

	path := filepath.Join(t.TempDir(), "properties.json")
	err := exporter.WriteJSON(sampleProperties(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Mumbai", rows[0]["city"])
}

func TestWrite_Empty(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	exporter := NewExporter(logger)

	err := exporter.WriteCSV(nil, filepath.Join(t.TempDir(), "empty.csv"))
	assert.Error(t, err)
}
