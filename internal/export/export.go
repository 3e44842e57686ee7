// Package export serializes generated datasets to flat files for consumption
// by later, independent runs.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"propscope/internal/analysis"
	"propscope/internal/models"
)

type Exporter struct {
	logger *logrus.Logger
}

func NewExporter(logger *logrus.Logger) *Exporter {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Exporter{logger: logger}
}

// WriteCSV writes one row per record with a header row, columns in the
// dataset attribute order.
func (e *Exporter) WriteCSV(properties []models.Property, path string) error {
	return e.write(properties, path, "csv")
}

// WriteJSON writes the dataset as a JSON array of records.
func (e *Exporter) WriteJSON(properties []models.Property, path string) error {
	return e.write(properties, path, "json")
}

func (e *Exporter) write(properties []models.Property, path string, format string) error {
	if len(properties) == 0 {
		return fmt.Errorf("no properties to export")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	df := analysis.Frame(properties)
	switch format {
	case "csv":
		err = df.WriteCSV(file)
	case "json":
		err = df.WriteJSON(file)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %v", format, err)
	}

	e.logger.WithFields(logrus.Fields{
		"path": path,
		"rows": len(properties),
	}).Info("Wrote dataset export")

	return nil
}
