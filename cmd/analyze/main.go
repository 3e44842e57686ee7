// Command analyze runs the full pipeline in one shot: synthesize a dataset,
// export it to flat files, persist it to sqlite, and write the market report
// and dashboard charts.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"propscope/config"
	"propscope/internal/analysis"
	"propscope/internal/charts"
	"propscope/internal/database"
	"propscope/internal/export"
	"propscope/internal/generator"
	"propscope/internal/models"
	"propscope/internal/report"
)

var (
	countFlag    = flag.Int("count", 0, "Number of properties to generate (default from config)")
	seedFlag     = flag.Int64("seed", 0, "Random seed (default from config)")
	outDirFlag   = flag.String("out-dir", "", "Data output directory (default from config)")
	dashDirFlag  = flag.String("dashboards", "", "Chart output directory (default from config)")
	dbPathFlag   = flag.String("db", "", "SQLite output path (default <out-dir>/properties.db)")
	profilesFlag = flag.String("profiles", "", "Optional JSON profile override file")
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	_ = godotenv.Load()
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	count := cfg.Generator.DefaultCount
	if *countFlag > 0 {
		count = *countFlag
	}
	seed := cfg.Generator.DefaultSeed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	outDir := cfg.Output.DataDir
	if *outDirFlag != "" {
		outDir = *outDirFlag
	}
	dashDir := cfg.Output.DashboardDir
	if *dashDirFlag != "" {
		dashDir = *dashDirFlag
	}
	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = filepath.Join(outDir, "properties.db")
	}
	profilePath := cfg.Generator.ProfilePath
	if *profilesFlag != "" {
		profilePath = *profilesFlag
	}

	profiles := config.DefaultProfiles()
	if profilePath != "" {
		profiles, err = config.LoadProfiles(profilePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load profile overrides")
		}
	}

	gen, err := generator.New(profiles.Cities, profiles.PropertyTypes, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize generator")
	}

	now := time.Now()
	properties, err := gen.Generate(count, generator.NewStreams(seed), now)
	if err != nil {
		logger.WithError(err).Fatal("Failed to generate dataset")
	}
	logger.WithFields(logrus.Fields{"count": count, "seed": seed}).Info("Generated dataset")

	// Flat-file exports
	exporter := export.NewExporter(logger)
	if err := exporter.WriteCSV(properties, filepath.Join(outDir, "properties.csv")); err != nil {
		logger.WithError(err).Fatal("Failed to write CSV export")
	}
	if err := exporter.WriteJSON(properties, filepath.Join(outDir, "properties.json")); err != nil {
		logger.WithError(err).Fatal("Failed to write JSON export")
	}

	// Durable sqlite copy
	db, err := database.NewDatabase(dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	dataset, err := db.CreateDataset(seed, count, now)
	if err != nil {
		logger.WithError(err).Fatal("Failed to register dataset")
	}

	batch := make([]*models.Property, len(properties))
	for i := range properties {
		p := properties[i]
		p.DatasetID = dataset.ID
		batch[i] = &p
	}
	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		return database.InsertProperties(tx, batch)
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to persist dataset")
	}
	logger.WithField("dataset_id", dataset.ID).Info("Persisted dataset")

	// Aggregates
	summary, err := analysis.Summarize(properties)
	if err != nil {
		logger.WithError(err).Fatal("Failed to summarize dataset")
	}
	cityStats := analysis.ByCity(properties)
	typeStats := analysis.ByType(properties)
	ageStats := analysis.ByAgeBand(properties)
	locationStats := analysis.ByLocationScore(properties)
	monthStats := analysis.ByMonth(properties)

	// Markdown report
	reportPath := filepath.Join(outDir, "report.md")
	reportFile, err := os.Create(reportPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create report file")
	}
	err = report.Write(reportFile, summary, cityStats, typeStats, ageStats, locationStats)
	if closeErr := reportFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to write report")
	}
	logger.WithField("path", reportPath).Info("Wrote market report")

	// Dashboard charts
	renderer := charts.NewRenderer(dashDir, logger)
	if err := renderer.RenderAll(properties, cityStats, typeStats, ageStats, monthStats); err != nil {
		logger.WithError(err).Fatal("Failed to render charts")
	}

	logger.WithFields(logrus.Fields{
		"most_expensive_city": summary.MostExpensiveCity,
		"best_value_type":     summary.BestValueType,
		"average_price":       summary.AveragePriceLakhs,
	}).Info("Analysis complete")
}
