package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"propscope/config"
	"propscope/internal/api"
	"propscope/internal/database"
	"propscope/internal/generator"
	"propscope/internal/processor"
	"propscope/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	profiles := config.DefaultProfiles()
	if cfg.Generator.ProfilePath != "" {
		profiles, err = config.LoadProfiles(cfg.Generator.ProfilePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load profile overrides")
		}
		logger.Infof("Loaded profile overrides from %s", cfg.Generator.ProfilePath)
	}

	// Get the current working directory
	currentDir, err := os.Getwd()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get current directory")
	}

	dbDir := filepath.Join(currentDir, "database")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	dbPath := filepath.Join(dbDir, "propscope.db")
	logger.Infof("Using database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	gen, err := generator.New(profiles.Cities, profiles.PropertyTypes, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize generator")
	}

	batchQueue := queue.NewBatchQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	batchQueue.Start(context.Background())

	batchProcessor := processor.NewBatchProcessor(db.GetDB(), batchQueue, cfg, logger)
	batchProcessor.Start()

	// Drain the queue into the workers before stopping them
	defer batchProcessor.Stop()
	defer batchQueue.Close()

	handler := api.NewHandler(db, gen, batchQueue, cfg, profiles, logger)

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
