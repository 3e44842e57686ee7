package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"propscope/internal/models"
)

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// RunMigrations creates or updates the schema for datasets and properties.
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(&models.Dataset{}, &models.Property{})
}

// CreateDataset registers a new generation run and returns it with a fresh
// UUID assigned.
func (d *Database) CreateDataset(seed int64, count int, generatedAt time.Time) (*models.Dataset, error) {
	dataset := &models.Dataset{
		ID:          uuid.NewString(),
		Seed:        seed,
		Count:       count,
		GeneratedAt: generatedAt,
	}
	if err := d.db.Create(dataset).Error; err != nil {
		return nil, fmt.Errorf("failed to create dataset: %v", err)
	}
	return dataset, nil
}

// LatestDataset returns the most recently stored run, or nil when the
// database is empty.
func (d *Database) LatestDataset() (*models.Dataset, error) {
	var dataset models.Dataset
	err := d.db.Order("created_at DESC").First(&dataset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

// GetProperties returns records in insertion order, optionally filtered by
// dataset, city (case-insensitive) and property type.
func (d *Database) GetProperties(datasetID, city, propertyType string) ([]models.Property, error) {
	query := d.db.Model(&models.Property{})
	if datasetID != "" {
		query = query.Where("dataset_id = ?", datasetID)
	}
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if propertyType != "" {
		query = query.Where("property_type = ?", propertyType)
	}

	var properties []models.Property
	if err := query.Order("id").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// CountProperties returns the number of stored records for a dataset.
func (d *Database) CountProperties(datasetID string) (int64, error) {
	var count int64
	query := d.db.Model(&models.Property{})
	if datasetID != "" {
		query = query.Where("dataset_id = ?", datasetID)
	}
	err := query.Count(&count).Error
	return count, err
}

// InsertProperties inserts a batch inside the given transaction handle.
func InsertProperties(tx *gorm.DB, properties []*models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	return tx.CreateInBatches(properties, 100).Error
}

// GetDB exposes the underlying gorm handle for transactional callers.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
