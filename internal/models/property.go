package models

import "time"

// Property is one synthesized listing. Records are immutable once generated;
// the store only ever inserts and reads them.
type Property struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DatasetID     string    `gorm:"index;size:36" json:"dataset_id"`
	City          string    `gorm:"index" json:"city"`
	PropertyType  string    `gorm:"index" json:"property_type"`
	AreaSqft      int       `json:"area_sqft"`
	PriceLakhs    float64   `json:"price_lakhs"`
	PricePerSqft  int       `json:"price_per_sqft"`
	AgeYears      int       `json:"property_age_years"`
	FloorNumber   int       `json:"floor_number"`
	TotalFloors   int       `json:"total_floors"`
	LocationScore int       `json:"location_score"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	ListingDate   time.Time `json:"listing_date"`
	MonthListed   string    `json:"month_listed"`
	CreatedAt     time.Time `json:"created_at"`
}

// Dataset identifies one generation run. Every property carries the ID of the
// run that produced it so several runs can share one database.
type Dataset struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Seed        int64     `json:"seed"`
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
}
