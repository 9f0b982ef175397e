package db

import (
	"fmt"
	"log"
	"os"

	"harborcrm/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("Warning: Could not create uuid-ossp extension: %v", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Printf("Warning: Failed to create some custom indexes: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

var customIndexes = []string{
	// Duplicate detection hits these constantly during imports
	`CREATE INDEX IF NOT EXISTS idx_contact_emails_email ON contact_emails(email)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_phones_phone_number ON contact_phones(phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_business_phones_phone_number ON business_phones(phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_vanid ON contacts(workspace_id, vanid) WHERE vanid != ''`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(workspace_id, lower(first_name), lower(last_name))`,
	`CREATE INDEX IF NOT EXISTS idx_businesses_name ON businesses(workspace_id, lower(name))`,

	`CREATE INDEX IF NOT EXISTS idx_import_sessions_workspace_status ON import_sessions(workspace_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_import_row_errors_session_row ON import_row_errors(session_id, row_number)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_workspace_members_unique ON workspace_members(workspace_id, user_id)`,
}

func createCustomIndexes(db *gorm.DB) error {
	for _, idx := range customIndexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s - %v", idx, err)
		}
	}

	return nil
}

// SeedInitialData creates lookup rows the import pipeline resolves against
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var genderCount int64
	if err := db.Model(&models.Gender{}).Count(&genderCount).Error; err != nil {
		return fmt.Errorf("failed to check existing genders: %w", err)
	}
	if genderCount == 0 {
		genders := []models.Gender{
			{Name: "Female"},
			{Name: "Male"},
			{Name: "Nonbinary"},
			{Name: "Unknown"},
		}
		if err := db.Create(&genders).Error; err != nil {
			return fmt.Errorf("failed to seed genders: %w", err)
		}
	}

	var raceCount int64
	if err := db.Model(&models.Race{}).Count(&raceCount).Error; err != nil {
		return fmt.Errorf("failed to check existing races: %w", err)
	}
	if raceCount == 0 {
		races := []models.Race{
			{Name: "Asian"},
			{Name: "Black"},
			{Name: "Hispanic"},
			{Name: "White"},
			{Name: "Other"},
			{Name: "Unknown"},
		}
		if err := db.Create(&races).Error; err != nil {
			return fmt.Errorf("failed to seed races: %w", err)
		}
	}

	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Println("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedInitialData(db); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Println("All migrations completed successfully")
	return nil
}
