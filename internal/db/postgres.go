package db

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ErkinN/go-crm/internal/models"
)

var DB *gorm.DB

func Init() {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_USER", "crm"),
		getEnv("POSTGRES_PASSWORD", "crm"),
		getEnv("POSTGRES_DB", "crm"),
		getEnv("DB_PORT", "5432"),
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {

		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}

	err = DB.AutoMigrate(&models.Customer{})

	if err != nil {

		log.Fatal().Err(err).Msg("Failed to migrate DB")
	}

	if err = EnsureIndexes(DB); err != nil {

		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	log.Info().Msg("Database connected and migrated successfully")
}

// EnsureIndexes creates the indexes AutoMigrate cannot express. The unique
// index on LOWER(password) makes the duplicate-secret check case-insensitive
// and atomic under concurrent creates.
func EnsureIndexes(conn *gorm.DB) error {
	return conn.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_password_lower ON customers (LOWER(password))",
	).Error
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
