package config

import (
	"fmt"

	"github.com/toolshedhq/toolshed/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared database handle used by all handlers
var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateModels(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateModels runs AutoMigrate for every model. Split out so tests
// can migrate the same schema onto their own database handle.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.Patron{},
		&models.Category{},
		&models.Tool{},
		&models.Checkout{},
		&models.File{},
		&models.DamageReport{},
	)
}
