package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
	Env        string
	UploadDir  string
}

// LoadConfig loads configuration from environment variables. A missing
// .env file is not fatal so the app can run from a real environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		UploadDir:  os.Getenv("UPLOAD_DIR"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}

	return config, nil
}
