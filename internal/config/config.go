package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Sheets    SheetsConfig
}

// DatabaseConfig holds the mutation-journal database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// SheetsConfig holds the remote spreadsheet configuration
type SheetsConfig struct {
	SheetID       string
	IndentSheet   string
	MasterSheet   string
	ScriptURL     string
	DriveFolderID string
	// RefreshInterval drives the dashboard stats poller.
	RefreshInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	sheetID := os.Getenv("SHEET_ID")
	if sheetID == "" {
		return nil, fmt.Errorf("SHEET_ID is required")
	}
	scriptURL := os.Getenv("SCRIPT_URL")
	if scriptURL == "" {
		return nil, fmt.Errorf("SCRIPT_URL is required")
	}

	refresh := 5 * time.Minute
	if raw := os.Getenv("DASHBOARD_REFRESH"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DASHBOARD_REFRESH %q: %w", raw, err)
		}
		refresh = parsed
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3210"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "indentflow"),
		},
		Sheets: SheetsConfig{
			SheetID:         sheetID,
			IndentSheet:     getEnv("SHEET_NAME", "SBH Maintenance"),
			MasterSheet:     getEnv("MASTER_SHEET_NAME", "Master"),
			ScriptURL:       scriptURL,
			DriveFolderID:   os.Getenv("DRIVE_FOLDER_ID"),
			RefreshInterval: refresh,
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
