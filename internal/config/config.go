package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Dropbox   DropboxConfig
	ERP       ERPConfig
	AI        AIConfig
	Rates     RatesConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// DropboxConfig holds Dropbox API settings
type DropboxConfig struct {
	AccessToken string
	RootFolder  string
}

// ERPConfig holds the XML-RPC bridge settings for the ERP system
type ERPConfig struct {
	URL      string
	Database string
	Username string
	Password string
}

// AIConfig holds Gemini settings for email triage and report generation
type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

// RatesConfig holds commodity/exchange rate fetcher settings
type RatesConfig struct {
	APIBaseURL      string
	RefreshInterval int // in minutes
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "8100"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "bizportal"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Dropbox: DropboxConfig{
			AccessToken: os.Getenv("DROPBOX_ACCESS_TOKEN"),
			RootFolder:  getEnv("DROPBOX_ROOT_FOLDER", "/업무자료"),
		},
		ERP: ERPConfig{
			URL:      os.Getenv("ERP_URL"),
			Database: os.Getenv("ERP_DATABASE"),
			Username: os.Getenv("ERP_USERNAME"),
			Password: os.Getenv("ERP_PASSWORD"),
		},
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Rates: RatesConfig{
			APIBaseURL:      getEnv("RATES_API_URL", "https://open.er-api.com/v6/latest"),
			RefreshInterval: getEnvInt("RATES_REFRESH_MINUTES", 60),
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

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
