package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"lvr-ingest/internal/constants"
)

// DBConfig holds the database settings.
type DBConfig struct {
	URL string
}

// LVRConfig holds the upstream portal settings.
type LVRConfig struct {
	BaseURL      string
	UserAgent    string
	FetchTimeout time.Duration
	RegionDelay  time.Duration
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	Database DBConfig
	LVR      LVRConfig
	HTTP     HTTPConfig
}

// LoadConfig reads configuration from the environment, optionally seeded
// from a .env file. A missing .env file is fine; a missing DATABASE_URL is
// not.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: no .env file loaded (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.LVR.BaseURL = getEnvAsString("LVR_BASE_URL", constants.DefaultBaseURL)
	cfg.LVR.UserAgent = getEnvAsString("LVR_USER_AGENT", constants.DefaultUserAgent)
	cfg.LVR.FetchTimeout = time.Duration(getEnvAsInt("LVR_FETCH_TIMEOUT_SECONDS", 60)) * time.Second
	cfg.LVR.RegionDelay = time.Duration(getEnvAsInt("LVR_REGION_DELAY_SECONDS", 3)) * time.Second

	cfg.HTTP.Addr = getEnvAsString("HTTP_ADDR", ":8080")

	return cfg, nil
}

// getEnvAsString reads an environment variable or returns the default.
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int or returns the default.
// Logs when the variable exists but cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}
