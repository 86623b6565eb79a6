package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	LogLevel string

	// Engine knobs
	HorizonDays       int
	SafetyBuffer      float64
	DTIThreshold      float64
	MinRateDiff       float64
	RepaymentSpeed    string
	RepaymentStrategy string

	// Service settings
	ResultCacheTTL       time.Duration
	ResultCacheCleanup   time.Duration
	RateLimitInterval    time.Duration
	RateLimitBurst       int
	MaxSnapshotSizeBytes int64

	// Frontend URL for reference (e.g., CORS)
	FrontendBaseURL string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	repaymentSpeed := strings.ToLower(getEnv("REPAYMENT_SPEED", "balanced"))
	switch repaymentSpeed {
	case "conservative", "balanced", "fast":
	default:
		log.Printf("WARNING: Unknown REPAYMENT_SPEED '%s', falling back to 'balanced'.", repaymentSpeed)
		repaymentSpeed = "balanced"
	}

	repaymentStrategy := strings.ToLower(getEnv("REPAYMENT_STRATEGY", "avalanche"))
	switch repaymentStrategy {
	case "avalanche", "snowball":
	default:
		log.Printf("WARNING: Unknown REPAYMENT_STRATEGY '%s', falling back to 'avalanche'.", repaymentStrategy)
		repaymentStrategy = "avalanche"
	}

	maxSnapshotSizeStr := getEnv("MAX_SNAPSHOT_SIZE_BYTES", "5242880") // 5MB default
	maxSnapshotSize, err := strconv.ParseInt(maxSnapshotSizeStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_SNAPSHOT_SIZE_BYTES format '%s'. Using default 5MB. Error: %v", maxSnapshotSizeStr, err)
		maxSnapshotSize = 5 * 1024 * 1024
	}

	// --- Populate the Global Config Struct ---
	Cfg = &AppConfig{
		// Core
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Engine
		HorizonDays:       getEnvAsInt("HORIZON_DAYS", 30),
		SafetyBuffer:      getEnvAsFloat("SAFETY_BUFFER", 5000.0),
		DTIThreshold:      getEnvAsFloat("DTI_THRESHOLD", 0.5),
		MinRateDiff:       getEnvAsFloat("MIN_RATE_DIFF", 1.5),
		RepaymentSpeed:    repaymentSpeed,
		RepaymentStrategy: repaymentStrategy,

		// Service
		ResultCacheTTL:       getEnvAsDuration("RESULT_CACHE_TTL", 15*time.Minute),
		ResultCacheCleanup:   getEnvAsDuration("RESULT_CACHE_CLEANUP", 30*time.Minute),
		RateLimitInterval:    getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:       getEnvAsInt("RATE_LIMIT_BURST", 30),
		MaxSnapshotSizeBytes: maxSnapshotSize,

		FrontendBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, Horizon=%dd, Buffer=%.0f, Strategy=%s/%s",
		Cfg.Port, Cfg.LogLevel, Cfg.HorizonDays, Cfg.SafetyBuffer, Cfg.RepaymentStrategy, Cfg.RepaymentSpeed)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsFloat retrieves an environment variable as a float64 or returns a fallback.
func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
