package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Upstream bookings API
	BookingsAPIBaseURL  string
	BookingsAPIPageSize int

	// Reporting
	ReportingCurrency string
	RatesFilePath     string
	OutputPath        string

	// Report API auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, in ulule/limiter notation (e.g. "100-H")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BOOKINGS_API_BASE_URL", "")
	viper.SetDefault("BOOKINGS_API_PAGE_SIZE", 100)
	viper.SetDefault("REPORTING_CURRENCY", "GBP")
	viper.SetDefault("RATES_FILE_PATH", "exchange_rates.csv")
	viper.SetDefault("OUTPUT_PATH", "final_table.csv")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "booking-revenue-app")
	viper.SetDefault("RATE_LIMIT", "100-H")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.BookingsAPIBaseURL = viper.GetString("BOOKINGS_API_BASE_URL")
	cfg.BookingsAPIPageSize = viper.GetInt("BOOKINGS_API_PAGE_SIZE")
	if cfg.BookingsAPIPageSize <= 0 {
		cfg.BookingsAPIPageSize = 100
		log.Printf("Warning: Invalid BOOKINGS_API_PAGE_SIZE. Defaulting to %d.\n", cfg.BookingsAPIPageSize)
	}

	cfg.ReportingCurrency = viper.GetString("REPORTING_CURRENCY")
	cfg.RatesFilePath = viper.GetString("RATES_FILE_PATH")
	cfg.OutputPath = viper.GetString("OUTPUT_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
