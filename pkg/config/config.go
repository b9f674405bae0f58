package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency anchors every valuation and journal entry. Changing it on a
	// populated record store is not supported.
	BaseCurrency string

	// Default transaction currencies applied when requests omit one. They may
	// differ from the base currency (e.g. YER sales against a SAR base).
	DefaultSaleCurrency     string
	DefaultPurchaseCurrency string

	// RateStaleAfterDays controls when the staleness check flips to stale.
	RateStaleAfterDays int

	// RateLimit is a ulule/limiter formatted rate, e.g. "120-M".
	RateLimit string

	MigrationsPath string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "SAR")
	viper.SetDefault("DEFAULT_SALE_CURRENCY", "")
	viper.SetDefault("DEFAULT_PURCHASE_CURRENCY", "")
	viper.SetDefault("RATE_STALE_AFTER_DAYS", 7)
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))

	// Defaults fall back to the base currency when unset.
	cfg.DefaultSaleCurrency = strings.ToUpper(viper.GetString("DEFAULT_SALE_CURRENCY"))
	if cfg.DefaultSaleCurrency == "" {
		cfg.DefaultSaleCurrency = cfg.BaseCurrency
	}
	cfg.DefaultPurchaseCurrency = strings.ToUpper(viper.GetString("DEFAULT_PURCHASE_CURRENCY"))
	if cfg.DefaultPurchaseCurrency == "" {
		cfg.DefaultPurchaseCurrency = cfg.BaseCurrency
	}

	cfg.RateStaleAfterDays = viper.GetInt("RATE_STALE_AFTER_DAYS")
	if cfg.RateStaleAfterDays <= 0 {
		log.Printf("Warning: invalid RATE_STALE_AFTER_DAYS, defaulting to 7\n")
		cfg.RateStaleAfterDays = 7
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}
