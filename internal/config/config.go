package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll engine defaults.
type PayrollConfig struct {
	// GroupInsuranceMonthlyFee is the flat monthly group insurance amount
	// used when no per-employee fee is configured.
	GroupInsuranceMonthlyFee decimal.Decimal
	// PublicHolidays are the statutory non-working dates (YYYY-MM-DD,
	// comma separated) added on top of weekends.
	PublicHolidays []time.Time
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "guardsite-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Payroll configuration
	groupFee, err := decimal.NewFromString(getEnv("GROUP_INSURANCE_MONTHLY_FEE", "350"))
	if err != nil {
		return nil, fmt.Errorf("invalid GROUP_INSURANCE_MONTHLY_FEE: %w", err)
	}

	holidays, err := parseDates(getEnvSlice("PUBLIC_HOLIDAYS"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLIC_HOLIDAYS: %w", err)
	}

	config.Payroll = PayrollConfig{
		GroupInsuranceMonthlyFee: groupFee,
		PublicHolidays:           holidays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if !c.Payroll.GroupInsuranceMonthlyFee.IsPositive() {
		return fmt.Errorf("GROUP_INSURANCE_MONTHLY_FEE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}

func parseDates(values []string) ([]time.Time, error) {
	var out []time.Time
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", v, err)
		}
		out = append(out, d)
	}
	return out, nil
}
