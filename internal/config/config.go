package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCountryCodes are the ISO-3 codes downloaded from the World Bank.
var DefaultCountryCodes = []string{"CAN", "USA", "CHN", "JPN", "GRC", "FRA", "PER", "CHL", "NGA", "MOZ"}

// Config holds the application configuration
type Config struct {
	Port                string        // HTTP listen port
	WorldBoundariesPath string        // GeoJSON country boundaries; empty uses the bundled layer
	CountyDataPath      string        // US county time series (.csv or .xlsx)
	WorldBankBaseURL    string        // World Bank API root
	WorldBankIndicator  string        // Indicator code downloaded at startup
	WorldBankCountries  []string      // ISO-3 country codes
	WorldBankStart      int           // First year (inclusive)
	WorldBankEnd        int           // Last year (inclusive)
	WorldBankTimeout    time.Duration // HTTP client timeout
	TrendTarget         string        // Country column regressed on year
	StartupTimeout      time.Duration // Bound on loading all datasets
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := &Config{
		Port:                getEnv("PORT", "8080"),
		WorldBoundariesPath: getEnv("WORLD_BOUNDARIES_PATH", ""),
		CountyDataPath:      getEnv("COUNTY_DATA_PATH", "us-counties.csv"),
		WorldBankBaseURL:    strings.TrimRight(getEnv("WORLDBANK_BASE_URL", "https://api.worldbank.org"), "/"),
		WorldBankIndicator:  getEnv("WORLDBANK_INDICATOR", "EN.POP.DNST"),
		WorldBankCountries:  DefaultCountryCodes,
		WorldBankTimeout:    30 * time.Second,
		TrendTarget:         getEnv("TREND_TARGET", "China"),
		StartupTimeout:      2 * time.Minute,
	}

	if codes := getEnv("WORLDBANK_COUNTRIES", ""); codes != "" {
		config.WorldBankCountries = splitList(codes)
	}

	var err error
	if config.WorldBankStart, err = getEnvInt("WORLDBANK_START", 1970); err != nil {
		return nil, err
	}
	if config.WorldBankEnd, err = getEnvInt("WORLDBANK_END", 2000); err != nil {
		return nil, err
	}
	if config.WorldBankTimeout, err = getEnvDuration("WORLDBANK_TIMEOUT", config.WorldBankTimeout); err != nil {
		return nil, err
	}
	if config.StartupTimeout, err = getEnvDuration("STARTUP_TIMEOUT", config.StartupTimeout); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.WorldBankIndicator == "" {
		return fmt.Errorf("WORLDBANK_INDICATOR cannot be empty")
	}
	if len(c.WorldBankCountries) == 0 {
		return fmt.Errorf("WORLDBANK_COUNTRIES cannot be empty")
	}
	if c.WorldBankStart > c.WorldBankEnd {
		return fmt.Errorf("WORLDBANK_START (%d) is after WORLDBANK_END (%d)", c.WorldBankStart, c.WorldBankEnd)
	}
	if c.WorldBankTimeout <= 0 {
		return fmt.Errorf("WORLDBANK_TIMEOUT must be positive")
	}
	if c.StartupTimeout <= 0 {
		return fmt.Errorf("STARTUP_TIMEOUT must be positive")
	}
	if c.TrendTarget == "" {
		return fmt.Errorf("TREND_TARGET cannot be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
