package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "WORLD_BOUNDARIES_PATH", "COUNTY_DATA_PATH", "WORLDBANK_BASE_URL",
	"WORLDBANK_INDICATOR", "WORLDBANK_COUNTRIES", "WORLDBANK_START", "WORLDBANK_END",
	"WORLDBANK_TIMEOUT", "TREND_TARGET", "STARTUP_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		t.Setenv(k+"_FILE", "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		check       func(t *testing.T, cfg *Config)
		wantErr     bool
		errContains string
	}{
		{
			name: "default configuration when no env vars set",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Empty(t, cfg.WorldBoundariesPath, "bundled boundaries")
				assert.Equal(t, "us-counties.csv", cfg.CountyDataPath)
				assert.Equal(t, "https://api.worldbank.org", cfg.WorldBankBaseURL)
				assert.Equal(t, "EN.POP.DNST", cfg.WorldBankIndicator)
				assert.Equal(t, DefaultCountryCodes, cfg.WorldBankCountries)
				assert.Equal(t, 1970, cfg.WorldBankStart)
				assert.Equal(t, 2000, cfg.WorldBankEnd)
				assert.Equal(t, 30*time.Second, cfg.WorldBankTimeout)
				assert.Equal(t, "China", cfg.TrendTarget)
				assert.Equal(t, 2*time.Minute, cfg.StartupTimeout)
			},
		},
		{
			name: "overrides from environment",
			env: map[string]string{
				"PORT":                "9090",
				"WORLDBANK_BASE_URL":  "http://localhost:1234/",
				"WORLDBANK_COUNTRIES": "chn, jpn",
				"WORLDBANK_START":     "1990",
				"WORLDBANK_END":       "1995",
				"WORLDBANK_TIMEOUT":   "5s",
				"TREND_TARGET":        "Japan",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, "http://localhost:1234", cfg.WorldBankBaseURL)
				assert.Equal(t, []string{"CHN", "JPN"}, cfg.WorldBankCountries)
				assert.Equal(t, 1990, cfg.WorldBankStart)
				assert.Equal(t, 1995, cfg.WorldBankEnd)
				assert.Equal(t, 5*time.Second, cfg.WorldBankTimeout)
				assert.Equal(t, "Japan", cfg.TrendTarget)
			},
		},
		{
			name:        "invalid year",
			env:         map[string]string{"WORLDBANK_START": "nineteen"},
			wantErr:     true,
			errContains: "invalid WORLDBANK_START format",
		},
		{
			name:        "invalid duration",
			env:         map[string]string{"STARTUP_TIMEOUT": "soon"},
			wantErr:     true,
			errContains: "invalid STARTUP_TIMEOUT format",
		},
		{
			name:        "reversed year range",
			env:         map[string]string{"WORLDBANK_START": "2001", "WORLDBANK_END": "2000"},
			wantErr:     true,
			errContains: "is after WORLDBANK_END",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_FileIndirection(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "county_path")
	require.NoError(t, os.WriteFile(path, []byte("  /srv/us-counties.xlsx\n"), 0o600))
	t.Setenv("COUNTY_DATA_PATH_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/us-counties.xlsx", cfg.CountyDataPath)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               "8080",
			WorldBankIndicator: "EN.POP.DNST",
			WorldBankCountries: DefaultCountryCodes,
			WorldBankStart:     1970,
			WorldBankEnd:       2000,
			WorldBankTimeout:   time.Second,
			TrendTarget:        "China",
			StartupTimeout:     time.Minute,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Port = ""
	assert.EqualError(t, cfg.Validate(), "PORT cannot be empty")

	cfg = valid()
	cfg.WorldBankCountries = nil
	assert.EqualError(t, cfg.Validate(), "WORLDBANK_COUNTRIES cannot be empty")

	cfg = valid()
	cfg.WorldBankTimeout = 0
	assert.EqualError(t, cfg.Validate(), "WORLDBANK_TIMEOUT must be positive")
}
