package config

import (
	"os"
	"strconv"
	"strings"

	"titrate/domain/titration"
	"titrate/internal"
	"titrate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Scenario titration.Scenario
	Server   ServerConfig
	Database DatabaseConfig
	Output   OutputConfig
	Workers  int
	LogLevel internal.LogLevel
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig selects the optional run archive. An empty URL disables it.
type DatabaseConfig struct {
	Driver string
	URL    string
}

// Enabled reports whether runs should be archived
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// OutputConfig names the files the chart sinks write; empty disables a sink
type OutputConfig struct {
	PlotFile  string
	ExcelFile string
}

// Load reads configuration from environment variables and validates it.
// Callers load any .env file with godotenv first.
func Load() (*Config, error) {
	scenario, err := loadScenario(titration.DefaultScenario())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load titration scenario")
	}

	cfg := &Config{
		Scenario: scenario,
		Server:   ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DATABASE_DRIVER", "sqlite3"),
			URL:    getEnvOrDefault("DATABASE_URL", ""),
		},
		Output: OutputConfig{
			PlotFile:  getEnvOrDefault("PLOT_OUTPUT", ""),
			ExcelFile: getEnvOrDefault("EXCEL_OUTPUT", ""),
		},
		Workers:  getEnvIntOrDefault("WORKERS", 4),
		LogLevel: internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func loadScenario(s titration.Scenario) (titration.Scenario, error) {
	if v := os.Getenv("TITRATION_RATIO"); v != "" {
		ratio, err := titration.ParseRatio(v)
		if err != nil {
			return s, errors.ConfigInvalid("TITRATION_RATIO: %v", err)
		}
		s.Ratio = ratio
	}
	if v := os.Getenv("TITRATION_KIND"); v != "" {
		kind, err := titration.ParseKind(v)
		if err != nil {
			return s, errors.ConfigInvalid("TITRATION_KIND: %v", err)
		}
		s.Kind = kind
	}
	s.Unit = titration.Unit(getEnvOrDefault("TITRATION_UNIT", string(s.Unit)))
	s.CAnalyte = getEnvFloatOrDefault("TITRATION_C_ANALYTE", s.CAnalyte)
	s.CTitrant = getEnvFloatOrDefault("TITRATION_C_TITRANT", s.CTitrant)
	s.VAnalyte = getEnvFloatOrDefault("TITRATION_V_ANALYTE", s.VAnalyte)
	s.VTitrant = getEnvFloatOrDefault("TITRATION_V_TITRANT", s.VTitrant)
	s.InitialVol = getEnvFloatOrDefault("TITRATION_INITIAL_VOL", s.InitialVol)
	s.FinalVol = getEnvFloatOrDefault("TITRATION_FINAL_VOL", s.FinalVol)
	s.Increment = getEnvFloatOrDefault("TITRATION_INCREMENT", s.Increment)
	s.StrongAnalyte = getEnvBoolOrDefault("TITRATION_STRONG_ANALYTE", s.StrongAnalyte)
	s.StrongTitrant = getEnvBoolOrDefault("TITRATION_STRONG_TITRANT", s.StrongTitrant)
	s.K = getEnvFloatOrDefault("TITRATION_K", s.K)
	s.K2 = getEnvFloatOrDefault("TITRATION_K2", s.K2)

	if path := os.Getenv("TITRATION_SCENARIO_FILE"); path != "" {
		return LoadScenarioFile(path, s)
	}
	return s, nil
}

func validateConfig(cfg *Config) error {
	if err := cfg.Scenario.Validate(); err != nil {
		return errors.FromDomain(err)
	}
	if cfg.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1, got %d", cfg.Workers)
	}
	switch cfg.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return errors.ConfigInvalid("DATABASE_DRIVER must be sqlite3 or postgres, got %q", cfg.Database.Driver)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
