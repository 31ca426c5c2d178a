package config

import (
	"os"
	"strconv"

	"happydash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig     `validate:"required"`
	Database  DatabaseConfig
	Server    ServerConfig   `validate:"required"`
	Analysis  AnalysisConfig `validate:"required"`
	Charts    ChartConfig
	Memo      MemoConfig
	Profiling ProfilingConfig
}

// DataConfig holds the input file settings
type DataConfig struct {
	File  string
	Sheet string
}

// DatabaseConfig selects a SQL table as the dataset source instead of a file
type DatabaseConfig struct {
	URL    string
	Driver string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	APIPort string
	GinMode string
}

// AnalysisConfig holds the defaults and bounds of the per-chart parameters
type AnalysisConfig struct {
	TopNDefault         int
	ChangeNDefault      int
	NMin                int
	NMax                int
	MaxCountriesDefault int
	MaxCountriesMin     int
	MaxCountriesMax     int
	// ChangeFromYear and ChangeToYear pin the P3 boundary pair; 0 means the dataset's first/last year
	ChangeFromYear int
	ChangeToYear   int
}

// ChartConfig holds PNG rendering sizes in inches
type ChartConfig struct {
	WidthIn  float64
	HeightIn float64
	Overlay  bool
}

// MemoConfig controls the analysis memoization layer
type MemoConfig struct {
	Enabled    bool
	MaxEntries int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dataConfig, err := loadDataConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}
	config.Data = *dataConfig
	config.Database = *loadDatabaseConfig()

	config.Server = *loadServerConfig()
	config.Analysis = *loadAnalysisConfig()
	config.Charts = *loadChartConfig()
	config.Memo = *loadMemoConfig()
	config.Profiling = *loadProfilingConfig()

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns a configuration with every default filled in and no data file
func Default() *Config {
	return &Config{
		Database:  DatabaseConfig{Driver: "postgres"},
		Server:    *loadServerConfigFrom(func(string) string { return "" }),
		Analysis:  *loadAnalysisConfigFrom(func(string) string { return "" }),
		Charts:    *loadChartConfigFrom(func(string) string { return "" }),
		Memo:      *loadMemoConfigFrom(func(string) string { return "" }),
		Profiling: ProfilingConfig{Port: "6060"},
	}
}

func loadDataConfig() (*DataConfig, error) {
	file := os.Getenv("DATA_FILE")
	if file == "" && os.Getenv("DATABASE_URL") == "" {
		return nil, errors.ConfigInvalid("DATA_FILE or DATABASE_URL is required")
	}
	return &DataConfig{File: file, Sheet: os.Getenv("DATA_SHEET")}, nil
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:    os.Getenv("DATABASE_URL"),
		Driver: getEnvOrDefault(os.Getenv, "DATABASE_DRIVER", "postgres"),
	}
}

func loadServerConfig() *ServerConfig {
	return loadServerConfigFrom(os.Getenv)
}

func loadServerConfigFrom(getenv func(string) string) *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault(getenv, "PORT", "8080"),
		APIPort: getEnvOrDefault(getenv, "API_PORT", "8090"),
		GinMode: getEnvOrDefault(getenv, "GIN_MODE", "release"),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return loadAnalysisConfigFrom(os.Getenv)
}

func loadAnalysisConfigFrom(getenv func(string) string) *AnalysisConfig {
	return &AnalysisConfig{
		TopNDefault:         getEnvIntOrDefault(getenv, "TOP_N_DEFAULT", 15),
		ChangeNDefault:      getEnvIntOrDefault(getenv, "CHANGE_N_DEFAULT", 15),
		NMin:                getEnvIntOrDefault(getenv, "N_MIN", 5),
		NMax:                getEnvIntOrDefault(getenv, "N_MAX", 30),
		MaxCountriesDefault: getEnvIntOrDefault(getenv, "MAX_COUNTRIES_DEFAULT", 8),
		MaxCountriesMin:     getEnvIntOrDefault(getenv, "MAX_COUNTRIES_MIN", 3),
		MaxCountriesMax:     getEnvIntOrDefault(getenv, "MAX_COUNTRIES_MAX", 15),
		ChangeFromYear:      getEnvIntOrDefault(getenv, "CHANGE_FROM_YEAR", 0),
		ChangeToYear:        getEnvIntOrDefault(getenv, "CHANGE_TO_YEAR", 0),
	}
}

func loadChartConfig() *ChartConfig {
	return loadChartConfigFrom(os.Getenv)
}

func loadChartConfigFrom(getenv func(string) string) *ChartConfig {
	return &ChartConfig{
		WidthIn:  getEnvFloatOrDefault(getenv, "CHART_WIDTH_IN", 8),
		HeightIn: getEnvFloatOrDefault(getenv, "CHART_HEIGHT_IN", 4.5),
		Overlay:  getEnvBoolOrDefault(getenv, "CHART_REGRESSION_OVERLAY", true),
	}
}

func loadMemoConfig() *MemoConfig {
	return loadMemoConfigFrom(os.Getenv)
}

func loadMemoConfigFrom(getenv func(string) string) *MemoConfig {
	return &MemoConfig{
		Enabled:    getEnvBoolOrDefault(getenv, "MEMO_ENABLED", true),
		MaxEntries: getEnvIntOrDefault(getenv, "MEMO_MAX_ENTRIES", 512),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault(os.Getenv, "PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault(os.Getenv, "PPROF_ENABLED", false),
	}
}

// Validate checks required fields and parameter bounds
func Validate(config *Config) error {
	if config.Data.File == "" && config.Database.URL == "" {
		return errors.ConfigInvalid("a data file or a database URL is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}

	a := config.Analysis
	if a.NMin < 1 || a.NMin > a.NMax {
		return errors.ConfigInvalid("N bounds must satisfy 1 <= N_MIN <= N_MAX")
	}
	if a.TopNDefault < a.NMin || a.TopNDefault > a.NMax {
		return errors.ConfigInvalid("TOP_N_DEFAULT must lie within N_MIN..N_MAX")
	}
	if a.ChangeNDefault < a.NMin || a.ChangeNDefault > a.NMax {
		return errors.ConfigInvalid("CHANGE_N_DEFAULT must lie within N_MIN..N_MAX")
	}
	if a.MaxCountriesMin < 1 || a.MaxCountriesMin > a.MaxCountriesMax {
		return errors.ConfigInvalid("max-countries bounds must satisfy 1 <= MIN <= MAX")
	}
	if a.MaxCountriesDefault < a.MaxCountriesMin || a.MaxCountriesDefault > a.MaxCountriesMax {
		return errors.ConfigInvalid("MAX_COUNTRIES_DEFAULT must lie within its bounds")
	}
	if (a.ChangeFromYear == 0) != (a.ChangeToYear == 0) {
		return errors.ConfigInvalid("CHANGE_FROM_YEAR and CHANGE_TO_YEAR must be set together")
	}
	if a.ChangeFromYear != 0 && a.ChangeFromYear >= a.ChangeToYear {
		return errors.ConfigInvalid("CHANGE_FROM_YEAR must be before CHANGE_TO_YEAR")
	}
	if config.Memo.Enabled && config.Memo.MaxEntries < 1 {
		return errors.ConfigInvalid("MEMO_MAX_ENTRIES must be positive when memoization is enabled")
	}
	return nil
}

// ClampN bounds a per-chart N parameter; 0 selects the default
func (a AnalysisConfig) ClampN(n, def int) int {
	if n == 0 {
		n = def
	}
	return clamp(n, a.NMin, a.NMax)
}

// ClampMaxCountries bounds the line-chart country cap; 0 selects the default
func (a AnalysisConfig) ClampMaxCountries(n int) int {
	if n == 0 {
		n = a.MaxCountriesDefault
	}
	return clamp(n, a.MaxCountriesMin, a.MaxCountriesMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Helper functions for environment variable parsing
func getEnvOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(getenv func(string) string, key string, defaultValue float64) float64 {
	if value := getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
