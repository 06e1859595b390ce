package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/parks-scoring/pkg/core/viability"
)

const (
	configFileBase    = "parks_config"
	defaultServerAddr = ":8080"
)

// CostRatesConfig overrides the estimator's fixed-rate cost assumptions
type CostRatesConfig struct {
	InstructorHourly *float64 `yaml:"instructorHourly,omitempty" validate:"omitempty,gte=0"`
	MaterialsPerHead *float64 `yaml:"materialsPerHead,omitempty" validate:"omitempty,gte=0"`
	FixedIndirect    *float64 `yaml:"fixedIndirect,omitempty" validate:"omitempty,gte=0"`
}

// ThresholdsConfig overrides the estimator's classification thresholds.
// Margins are percentages, ratios are fractions of capacity.
type ThresholdsConfig struct {
	RejectMargin   *float64 `yaml:"rejectMargin,omitempty" validate:"omitempty,gte=-100,lte=100"`
	ReviewMargin   *float64 `yaml:"reviewMargin,omitempty" validate:"omitempty,gte=-100,lte=100"`
	BreakEvenRatio *float64 `yaml:"breakEvenRatio,omitempty" validate:"omitempty,gt=0,lte=1"`
	MinOccupancy   *float64 `yaml:"minOccupancy,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// ServerConfig configures the JSON endpoint used by the admin dashboard
type ServerConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty" validate:"dive,url"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// Optional spreadsheet volunteer source; postgres is used when unset
	VolunteerSheetID string `yaml:"volunteerSheetID,omitempty"`
	VolunteersTab    string `yaml:"volunteersTab,omitempty" validate:"required_with=VolunteerSheetID"`

	Timezone   string           `yaml:"timezone,omitempty" validate:"omitempty,timezone"`
	CostRates  CostRatesConfig  `yaml:"costRates,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// env="test" looks for parks_config.test.yaml, falling back to parks_config.yaml.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the ordering of the margin thresholds
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	thresholds := cfg.EstimatorThresholds()
	if thresholds.RejectMargin > thresholds.ReviewMargin {
		return fmt.Errorf("invalid thresholds: rejectMargin (%v) must not exceed reviewMargin (%v)",
			thresholds.RejectMargin, thresholds.ReviewMargin)
	}

	return nil
}

// UsesVolunteerSheet reports whether volunteers are read from a spreadsheet
func (c *Config) UsesVolunteerSheet() bool {
	return c.VolunteerSheetID != ""
}

// EstimatorRates returns the configured cost rates, filling gaps with defaults
func (c *Config) EstimatorRates() viability.CostRates {
	rates := viability.DefaultCostRates()
	if c.CostRates.InstructorHourly != nil {
		rates.InstructorHourly = *c.CostRates.InstructorHourly
	}
	if c.CostRates.MaterialsPerHead != nil {
		rates.MaterialsPerHead = *c.CostRates.MaterialsPerHead
	}
	if c.CostRates.FixedIndirect != nil {
		rates.FixedIndirect = *c.CostRates.FixedIndirect
	}
	return rates
}

// EstimatorThresholds returns the configured thresholds, filling gaps with defaults
func (c *Config) EstimatorThresholds() viability.Thresholds {
	thresholds := viability.DefaultThresholds()
	if c.Thresholds.RejectMargin != nil {
		thresholds.RejectMargin = *c.Thresholds.RejectMargin
	}
	if c.Thresholds.ReviewMargin != nil {
		thresholds.ReviewMargin = *c.Thresholds.ReviewMargin
	}
	if c.Thresholds.BreakEvenRatio != nil {
		thresholds.BreakEvenRatio = *c.Thresholds.BreakEvenRatio
	}
	if c.Thresholds.MinOccupancy != nil {
		thresholds.MinOccupancy = *c.Thresholds.MinOccupancy
	}
	return thresholds
}

// Location returns the timezone used to resolve activity dates (UTC when unset)
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ServerAddr returns the listen address for the JSON endpoint
func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return defaultServerAddr
	}
	return c.Server.Addr
}

// findConfigFile searches for the environment-specific file first, then the shared one
func findConfigFile(env string) (string, error) {
	var candidates []string
	if env != "" {
		candidates = append(candidates, configFileBase+"."+env+".yaml")
	}
	candidates = append(candidates, configFileBase+".yaml")

	return findInWorkingOrHomeDir(candidates)
}

// findInWorkingOrHomeDir returns the first candidate present in the current directory,
// then in the user's home directory
func findInWorkingOrHomeDir(candidates []string) (string, error) {
	homeDir, homeErr := os.UserHomeDir()

	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		if homeErr != nil {
			continue
		}
		homePath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homePath); err == nil {
			return homePath, nil
		}
	}

	return "", fmt.Errorf("none of %v found in current directory or home directory", candidates)
}
