package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/parks-scoring/pkg/core/viability"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:      "postgres://parks@localhost:5432/parks",
		VolunteerSheetID: "sheet123",
		VolunteersTab:    "Voluntarios",
		Timezone:         "America/Mexico_City",
		CostRates: CostRatesConfig{
			InstructorHourly: ptr(450.0),
		},
		Thresholds: ThresholdsConfig{
			ReviewMargin:   ptr(30.0),
			BreakEvenRatio: ptr(0.75),
		},
		Server: ServerConfig{
			Addr:           ":9090",
			AllowedOrigins: []string{"https://parques.example.org"},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://parks@localhost:5432/parks",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SheetWithoutTab(t *testing.T) {
	cfg := &Config{
		DatabaseURL:      "postgres://parks@localhost:5432/parks",
		VolunteerSheetID: "sheet123",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "VolunteersTab")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"negative instructor rate", func(cfg *Config) { cfg.CostRates.InstructorHourly = ptr(-1.0) }},
		{"negative materials rate", func(cfg *Config) { cfg.CostRates.MaterialsPerHead = ptr(-0.5) }},
		{"zero break-even ratio", func(cfg *Config) { cfg.Thresholds.BreakEvenRatio = ptr(0.0) }},
		{"occupancy above one", func(cfg *Config) { cfg.Thresholds.MinOccupancy = ptr(1.5) }},
		{"margin out of range", func(cfg *Config) { cfg.Thresholds.ReviewMargin = ptr(150.0) }},
		{"unknown timezone", func(cfg *Config) { cfg.Timezone = "Mars/Olympus_Mons" }},
		{"bad origin", func(cfg *Config) { cfg.Server.AllowedOrigins = []string{"not a url"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DatabaseURL: "postgres://parks@localhost:5432/parks"}
			tt.mutate(cfg)

			err := Validate(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidate_ThresholdOrdering(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://parks@localhost:5432/parks",
		Thresholds: ThresholdsConfig{
			RejectMargin: ptr(30.0), // above the default review margin of 25
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid thresholds")
}

func TestEstimatorRates_Defaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, viability.DefaultCostRates(), cfg.EstimatorRates())
	assert.Equal(t, viability.DefaultThresholds(), cfg.EstimatorThresholds())
}

func TestEstimatorRates_PartialOverride(t *testing.T) {
	cfg := &Config{
		CostRates: CostRatesConfig{
			FixedIndirect: ptr(0.0),
		},
		Thresholds: ThresholdsConfig{
			MinOccupancy: ptr(0.5),
		},
	}

	rates := cfg.EstimatorRates()
	assert.Equal(t, 500.0, rates.InstructorHourly)
	assert.Equal(t, 25.0, rates.MaterialsPerHead)
	assert.Equal(t, 0.0, rates.FixedIndirect)

	thresholds := cfg.EstimatorThresholds()
	assert.Equal(t, 10.0, thresholds.RejectMargin)
	assert.Equal(t, 25.0, thresholds.ReviewMargin)
	assert.Equal(t, 0.8, thresholds.BreakEvenRatio)
	assert.Equal(t, 0.5, thresholds.MinOccupancy)
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":8080", (&Config{}).ServerAddr())
	assert.Equal(t, "127.0.0.1:9000", (&Config{Server: ServerConfig{Addr: "127.0.0.1:9000"}}).ServerAddr())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, (&Config{}).Location())

	loc := (&Config{Timezone: "Europe/Madrid"}).Location()
	assert.Equal(t, "Europe/Madrid", loc.String())
}

func TestUsesVolunteerSheet(t *testing.T) {
	assert.False(t, (&Config{}).UsesVolunteerSheet())
	assert.True(t, (&Config{VolunteerSheetID: "sheet123"}).UsesVolunteerSheet())
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "parks_config.yaml")

	validConfig := `
databaseURL: "postgres://parks@localhost:5432/parks"
volunteerSheetID: "sheet123"
volunteersTab: "Voluntarios"
timezone: "America/Mexico_City"
costRates:
  instructorHourly: 450
  materialsPerHead: 30
thresholds:
  rejectMargin: 5
  breakEvenRatio: 0.9
server:
  addr: ":9090"
  allowedOrigins:
    - "https://parques.example.org"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://parks@localhost:5432/parks", cfg.DatabaseURL)
	assert.Equal(t, "sheet123", cfg.VolunteerSheetID)
	assert.Equal(t, "Voluntarios", cfg.VolunteersTab)
	assert.Equal(t, ":9090", cfg.ServerAddr())
	assert.Equal(t, []string{"https://parques.example.org"}, cfg.Server.AllowedOrigins)

	rates := cfg.EstimatorRates()
	assert.Equal(t, 450.0, rates.InstructorHourly)
	assert.Equal(t, 30.0, rates.MaterialsPerHead)
	assert.Equal(t, 200.0, rates.FixedIndirect)

	thresholds := cfg.EstimatorThresholds()
	assert.Equal(t, 5.0, thresholds.RejectMargin)
	assert.Equal(t, 0.9, thresholds.BreakEvenRatio)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	err := os.WriteFile(configPath, []byte(`databaseURL: "postgres://localhost/parks"`), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Empty(t, cfg.VolunteerSheetID)
	assert.Nil(t, cfg.CostRates.InstructorHourly)
	assert.Nil(t, cfg.Thresholds.ReviewMargin)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
# Missing databaseURL
volunteerSheetID: "sheet123"
volunteersTab: "Voluntarios"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
databaseURL: "postgres://localhost/parks"
  invalid indentation
volunteersTab: "Voluntarios"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/parks_config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_PrefersEnvironmentFile(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	require.NoError(t, os.WriteFile("parks_config.yaml", []byte(`databaseURL: "postgres://localhost/shared"`), 0644))
	require.NoError(t, os.WriteFile("parks_config.test.yaml", []byte(`databaseURL: "postgres://localhost/test"`), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)

	cfg, err = LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/shared", cfg.DatabaseURL)
}
