package config

import (
	"testing"

	"happydash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDataFile(t *testing.T) {
	t.Setenv("DATA_FILE", "")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestLoad_DatabaseInsteadOfFile(t *testing.T) {
	t.Setenv("DATA_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/happiness?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Data.File)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DATA_FILE", "Happiness.csv")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "9000")
	t.Setenv("TOP_N_DEFAULT", "10")
	t.Setenv("CHANGE_FROM_YEAR", "2019")
	t.Setenv("CHANGE_TO_YEAR", "2024")
	t.Setenv("MEMO_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Happiness.csv", cfg.Data.File)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Analysis.TopNDefault)
	assert.Equal(t, 15, cfg.Analysis.ChangeNDefault)
	assert.Equal(t, 2019, cfg.Analysis.ChangeFromYear)
	assert.False(t, cfg.Memo.Enabled)
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"top n outside bounds", func(c *Config) { c.Analysis.TopNDefault = 50 }},
		{"inverted n bounds", func(c *Config) { c.Analysis.NMin = 31 }},
		{"half boundary pair", func(c *Config) { c.Analysis.ChangeFromYear = 2019 }},
		{"reversed boundary pair", func(c *Config) {
			c.Analysis.ChangeFromYear = 2024
			c.Analysis.ChangeToYear = 2019
		}},
		{"memo without capacity", func(c *Config) { c.Memo.MaxEntries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Data.File = "Happiness.csv"
			require.NoError(t, Validate(cfg))

			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestAnalysisConfig_Clamp(t *testing.T) {
	a := Default().Analysis

	assert.Equal(t, 15, a.ClampN(0, a.TopNDefault))
	assert.Equal(t, 5, a.ClampN(1, a.TopNDefault))
	assert.Equal(t, 30, a.ClampN(99, a.TopNDefault))
	assert.Equal(t, 8, a.ClampMaxCountries(0))
	assert.Equal(t, 15, a.ClampMaxCountries(40))
	assert.Equal(t, 3, a.ClampMaxCountries(-2))
}
