package container

import (
	"context"
	"path/filepath"
	"testing"

	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_WiresPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.xlsx")
	require.NoError(t, testkit.WriteXLSX(path, testkit.Drivers().Records()))

	cfg := config.Default()
	cfg.Data.File = path

	c, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, c.Memo)
	assert.False(t, c.Store.Loaded())

	require.NoError(t, c.Warm(context.Background()))
	assert.True(t, c.Store.Loaded())

	d, err := c.Runner.Run(context.Background(), analysis.Params{})
	require.NoError(t, err)
	assert.Equal(t, 5, d.Summary.Countries)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Equal(t, 0, c.Memo.Stats().Entries)
}

func TestNew_MemoDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Data.File = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Memo.Enabled = false

	c, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Memo)
	assert.Error(t, c.Warm(context.Background()))
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestNew_DatabaseSource(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.URL = filepath.Join(t.TempDir(), "panel.db")

	c, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, c.Records)

	_, err = c.Records.Replace(context.Background(), testkit.Drivers().Records())
	require.NoError(t, err)

	info, err := c.Store.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sql:happiness_records", info.Source)
	assert.Equal(t, 10, info.Rows)

	require.NoError(t, c.Shutdown(context.Background()))
}
