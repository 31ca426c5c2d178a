package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"happydash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeedData(t *testing.T) {
	dir := t.TempDir()
	gc := testkit.DefaultGeneratorConfig()
	gc.Countries = 3

	for _, name := range []string{"seed.csv", "seed.xlsx"} {
		out := filepath.Join(dir, name)
		require.NoError(t, generateSeedData(gc, out))
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	assert.Error(t, generateSeedData(gc, filepath.Join(dir, "seed.json")))

	gc.YearFrom, gc.YearTo = 2022, 2018
	assert.Error(t, generateSeedData(gc, filepath.Join(dir, "bad.csv")))
}

func TestDeterminism(t *testing.T) {
	gc := testkit.DefaultGeneratorConfig()
	require.NoError(t, testDeterminism(context.Background(), gc))

	a, err := runOnce(context.Background(), gc)
	require.NoError(t, err)
	gc.Seed++
	b, err := runOnce(context.Background(), gc)
	require.NoError(t, err)
	assert.Error(t, compareRuns(a, b))
}
