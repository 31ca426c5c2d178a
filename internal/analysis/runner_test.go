package analysis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"happydash/domain/happiness"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(ds *happiness.Dataset, memo *Memo) *Runner {
	return NewRunner(dataset.NewStaticStore(ds), config.Default().Analysis, memo)
}

func TestRunner_RunResolvesDefaults(t *testing.T) {
	r := newTestRunner(driversDataset(), nil)

	d, err := r.Run(context.Background(), Params{})
	require.NoError(t, err)

	assert.NotEmpty(t, d.CycleID)
	assert.Equal(t, 2019, d.Params.YearMin)
	assert.Equal(t, 2020, d.Params.YearMax)
	assert.Equal(t, 15, d.Params.TopN)
	assert.Equal(t, 15, d.Params.ChangeN)
	assert.Equal(t, 8, d.Params.MaxCountries)
	assert.Equal(t, 2019, d.Params.ChangeFrom)
	assert.Equal(t, 2020, d.Params.ChangeTo)
	assert.Equal(t, DefaultScatterFactors, d.Params.ScatterFactors)
	assert.Empty(t, d.Warnings)

	assert.Equal(t, Summary{Countries: 5, Years: 2, Rows: 10}, d.Summary)
	for _, f := range d.Frames() {
		assert.Equal(t, happiness.StatusOK, f.Status, "analysis %s: %s", f.Analysis, f.Reason)
		assert.NotEmpty(t, f.Title)
	}
	assert.Len(t, d.Frames(), len(happiness.AnalysisIDs))
}

func TestRunner_WarnsOnCapAndClamp(t *testing.T) {
	var rows []happiness.Record
	var selection []string
	for i := 0; i < 10; i++ {
		c := fmt.Sprintf("Country %d", i)
		selection = append(selection, c)
		rows = append(rows, rec(c, 2020, float64(i)))
	}
	r := newTestRunner(newDataset(rows...), nil)

	d, err := r.Run(context.Background(), Params{Countries: selection, MaxCountries: 3, TopN: 100})
	require.NoError(t, err)

	assert.Equal(t, 30, d.Params.TopN)
	require.Len(t, d.Warnings, 2)
	assert.Contains(t, d.Warnings[0], "top_n 100 out of range")
	assert.Contains(t, d.Warnings[1], "showing the first 3")

	var countries []string
	for _, p := range d.Trend.Rows {
		if !p.Global {
			countries = append(countries, p.Country)
		}
	}
	assert.Equal(t, selection[:3], countries)
	assert.Equal(t, 20, d.Ranking.Len(), "the allow-list itself is not capped")
}

func TestRunner_InvalidParams(t *testing.T) {
	r := newTestRunner(driversDataset(), nil)

	_, err := r.Run(context.Background(), Params{YearMin: 2020, YearMax: 2019})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = r.Run(context.Background(), Params{YearMin: 2030})
	assert.Error(t, err)
}

func TestRunner_MemoizesPerAnalysis(t *testing.T) {
	memo := NewMemo(64)
	r := newTestRunner(driversDataset(), memo)

	first, err := r.Run(context.Background(), Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(happiness.AnalysisIDs)), memo.Stats().Misses)

	second, err := r.Run(context.Background(), Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(happiness.AnalysisIDs)), memo.Stats().Hits)
	assert.Equal(t, first.Ranking, second.Ranking)
	assert.NotEqual(t, first.CycleID, second.CycleID)

	_, err = r.Run(context.Background(), Params{TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(2*len(happiness.AnalysisIDs)), memo.Stats().Misses)
}

func TestRunner_ConcurrentRuns(t *testing.T) {
	r := newTestRunner(driversDataset(), NewMemo(32))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := r.Run(context.Background(), Params{})
			assert.NoError(t, err)
			assert.Equal(t, happiness.StatusOK, d.Quadrant.Status)
		}()
	}
	wg.Wait()
}

func TestRunner_CancelledContext(t *testing.T) {
	r := newTestRunner(driversDataset(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, Params{})
	assert.Error(t, err)
}

func TestRunner_RunOne(t *testing.T) {
	r := newTestRunner(driversDataset(), nil)

	f, _, err := r.RunOne(context.Background(), Params{}, happiness.AnalysisQuadrant)
	require.NoError(t, err)
	assert.Equal(t, happiness.AnalysisQuadrant, f.Analysis)
	assert.Equal(t, []string{"country", "life_eval", "gdp"}, f.Columns)
	require.Len(t, f.Rows, 1)
	assert.Equal(t, "Echo", f.Rows[0][0])
}
