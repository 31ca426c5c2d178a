package testkit

import (
	"path/filepath"
	"testing"

	"happydash/adapters/excel"
	"happydash/domain/happiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	a := NewGenerator(cfg).Records()
	b := NewGenerator(cfg).Records()

	require.Len(t, a, cfg.Countries*(cfg.YearTo-cfg.YearFrom+1))
	assert.Equal(t, a, b)
	assert.Equal(t, "Finland", a[0].Country)
	assert.Equal(t, cfg.YearFrom, a[0].Year)
}

func TestGenerator_NoGapsWithoutMissingRate(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.MissingRate = 0
	cfg.Countries = 20

	ds := NewGenerator(cfg).Dataset()
	assert.Len(t, ds.Countries(), 20)
	ds.Each(func(r happiness.Record) {
		assert.True(t, r.LifeEval.Valid)
		for _, f := range happiness.Factors {
			assert.True(t, r.Get(f).Valid, "%s %d %s", r.Country, r.Year, f)
		}
	})
	assert.Contains(t, ds.Countries(), "Country 020")
}

func TestWriteFiles_ReadBack(t *testing.T) {
	dir := t.TempDir()
	records := Drivers().Records()

	csvPath := filepath.Join(dir, "panel.csv")
	require.NoError(t, WriteCSV(csvPath, records))
	data, err := excel.NewDataReader(csvPath).ReadData()
	require.NoError(t, err)
	assert.Equal(t, Header(), data.Headers)
	assert.Len(t, data.Rows, len(records))

	xlsxPath := filepath.Join(dir, "panel.xlsx")
	require.NoError(t, WriteXLSX(xlsxPath, records))
	data, err = excel.NewDataReader(xlsxPath).ReadData()
	require.NoError(t, err)
	assert.Equal(t, Header(), data.Headers)
	assert.Len(t, data.Rows, len(records))
}
