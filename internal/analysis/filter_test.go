package analysis

import (
	"fmt"
	"testing"

	"happydash/domain/happiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearGrid() *happiness.Dataset {
	var rows []happiness.Record
	for _, c := range []string{"Finland", "Chad", "Denmark"} {
		for y := 2019; y <= 2024; y++ {
			rows = append(rows, rec(c, y, float64(y-2015)))
		}
	}
	return newDataset(rows...)
}

func TestFilter_YearRangeIsExact(t *testing.T) {
	ds := yearGrid()

	for lo := 2019; lo <= 2024; lo++ {
		for hi := lo; hi <= 2024; hi++ {
			sub := Filter(ds, lo, hi, nil)

			want := 0
			ds.Each(func(r happiness.Record) {
				if r.Year >= lo && r.Year <= hi {
					want++
				}
			})
			assert.Equal(t, want, sub.Len(), "range %d-%d", lo, hi)
			for _, r := range sub.Rows {
				assert.True(t, r.Year >= lo && r.Year <= hi, "row %d outside %d-%d", r.Year, lo, hi)
			}
		}
	}
}

func TestFilter_RangeWithoutRowsIsEmpty(t *testing.T) {
	sub := Filter(yearGrid(), 2030, 2031, nil)
	assert.True(t, sub.Empty())
}

func TestFilter_CountryAllowList(t *testing.T) {
	ds := yearGrid()

	sub := Filter(ds, 2019, 2024, []string{"Chad", "Atlantis"})
	assert.Equal(t, 6, sub.Len())
	for _, r := range sub.Rows {
		assert.Equal(t, "Chad", r.Country)
	}

	assert.Equal(t, ds.Len(), Filter(ds, 2019, 2024, nil).Len(), "empty allow-list means all")
	assert.True(t, Filter(ds, 2019, 2024, []string{"Atlantis"}).Empty())
}

func TestFilter_DoesNotMutateDataset(t *testing.T) {
	ds := yearGrid()
	before := ds.Records()

	sub := Filter(ds, 2020, 2021, []string{"Finland"})
	sub.Rows[0].Country = "Changed"

	assert.Equal(t, before, ds.Records())
}

func TestCapSelection(t *testing.T) {
	var selection []string
	for i := 0; i < 12; i++ {
		selection = append(selection, fmt.Sprintf("Country %02d", i))
	}

	capped, warning := CapSelection(selection, 8)
	require.Len(t, capped, 8)
	assert.Equal(t, selection[:8], capped)
	assert.Contains(t, warning, "showing the first 8")

	capped, warning = CapSelection(selection[:3], 8)
	assert.Equal(t, selection[:3], capped)
	assert.Empty(t, warning)

	capped, _ = CapSelection(selection, 8)
	capped[0] = "mutated"
	assert.Equal(t, "Country 00", selection[0], "input selection is left untouched")
}

func TestSubset_MissingColumns(t *testing.T) {
	ds := happiness.NewDataset(
		[]happiness.Record{rec("Chad", 2020, 4.0)},
		[]happiness.Field{happiness.FieldCountry, happiness.FieldYear, happiness.FieldLifeEval},
		"partial",
	)
	sub := all(ds)
	assert.Empty(t, sub.Missing(happiness.FieldLifeEval))
	assert.Equal(t, []string{"Explained by: Log GDP per capita"}, sub.Missing(happiness.FieldGDP))
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"zero value", Params{}, false},
		{"ordered years", Params{YearMin: 2019, YearMax: 2024}, false},
		{"reversed years", Params{YearMin: 2024, YearMax: 2019}, true},
		{"negative n", Params{TopN: -1}, true},
		{"reversed boundary", Params{ChangeFrom: 2024, ChangeTo: 2019}, true},
		{"non factor", Params{ScatterFactors: []happiness.Field{happiness.FieldLifeEval}}, true},
		{"duplicate factor", Params{ScatterFactors: []happiness.Field{happiness.FieldGDP, happiness.FieldGDP}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParams_Key(t *testing.T) {
	a := Params{YearMin: 2019, YearMax: 2024, Countries: []string{"Chad", "Finland"}}
	b := Params{YearMin: 2019, YearMax: 2024, Countries: []string{"Finland", "Chad"}}
	assert.Equal(t, a.Key(), a.Key())
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestParseFactors(t *testing.T) {
	fs, err := ParseFactors("gdp, Explained by: Generosity")
	require.NoError(t, err)
	assert.Equal(t, []happiness.Field{happiness.FieldGDP, happiness.FieldGenerosity}, fs)

	_, err = ParseFactors("gdp,life_eval")
	assert.Error(t, err)

	assert.Equal(t, []string{"Chad", "Finland"}, ParseCountries(" Chad ,,Finland"))
}
