package happiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AccessorsDoNotExposeBackingRows(t *testing.T) {
	ds := NewCompleteDataset([]Record{
		{Country: "Finland", Year: 2024, LifeEval: Some(7.7)},
		{Country: "Chad", Year: 2019, LifeEval: Some(4.2)},
	}, "test.csv")

	rows := ds.Records()
	rows[0].Country = "Mutated"

	assert.Equal(t, "Finland", ds.Records()[0].Country)
	assert.Equal(t, []int{2019, 2024}, ds.Years())
	assert.Equal(t, []string{"Chad", "Finland"}, ds.Countries())

	lo, hi, ok := ds.YearBounds()
	require.True(t, ok)
	assert.Equal(t, 2019, lo)
	assert.Equal(t, 2024, hi)
}

func TestDataset_MissingColumnsUsesRawHeaders(t *testing.T) {
	ds := NewDataset(nil, []Field{FieldCountry, FieldYear, FieldLifeEval, FieldGDP}, "partial.csv")

	assert.True(t, ds.Has(FieldGDP))
	assert.False(t, ds.Has(FieldGenerosity))
	assert.Equal(t,
		[]string{"Explained by: Generosity", "Explained by: Perceptions of corruption"},
		ds.MissingColumns(FieldGDP, FieldGenerosity, FieldCorruption))

	_, _, ok := ds.YearBounds()
	assert.False(t, ok)
}

func TestSchema_FieldLookups(t *testing.T) {
	f, ok := FieldByRaw("  explained by: social support ")
	require.True(t, ok)
	assert.Equal(t, FieldSocialSupport, f)

	f, ok = ParseField("freedom")
	require.True(t, ok)
	assert.Equal(t, FieldFreedom, f)

	_, ok = ParseField("happiness")
	assert.False(t, ok)

	assert.True(t, FieldCorruption.IsFactor())
	assert.False(t, FieldLifeEval.IsFactor())
	assert.Equal(t, "GDP per capita", FieldGDP.Label())
}

func TestRecord_GetSet(t *testing.T) {
	r := Record{Country: "Chad", Year: 2020}
	r = r.Set(FieldGenerosity, Some(0.2))

	assert.Equal(t, Some(0.2), r.Get(FieldGenerosity))
	assert.False(t, r.Get(FieldCorruption).Valid)
	assert.Equal(t, 2020.0, r.Get(FieldYear).Value)
}

func TestTable_Constructors(t *testing.T) {
	ok := OK(AnalysisRanking, []RankRow{{Country: "Chad"}})
	assert.Equal(t, StatusOK, ok.Status)
	assert.True(t, ok.Renderable())

	empty := OK[RankRow](AnalysisRanking, nil)
	assert.Equal(t, StatusEmpty, empty.Status)
	assert.NotNil(t, empty.Rows)

	skipped := Skipped[RankRow](AnalysisProfile, []string{"Explained by: Generosity"})
	assert.Equal(t, StatusSkipped, skipped.Status)
	assert.Contains(t, skipped.Reason, "missing fields Explained by: Generosity")

	frame := ToFrame(ok, "Ranking")
	assert.Equal(t, []string{"group", "rank", "country", "avg_life_eval"}, frame.Columns)
	assert.Len(t, frame.Rows, 1)
}

func TestParseAnalysisID(t *testing.T) {
	id, ok := ParseAnalysisID(" p10 ")
	require.True(t, ok)
	assert.Equal(t, AnalysisChoropleth, id)

	_, ok = ParseAnalysisID("P11")
	assert.False(t, ok)
}
