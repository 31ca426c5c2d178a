package analysis

import (
	"net/url"
	"testing"

	"happydash/domain/happiness"
	"happydash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromQuery(t *testing.T) {
	q, err := url.ParseQuery("year_min=2015&year_max=2020&countries=Finland,+Chad&country=Kenya&top_n=7&factors=gdp,Freedom")
	require.NoError(t, err)

	p, err := ParamsFromQuery(q)
	require.NoError(t, err)
	assert.Equal(t, 2015, p.YearMin)
	assert.Equal(t, 2020, p.YearMax)
	assert.Equal(t, []string{"Finland", "Chad", "Kenya"}, p.Countries)
	assert.Equal(t, 7, p.TopN)
	assert.Equal(t, []happiness.Field{happiness.FieldGDP, happiness.FieldFreedom}, p.ScatterFactors)
}

func TestParamsFromQuery_Rejects(t *testing.T) {
	for _, raw := range []string{
		"top_n=ten",
		"year_min=2021&year_max=2019",
		"factors=year",
		"change_from=2020&change_to=2020",
	} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, err = ParamsFromQuery(q)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err), raw)
	}
}

func TestParams_QueryRoundTrip(t *testing.T) {
	p := Params{
		YearMin:        2010,
		YearMax:        2012,
		Countries:      []string{"Costa Rica", "Chad"},
		MaxCountries:   4,
		ScatterFactors: []happiness.Field{happiness.FieldCorruption},
	}
	back, err := ParamsFromQuery(p.Query())
	require.NoError(t, err)
	assert.Equal(t, p, back)

	assert.Empty(t, Params{}.Query())
}
