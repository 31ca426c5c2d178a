package analysis

import (
	"math"
	"strings"

	"happydash/domain/happiness"

	"github.com/biter777/countries"
)

// scaleTicks is the number of colorbar ticks of the map
const scaleTicks = 5

// iso3Aliases covers dataset country names the ISO name lookup does not resolve
var iso3Aliases = map[string]string{
	"congo (brazzaville)":      "COG",
	"congo (kinshasa)":         "COD",
	"dr congo":                 "COD",
	"hong kong sar of china":   "HKG",
	"taiwan province of china": "TWN",
	"state of palestine":       "PSE",
	"palestinian territories":  "PSE",
	"kosovo":                   "XKX",
	"ivory coast":              "CIV",
	"türkiye":                  "TUR",
	"turkiye":                  "TUR",
	"eswatini":                 "SWZ",
	"czechia":                  "CZE",
	"north macedonia":          "MKD",
	"russia":                   "RUS",
	"south korea":              "KOR",
	"laos":                     "LAO",
	"lao pdr":                  "LAO",
	"vietnam":                  "VNM",
	"viet nam":                 "VNM",
	"iran":                     "IRN",
	"syria":                    "SYR",
	"moldova":                  "MDA",
	"bolivia":                  "BOL",
	"venezuela":                "VEN",
	"tanzania":                 "TZA",
	"gambia":                   "GMB",
}

// ISO3 resolves a dataset country name to its ISO 3166-1 alpha-3 code
func ISO3(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if code, ok := iso3Aliases[key]; ok {
		return code, true
	}
	code := countries.ByName(name)
	if code == countries.Unknown {
		return "", false
	}
	alpha3 := code.Alpha3()
	return alpha3, alpha3 != ""
}

// ColorScale is the continuous color range of the map with its colorbar ticks
type ColorScale struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Ticks []float64 `json:"ticks"`
}

// Choropleth averages life evaluation per country and attaches ISO codes.
// Countries without a code keep an empty ISO3 so tabular views still list them.
func Choropleth(sub Subset) happiness.Table[happiness.MapRow] {
	id := happiness.AnalysisChoropleth
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.MapRow](id, missing)
	}

	means := withValid(countryMeans(sub.Rows, happiness.FieldLifeEval), happiness.FieldLifeEval)
	if len(means) == 0 {
		return noRows[happiness.MapRow](sub, id, "no data available for the map with the current filters")
	}

	rows := make([]happiness.MapRow, 0, len(means))
	for _, c := range means {
		iso, _ := ISO3(c.Key)
		rows = append(rows, happiness.MapRow{
			Country:     c.Key,
			ISO3:        iso,
			AvgLifeEval: c.Mean(happiness.FieldLifeEval).Value,
		})
	}
	return happiness.OK(id, rows)
}

// MapScale spans the table's values; ticks are evenly spaced and rounded
// to one decimal.
func MapScale(rows []happiness.MapRow) (ColorScale, bool) {
	if len(rows) == 0 {
		return ColorScale{}, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		lo = math.Min(lo, r.AvgLifeEval)
		hi = math.Max(hi, r.AvgLifeEval)
	}

	ticks := make([]float64, scaleTicks)
	for i := range ticks {
		v := lo + float64(i)*(hi-lo)/float64(scaleTicks-1)
		ticks[i] = math.Round(v*10) / 10
	}
	return ColorScale{Min: lo, Max: hi, Ticks: ticks}, true
}
