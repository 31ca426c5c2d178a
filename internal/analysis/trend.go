package analysis

import (
	"happydash/domain/happiness"
)

// GlobalSeries names the always-visible average series of the trend chart
const GlobalSeries = "Global average"

// Trend builds the yearly global mean life evaluation plus one series per
// country. With an explicit selection only those countries are emitted and
// shown; without one every subset country is emitted with Visible=false.
// The selection must already be capped by the caller.
func Trend(sub Subset, selection []string) happiness.Table[happiness.TrendPoint] {
	id := happiness.AnalysisTrend
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.TrendPoint](id, missing)
	}

	var points []happiness.TrendPoint
	for _, g := range yearMeans(sub.Rows, happiness.FieldLifeEval) {
		m := g.Mean(happiness.FieldLifeEval)
		if !m.Valid {
			continue
		}
		points = append(points, happiness.TrendPoint{
			Series:   GlobalSeries,
			Year:     g.Key,
			LifeEval: m.Value,
			Global:   true,
			Visible:  true,
		})
	}

	countries := selection
	visible := len(selection) > 0
	if !visible {
		countries = happiness.DistinctCountries(sub.Rows)
	}

	perCountry := make(map[string][]happiness.Record)
	for _, r := range sub.Rows {
		perCountry[r.Country] = append(perCountry[r.Country], r)
	}

	for _, country := range countries {
		for _, g := range yearMeans(perCountry[country], happiness.FieldLifeEval) {
			m := g.Mean(happiness.FieldLifeEval)
			if !m.Valid {
				continue
			}
			points = append(points, happiness.TrendPoint{
				Series:   country,
				Country:  country,
				Year:     g.Key,
				LifeEval: m.Value,
				Visible:  visible,
			})
		}
	}

	return happiness.OK(id, points)
}
