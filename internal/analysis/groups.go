package analysis

import (
	"sort"

	"happydash/domain/happiness"
)

// Life evaluation groups of the factor profile
const (
	GroupHighLife = "High life evaluation"
	GroupLowLife  = "Low life evaluation"
)

// HighLifeLowGDP lists countries whose mean GDP factor is below the median
// and whose mean life evaluation is above the median, best first. Medians are
// taken over the countries that have both values. A quadrant with no country
// is StatusEmpty; no country-level data at all is StatusNoData.
func HighLifeLowGDP(sub Subset) happiness.Table[happiness.QuadrantRow] {
	id := happiness.AnalysisQuadrant
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.QuadrantRow](id, missing)
	}

	countries := withValid(countryMeans(sub.Rows, lifeAndGDP...), lifeAndGDP...)
	if len(countries) == 0 {
		return happiness.NoData[happiness.QuadrantRow](id, "no country has both a life evaluation and a GDP value")
	}

	gdpMedian, _ := median(column(countries, happiness.FieldGDP))
	lifeMedian, _ := median(column(countries, happiness.FieldLifeEval))

	var rows []happiness.QuadrantRow
	for _, c := range countries {
		life := c.Mean(happiness.FieldLifeEval).Value
		gdp := c.Mean(happiness.FieldGDP).Value
		if gdp < gdpMedian && life > lifeMedian {
			rows = append(rows, happiness.QuadrantRow{Country: c.Key, LifeEval: life, GDP: gdp})
		}
	}
	if len(rows) == 0 {
		return happiness.Empty[happiness.QuadrantRow](id,
			"no countries fall into the high life evaluation and low GDP quadrant")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].LifeEval > rows[j].LifeEval })
	return happiness.OK(id, rows)
}

// FactorProfile splits countries at the median life evaluation (the median
// itself goes High) and averages each factor within each group. Rows are
// factor-major with High before Low.
func FactorProfile(sub Subset) happiness.Table[happiness.ProfileRow] {
	id := happiness.AnalysisProfile
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.ProfileRow](id, missing)
	}

	countries := driverMeans(sub)
	if len(countries) == 0 {
		return noRows[happiness.ProfileRow](sub, id, "no data available for the current filters")
	}
	lifeMedian, _ := median(column(countries, happiness.FieldLifeEval))

	var high, low []meanGroup[string]
	for _, c := range countries {
		if c.Mean(happiness.FieldLifeEval).Value >= lifeMedian {
			high = append(high, c)
		} else {
			low = append(low, c)
		}
	}

	var rows []happiness.ProfileRow
	for _, f := range happiness.Factors {
		for _, group := range []struct {
			name    string
			members []meanGroup[string]
		}{{GroupHighLife, high}, {GroupLowLife, low}} {
			values := column(withValid(group.members, f), f)
			m := mean(values)
			if !m.Valid {
				continue
			}
			rows = append(rows, happiness.ProfileRow{
				Group:     group.name,
				Factor:    f,
				Label:     f.Label(),
				Average:   m.Value,
				Countries: len(values),
			})
		}
	}
	return happiness.OK(id, rows)
}
