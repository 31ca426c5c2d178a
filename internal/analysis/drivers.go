package analysis

import (
	"fmt"
	"sort"

	"happydash/domain/happiness"
)

// driverMeans is the country-level table shared by the driver analyses:
// every country with a mean life evaluation, in first-appearance order.
func driverMeans(sub Subset) []meanGroup[string] {
	return withValid(countryMeans(sub.Rows, allDrivers...), happiness.FieldLifeEval)
}

// FactorScatter pairs each country's mean GDP factor with its mean life
// evaluation. Countries without a GDP value are left out of this analysis only.
func FactorScatter(sub Subset) happiness.Table[happiness.FactorPoint] {
	id := happiness.AnalysisScatter
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.FactorPoint](id, missing)
	}

	countries := driverMeans(sub)
	if len(countries) == 0 {
		return noRows[happiness.FactorPoint](sub, id, "no data available for the current filters")
	}
	return happiness.OK(id, factorPoints(countries, happiness.FieldGDP))
}

// FactorCorrelations ranks factors by the Pearson correlation between their
// country means and the country mean life evaluation, strongest first.
// Factors with fewer than three paired countries are left out.
func FactorCorrelations(sub Subset) happiness.Table[happiness.CorrelationRow] {
	id := happiness.AnalysisCorrelation
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.CorrelationRow](id, missing)
	}

	countries := driverMeans(sub)
	if len(countries) == 0 {
		return noRows[happiness.CorrelationRow](sub, id, "no data available for the current filters")
	}

	var rows []happiness.CorrelationRow
	for _, f := range happiness.Factors {
		paired := withValid(countries, f)
		r, ok := pearson(column(paired, f), column(paired, happiness.FieldLifeEval))
		if !ok {
			continue
		}
		rows = append(rows, happiness.CorrelationRow{
			Factor:      f,
			Label:       f.Label(),
			Correlation: r,
			Pairs:       len(paired),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Correlation > rows[j].Correlation })

	if len(rows) == 0 {
		return happiness.Empty[happiness.CorrelationRow](id,
			fmt.Sprintf("no factor has %d or more paired country observations", minCorrelationPairs))
	}
	return happiness.OK(id, rows)
}

// FactorFacets reshapes the country means into one row per (factor, country)
// for the chosen factors: every row of the first factor, then the next, with
// country order preserved inside each factor.
func FactorFacets(sub Subset, factors []happiness.Field) happiness.Table[happiness.FactorPoint] {
	id := happiness.AnalysisFacets
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.FactorPoint](id, missing)
	}
	if len(factors) < 2 {
		return happiness.Unavailable[happiness.FactorPoint](id, "faceted comparison needs at least two factors")
	}
	for _, f := range factors {
		if !f.IsFactor() {
			return happiness.Unavailable[happiness.FactorPoint](id, fmt.Sprintf("%q is not an explained-by factor", f))
		}
	}

	countries := driverMeans(sub)
	if len(countries) == 0 {
		return noRows[happiness.FactorPoint](sub, id, "no data available for the current filters")
	}
	return happiness.OK(id, factorPoints(countries, factors...))
}

func factorPoints(countries []meanGroup[string], factors ...happiness.Field) []happiness.FactorPoint {
	var points []happiness.FactorPoint
	for _, f := range factors {
		for _, c := range countries {
			m := c.Mean(f)
			if !m.Valid {
				continue
			}
			points = append(points, happiness.FactorPoint{
				Country:     c.Key,
				Factor:      f,
				FactorLabel: f.Label(),
				Value:       m.Value,
				LifeEval:    c.Mean(happiness.FieldLifeEval).Value,
			})
		}
	}
	return points
}
