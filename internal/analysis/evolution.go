package analysis

import (
	"happydash/domain/happiness"
)

// FactorEvolution averages every factor per year across all subset rows.
// Rows are factor-major, years ascending within each factor.
func FactorEvolution(sub Subset) happiness.Table[happiness.EvolutionRow] {
	id := happiness.AnalysisEvolution
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.EvolutionRow](id, missing)
	}

	years := yearMeans(sub.Rows, happiness.Factors...)

	var rows []happiness.EvolutionRow
	for _, f := range happiness.Factors {
		for _, y := range years {
			m := y.Mean(f)
			if !m.Valid {
				continue
			}
			rows = append(rows, happiness.EvolutionRow{
				Year:    y.Key,
				Factor:  f,
				Label:   f.Label(),
				Average: m.Value,
			})
		}
	}
	if len(rows) == 0 {
		return noRows[happiness.EvolutionRow](sub, id, "no factor values for the current filters")
	}
	return happiness.OK(id, rows)
}
