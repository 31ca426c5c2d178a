package analysis

import (
	"fmt"
	"sort"

	"happydash/domain/happiness"
)

// Change directions
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Change pairs each country's life evaluation in the from and to years and
// reports the n largest increases followed by the n largest decreases.
// Both years must be present in the subset. Only countries observed in both
// years are paired; a pair with a missing value on either side is dropped.
func Change(sub Subset, from, to, n int) happiness.Table[happiness.ChangeRow] {
	id := happiness.AnalysisChange
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.ChangeRow](id, missing)
	}

	if from >= to {
		return happiness.Unavailable[happiness.ChangeRow](id,
			fmt.Sprintf("change needs two distinct boundary years, got %d and %d", from, to))
	}
	if !sub.HasYear(from) || !sub.HasYear(to) {
		return happiness.Unavailable[happiness.ChangeRow](id,
			fmt.Sprintf("to compute changes (%d → %d), include both years in the year range", from, to))
	}

	var lows []happiness.Record
	highs := make(map[string][]happiness.Record)
	for _, r := range sub.Rows {
		switch r.Year {
		case from:
			lows = append(lows, r)
		case to:
			highs[r.Country] = append(highs[r.Country], r)
		}
	}

	var pairs []happiness.ChangeRow
	for _, lo := range lows {
		for _, hi := range highs[lo.Country] {
			if !lo.LifeEval.Valid || !hi.LifeEval.Valid {
				continue
			}
			pairs = append(pairs, happiness.ChangeRow{
				Country:  lo.Country,
				FromYear: from,
				ToYear:   to,
				From:     lo.LifeEval.Value,
				To:       hi.LifeEval.Value,
				Change:   hi.LifeEval.Value - lo.LifeEval.Value,
			})
		}
	}
	if len(pairs) == 0 {
		return happiness.Unavailable[happiness.ChangeRow](id,
			fmt.Sprintf("no matching countries found between %d and %d within the current filters", from, to))
	}

	rows := append(extremes(pairs, n, DirectionIncrease), extremes(pairs, n, DirectionDecrease)...)
	return happiness.OK(id, rows)
}

// extremes returns up to n pairs with the largest increase or decrease
func extremes(pairs []happiness.ChangeRow, n int, direction string) []happiness.ChangeRow {
	sorted := make([]happiness.ChangeRow, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == DirectionIncrease {
			return sorted[i].Change > sorted[j].Change
		}
		return sorted[i].Change < sorted[j].Change
	})
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	for i := range sorted {
		sorted[i].Direction = direction
	}
	return sorted
}
