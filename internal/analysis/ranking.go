package analysis

import (
	"sort"

	"happydash/domain/happiness"
)

// Ranking groups
const (
	GroupTop    = "Top countries"
	GroupBottom = "Bottom countries"
)

// Ranking orders countries by mean life evaluation, descending, and emits the
// top n followed by the bottom n. Equal means keep first-appearance order.
// With fewer than 2n countries both groups share rows.
func Ranking(sub Subset, n int) happiness.Table[happiness.RankRow] {
	id := happiness.AnalysisRanking
	if missing := skipIfMissing(sub, id); len(missing) > 0 {
		return happiness.Skipped[happiness.RankRow](id, missing)
	}

	ranked := withValid(countryMeans(sub.Rows, happiness.FieldLifeEval), happiness.FieldLifeEval)
	if len(ranked) == 0 {
		return noRows[happiness.RankRow](sub, id, "no life evaluation data for the current filters")
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mean(happiness.FieldLifeEval).Value > ranked[j].Mean(happiness.FieldLifeEval).Value
	})

	top := n
	if top < 0 {
		top = 0
	}
	if top > len(ranked) {
		top = len(ranked)
	}

	rows := make([]happiness.RankRow, 0, 2*top)
	for i := 0; i < top; i++ {
		rows = append(rows, rankRow(ranked, i, GroupTop))
	}
	for i := len(ranked) - top; i < len(ranked); i++ {
		rows = append(rows, rankRow(ranked, i, GroupBottom))
	}
	return happiness.OK(id, rows)
}

func rankRow(ranked []meanGroup[string], i int, group string) happiness.RankRow {
	return happiness.RankRow{
		Rank:        i + 1,
		Country:     ranked[i].Key,
		AvgLifeEval: ranked[i].Mean(happiness.FieldLifeEval).Value,
		Group:       group,
	}
}
